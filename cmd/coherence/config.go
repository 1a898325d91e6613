package main

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wiless/coherence"
	"github.com/wiless/vlib"
)

// AppConfig holds the parameters of a coherence run
type AppConfig struct {
	Model     string  `mapstructure:"model"`
	FreqHz    float64 `mapstructure:"freq"`
	Velocity  float64 `mapstructure:"velocity"`
	Validate  bool    `mapstructure:"validate"`
	Domain    string  `mapstructure:"domain"`
	From      float64 `mapstructure:"from"`
	To        float64 `mapstructure:"to"`
	Points    int     `mapstructure:"points"`
	Threshold float64 `mapstructure:"threshold"`
	Max       float64 `mapstructure:"max"`
	Out       string  `mapstructure:"out"`
	Save      string  `mapstructure:"save"`
	LogLevel  string  `mapstructure:"log-level"`
}

// ReadAppConfig merges defaults, the config file, COHERENCE_ env vars and
// the flags of cmd, in increasing priority.
func ReadAppConfig(v *viper.Viper, cmd *cobra.Command, cfgFile string) (AppConfig, error) {
	var cfg AppConfig

	// Set all the default values
	{
		def := coherence.NewModelSetting()
		v.SetDefault("model", def.Type.String())
		v.SetDefault("freq", def.FreqHz)
		v.SetDefault("velocity", def.Velocity)
		v.SetDefault("domain", "distance")
		v.SetDefault("from", 0.0)
		v.SetDefault("to", 1.0)
		v.SetDefault("points", 21)
		v.SetDefault("threshold", 0.5)
		v.SetDefault("max", 10.0)
		v.SetDefault("out", "coherence.png")
		v.SetDefault("log-level", "info")
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("coherence")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.coherence")
	}
	v.SetEnvPrefix("COHERENCE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		log.Debug("ReadInConfig ", err)
	} else {
		log.Debugf("using config %s", v.ConfigFileUsed())
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return cfg, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}

	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, err
	}
	log.SetLevel(lvl)
	return cfg, nil
}

// Setting returns the channel description of the config.
func (c AppConfig) Setting() (coherence.ModelSetting, error) {
	s, err := coherence.FromState(map[string]interface{}{
		"type":     c.Model,
		"freq":     c.FreqHz,
		"velocity": c.Velocity,
	})
	if err != nil {
		return s, err
	}
	if c.Validate {
		if err := s.Validate(); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Channel creates the configured channel.
func (c AppConfig) Channel() (*coherence.Channel, error) {
	s, err := c.Setting()
	if err != nil {
		return nil, err
	}
	return s.Create()
}

// Deltas is the evaluation grid.
func (c AppConfig) Deltas() (vlib.VectorF, error) {
	if c.Points < 1 {
		return nil, fmt.Errorf("points must be positive, got %d", c.Points)
	}
	return coherence.Span(c.From, c.To, c.Points), nil
}
