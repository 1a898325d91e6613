package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wiless/coherence"
	"github.com/wiless/coherence/chart"
	"github.com/wiless/vlib"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     AppConfig
}

func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "coherence",
		Short:         "Channel coherence of the Rappaport and Jakes models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(cmd.ErrOrStderr())
			cfg, err := ReadAppConfig(a.v, cmd, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./coherence.yaml)")
	pf.String("model", "Rappaport", "coherence model: Rappaport or Jakes")
	pf.Float64("freq", 2.0e9, "carrier frequency in Hz")
	pf.Float64("velocity", 0, "relative velocity in m/s")
	pf.Bool("validate", false, "reject non-finite or non-positive configuration")
	pf.String("log-level", "info", "log level")

	root.AddCommand(a.evalCommand(), a.thresholdCommand(), a.plotCommand(), a.stateCommand())
	return root
}

func gridFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("domain", "distance", "distance or time")
	f.Float64("from", 0, "first delta")
	f.Float64("to", 1, "last delta")
	f.Int("points", 21, "number of deltas")
}

func (a *app) evalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Print coherence over a grid of distance or time deltas",
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := a.cfg.Channel()
			if err != nil {
				return err
			}
			deltas, err := a.cfg.Deltas()
			if err != nil {
				return err
			}
			var values vlib.VectorF
			switch a.cfg.Domain {
			case "distance":
				values = ch.Profile(deltas)
			case "time":
				values = ch.TimeProfile(deltas)
			default:
				return fmt.Errorf("unknown domain %q", a.cfg.Domain)
			}
			log.Infof("evaluating %v over %d %s deltas", ch, len(deltas), a.cfg.Domain)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\tcoherence\n", a.cfg.Domain)
			for i := range deltas {
				fmt.Fprintf(out, "%g\t%.6f\n", deltas[i], values[i])
			}
			return nil
		},
	}
	gridFlags(cmd)
	return cmd
}

func (a *app) thresholdCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threshold",
		Short: "Print the coherence distance and time at a threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := a.cfg.Channel()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			d, err := ch.CoherenceDistanceAt(a.cfg.Threshold, a.cfg.Max)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "distance\t%g\n", d)

			dt, err := ch.CoherenceTimeAt(a.cfg.Threshold, a.cfg.Max/math.Abs(ch.TimeToDistanceFactor()))
			if err != nil {
				log.Warnf("no coherence time for %v: %v", ch, err)
				return nil
			}
			fmt.Fprintf(out, "time\t%g\n", dt)
			return nil
		},
	}
	cmd.Flags().Float64("threshold", 0.5, "coherence threshold in (0,1)")
	cmd.Flags().Float64("max", 10, "largest distance delta searched")
	return cmd
}

func (a *app) plotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot the coherence of all models to an image file",
		RunE: func(cmd *cobra.Command, args []string) error {
			deltas, err := a.cfg.Deltas()
			if err != nil {
				return err
			}
			opts := chart.DefaultOptions()
			switch a.cfg.Domain {
			case "distance":
				opts.Domain = chart.Distance
			case "time":
				opts.Domain = chart.Time
			default:
				return fmt.Errorf("unknown domain %q", a.cfg.Domain)
			}

			base, err := a.cfg.Setting()
			if err != nil {
				return err
			}
			var channels []*coherence.Channel
			for i := range coherence.ModelTypes {
				s := base
				s.Type = coherence.ModelType(i)
				ch, err := s.Create()
				if err != nil {
					return err
				}
				channels = append(channels, ch)
			}
			if err := chart.Save(a.cfg.Out, deltas, opts, channels...); err != nil {
				return err
			}
			log.Infof("plot saved to %s", a.cfg.Out)
			return nil
		},
	}
	gridFlags(cmd)
	cmd.Flags().String("out", "coherence.png", "output image, format from the extension")
	return cmd
}

func (a *app) stateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Print the resolved channel setting as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.cfg.Setting()
			if err != nil {
				return err
			}
			buf, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(buf))
			if a.cfg.Save != "" {
				if err := os.WriteFile(a.cfg.Save, append(buf, '\n'), 0o644); err != nil {
					return fmt.Errorf("save setting: %w", err)
				}
				log.Infof("setting saved to %s", a.cfg.Save)
			}
			return nil
		},
	}
	cmd.Flags().String("save", "", "also write the setting to this JSON file")
	return cmd
}
