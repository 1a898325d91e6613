package coherence

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	ms "github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
)

type ModelType int

var ModelTypes = [...]string{
	"Rappaport",
	"Jakes",
}

const (
	RappaportType ModelType = iota
	JakesType
)

var (
	ErrUnknownModel     = errors.New("coherence: unknown model type")
	ErrInvalidFrequency = errors.New("coherence: carrier frequency must be finite and positive")
	ErrInvalidVelocity  = errors.New("coherence: velocity must be finite")
)

func (m ModelType) String() string {
	if m < 0 || int(m) >= len(ModelTypes) {
		return "Unknown"
	}
	return ModelTypes[m]
}

// ParseModelType is case insensitive.
func ParseModelType(name string) (ModelType, error) {
	for i, n := range ModelTypes {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return ModelType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModel, name)
}

func (m ModelType) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(ModelTypes) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownModel, int(m))
	}
	return []byte(m.String()), nil
}

func (m *ModelType) UnmarshalText(text []byte) error {
	t, err := ParseModelType(string(text))
	if err != nil {
		return err
	}
	*m = t
	return nil
}

// Model returns the distance formula for the type.
func (m ModelType) Model() (Model, error) {
	switch m {
	case RappaportType:
		return Rappaport{}, nil
	case JakesType:
		return Jakes{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownModel, int(m))
	}
}

// ModelSetting describes a channel, the keys of freq and velocity match State.
type ModelSetting struct {
	Type     ModelType `json:"type" mapstructure:"type"`
	FreqHz   float64   `json:"freq" mapstructure:"freq"`
	Velocity float64   `json:"velocity" mapstructure:"velocity"`
}

func NewModelSetting() *ModelSetting {
	result := new(ModelSetting)
	result.SetDefault()
	return result
}

func (m *ModelSetting) SetDefault() {
	m.Type = RappaportType
	m.FreqHz = 2.0e9
	m.Velocity = 0
}

func (m *ModelSetting) SetFGHz(fGHz float64) *ModelSetting {
	m.FreqHz = fGHz * 1e9
	return m
}

func (m ModelSetting) FGHz() float64 {
	return m.FreqHz / 1.0e9
}

// Set loads the setting from a JSON string, fields not present are left untouched.
func (m *ModelSetting) Set(str string) error {
	if err := json.Unmarshal([]byte(str), m); err != nil {
		return fmt.Errorf("coherence: parse setting: %w", err)
	}
	return nil
}

// Validate is the opt-in hardening of the constructor arguments.
func (m ModelSetting) Validate() error {
	if math.IsNaN(m.FreqHz) || math.IsInf(m.FreqHz, 0) || m.FreqHz <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFrequency, m.FreqHz)
	}
	if math.IsNaN(m.Velocity) || math.IsInf(m.Velocity, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidVelocity, m.Velocity)
	}
	if _, err := m.Type.Model(); err != nil {
		return err
	}
	return nil
}

// Create builds the configured channel without validating it.
func (m ModelSetting) Create() (*Channel, error) {
	model, err := m.Type.Model()
	if err != nil {
		return nil, err
	}
	log.Debugf("coherence: creating %v channel at %3.2f GHz, %v m/s", m.Type, m.FGHz(), m.Velocity)
	return New(model, m.FreqHz, m.Velocity), nil
}

// NewValidated is New with the ModelSetting.Validate checks on the arguments.
func NewValidated(model Model, carrierFreq, velocity float64) (*Channel, error) {
	s := ModelSetting{FreqHz: carrierFreq, Velocity: velocity}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return New(model, carrierFreq, velocity), nil
}

// Setting returns the ModelSetting of c. A bare Channel or a custom Model
// has no ModelType and reports ErrUnknownModel.
func (c *Channel) Setting() (ModelSetting, error) {
	s := ModelSetting{FreqHz: c.carrierFreq, Velocity: c.velocity}
	switch c.model.(type) {
	case Rappaport, *Rappaport:
		s.Type = RappaportType
	case Jakes, *Jakes:
		s.Type = JakesType
	default:
		return s, fmt.Errorf("%w: %T", ErrUnknownModel, c.model)
	}
	return s, nil
}

// FromState decodes a descriptive record, a State or a generic map as read
// from a config file, into a ModelSetting. Missing keys keep their defaults.
func FromState(input interface{}) (ModelSetting, error) {
	result := *NewModelSetting()
	dec, err := ms.NewDecoder(&ms.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       modelTypeHook,
		Result:           &result,
	})
	if err != nil {
		return result, err
	}
	if err := dec.Decode(input); err != nil {
		return result, fmt.Errorf("coherence: decode state: %w", err)
	}
	log.Debugf("coherence: decoded state %v", result)
	return result, nil
}

func modelTypeHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(ModelType(0)) || from.Kind() != reflect.String {
		return data, nil
	}
	return ParseModelType(reflect.ValueOf(data).String())
}
