// Package coherence evaluates the expected correlation between two fading
// realizations of a wireless channel as a function of their separation in
// space or time. See Jakes and Rappaport for the theory behind the models.
package coherence

import (
	"errors"
	"fmt"
)

// SpeedOfLight in m/s
const SpeedOfLight = 299792458.0

// ErrNotImplemented is raised when a Channel has no distance formula.
var ErrNotImplemented = errors.New("coherence: distance formula must be implemented by the model")

// Model is the distance-domain coherence formula of a channel.
type Model interface {
	CoherenceDistance(distanceDelta float64) float64
}

// State is the descriptive record of a channel configuration.
type State map[string]float64

// Channel holds the configuration shared by all coherence models.
// carrierFreq determines the distance after which coherence may vanish,
// velocity converts a time delta into a distance delta.
type Channel struct {
	carrierFreq   float64
	velocity      float64
	time2distance float64
	model         Model
}

// New returns a Channel evaluating model m. No range checks are done on
// carrierFreq (Hz) or velocity (m/s), use NewValidated for that.
func New(m Model, carrierFreq, velocity float64) *Channel {
	return &Channel{
		carrierFreq:   carrierFreq,
		velocity:      velocity,
		time2distance: velocity * carrierFreq / SpeedOfLight,
		model:         m,
	}
}

// NewChannel returns a Channel without a distance formula.
func NewChannel(carrierFreq, velocity float64) *Channel {
	return New(nil, carrierFreq, velocity)
}

// CarrierFreq in Hz
func (c *Channel) CarrierFreq() float64 {
	return c.carrierFreq
}

// Velocity in m/s
func (c *Channel) Velocity() float64 {
	return c.velocity
}

// TimeToDistanceFactor returns velocity*carrierFreq/SpeedOfLight
func (c *Channel) TimeToDistanceFactor() float64 {
	return c.time2distance
}

// Model returns the distance formula, nil for a bare Channel.
func (c *Channel) Model() Model {
	return c.model
}

// State returns the freq and velocity of the channel.
func (c *Channel) State() State {
	return State{
		"freq":     c.carrierFreq,
		"velocity": c.velocity,
	}
}

// String is Name(freq=..., velocity=...), Name is Channel without a Model.
func (c *Channel) String() string {
	name := "Channel"
	if s, ok := c.model.(fmt.Stringer); ok {
		name = s.String()
	}
	return fmt.Sprintf("%s(freq=%v, velocity=%v)", name, c.carrierFreq, c.velocity)
}

// DistanceDelta converts a time delta in seconds to the equivalent distance delta.
func (c *Channel) DistanceDelta(timeDelta float64) float64 {
	return timeDelta * c.time2distance
}

// CoherenceDistance returns the coherence for two observations distanceDelta apart.
// It panics with ErrNotImplemented on a Channel without a Model.
func (c *Channel) CoherenceDistance(distanceDelta float64) float64 {
	if c.model == nil {
		panic(ErrNotImplemented)
	}
	return c.model.CoherenceDistance(distanceDelta)
}

// CoherenceTime returns the coherence for two observations timeDelta seconds apart.
func (c *Channel) CoherenceTime(timeDelta float64) float64 {
	return c.CoherenceDistance(c.DistanceDelta(timeDelta))
}

// Evaluate is CoherenceDistance reporting a missing Model as an error.
func (c *Channel) Evaluate(distanceDelta float64) (float64, error) {
	if c.model == nil {
		return 0, ErrNotImplemented
	}
	return c.model.CoherenceDistance(distanceDelta), nil
}

// ByDistance is the same as CoherenceDistance.
func (c *Channel) ByDistance(distanceDelta float64) float64 {
	return c.CoherenceDistance(distanceDelta)
}

// ByTime is the same as CoherenceTime.
func (c *Channel) ByTime(timeDelta float64) float64 {
	return c.CoherenceTime(timeDelta)
}

func (c *Channel) CovarianceDistance(distanceDelta float64) float64 {
	return c.CoherenceDistance(distanceDelta)
}

func (c *Channel) CovarianceTime(timeDelta float64) float64 {
	return c.CoherenceTime(timeDelta)
}
