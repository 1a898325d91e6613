package coherence

import "math"

// Jakes is the Jakes/Clarke isotropic scattering model, J0(2*pi*d)^2.
// Unlike Rappaport the curve oscillates, the first zero is at d ~ 0.3827.
type Jakes struct{}

// NewJakes returns a Channel with the Jakes distance formula.
func NewJakes(carrierFreq, velocity float64) *Channel {
	return New(Jakes{}, carrierFreq, velocity)
}

func (Jakes) CoherenceDistance(distanceDelta float64) float64 {
	j := math.J0(2.0 * math.Pi * distanceDelta)
	return j * j
}

func (Jakes) String() string {
	return "Jakes"
}
