package coherence

import "math"

// Rappaport is the Ez-case from Rappaport. This implies omnidirectional
// antennae, a Gaussian approximation of the spatial correlation.
type Rappaport struct{}

// NewRappaport returns a Channel with the Rappaport distance formula.
func NewRappaport(carrierFreq, velocity float64) *Channel {
	return New(Rappaport{}, carrierFreq, velocity)
}

func (Rappaport) CoherenceDistance(distanceDelta float64) float64 {
	return math.Exp(-23.0 * distanceDelta * distanceDelta)
}

func (Rappaport) String() string {
	return "Rappaport"
}
