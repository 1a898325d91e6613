package coherence

import (
	"errors"
	"fmt"
	"math"

	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrThreshold  = errors.New("coherence: threshold must be in (0,1)")
	ErrNotReached = errors.New("coherence: threshold not reached")
	ErrStatic     = errors.New("coherence: zero time to distance factor")
	ErrMaxDelta   = errors.New("coherence: search limit must be finite and positive")
)

// number of grid points scanned before bisecting
const scanPoints = 10000

// Span returns n evenly spaced values from lo to hi inclusive.
func Span(lo, hi float64, n int) vlib.VectorF {
	switch {
	case n <= 0:
		return vlib.VectorF{}
	case n == 1:
		return vlib.VectorF{lo}
	}
	return vlib.VectorF(floats.Span(make([]float64, n), lo, hi))
}

// Profile evaluates CoherenceDistance at each of the deltas.
func (c *Channel) Profile(distanceDeltas vlib.VectorF) vlib.VectorF {
	result := vlib.NewVectorF(len(distanceDeltas))
	for i, d := range distanceDeltas {
		result[i] = c.CoherenceDistance(d)
	}
	return result
}

// TimeProfile evaluates CoherenceTime at each of the deltas.
func (c *Channel) TimeProfile(timeDeltas vlib.VectorF) vlib.VectorF {
	result := vlib.NewVectorF(len(timeDeltas))
	for i, t := range timeDeltas {
		result[i] = c.CoherenceTime(t)
	}
	return result
}

// Between returns the coherence between observations at src and dest.
func (c *Channel) Between(src, dest vlib.Location3D) float64 {
	return c.CoherenceDistance(src.DistanceFrom(dest))
}

// CoherenceDistanceAt returns the smallest separation, up to maxDistance,
// at which the coherence drops to threshold. The curve is scanned on a grid,
// a grid interval holding a local minimum is refined before moving on so
// narrow dips between grid points are not missed.
func (c *Channel) CoherenceDistanceAt(threshold, maxDistance float64) (float64, error) {
	if !(threshold > 0 && threshold < 1) {
		return 0, fmt.Errorf("%w: %v", ErrThreshold, threshold)
	}
	if !(maxDistance > 0) || math.IsInf(maxDistance, 0) {
		return 0, fmt.Errorf("%w: %v", ErrMaxDelta, maxDistance)
	}
	if c.model == nil {
		return 0, ErrNotImplemented
	}
	switch c.model.(type) {
	case Rappaport, *Rappaport:
		d := math.Sqrt(-math.Log(threshold) / 23.0)
		if d > maxDistance {
			return 0, fmt.Errorf("%w: %v within %v", ErrNotReached, threshold, maxDistance)
		}
		return d, nil
	}

	f := c.model.CoherenceDistance
	step := maxDistance / scanPoints
	f0, f1 := f(0), f(0)
	for i := 1; i <= scanPoints; i++ {
		x := float64(i) * step
		fx := f(x)
		if fx <= threshold {
			return crossing(f, x-step, x, threshold), nil
		}
		// f1 at x-step is below both neighbours
		if i >= 2 && f0 > f1 && f1 < fx {
			lo := x - 2*step
			if m := minimum(f, lo, x); f(m) <= threshold {
				return crossing(f, lo, m, threshold), nil
			}
		}
		f0, f1 = f1, fx
	}
	return 0, fmt.Errorf("%w: %v within %v", ErrNotReached, threshold, maxDistance)
}

// crossing bisects [lo,hi] with f(lo) > threshold >= f(hi).
func crossing(f func(float64) float64, lo, hi, threshold float64) float64 {
	for k := 0; k < 64; k++ {
		mid := (lo + hi) / 2
		if f(mid) > threshold {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}

// minimum is a golden section search of f unimodal on [a,b].
func minimum(f func(float64) float64, a, b float64) float64 {
	const invPhi = 0.6180339887498949
	x1 := b - invPhi*(b-a)
	x2 := a + invPhi*(b-a)
	f1, f2 := f(x1), f(x2)
	for k := 0; k < 128 && x1 < x2; k++ {
		if f1 < f2 {
			b, x2, f2 = x2, x1, f1
			x1 = b - invPhi*(b-a)
			f1 = f(x1)
		} else {
			a, x1, f1 = x1, x2, f2
			x2 = a + invPhi*(b-a)
			f2 = f(x2)
		}
	}
	if f1 < f2 {
		return x1
	}
	return x2
}

// CoherenceTimeAt is CoherenceDistanceAt in the time domain.
func (c *Channel) CoherenceTimeAt(threshold, maxTime float64) (float64, error) {
	factor := math.Abs(c.time2distance)
	if factor == 0 {
		return 0, ErrStatic
	}
	if !(maxTime > 0) || math.IsInf(maxTime, 0) {
		return 0, fmt.Errorf("%w: %v", ErrMaxDelta, maxTime)
	}
	d, err := c.CoherenceDistanceAt(threshold, maxTime*factor)
	if err != nil {
		return 0, err
	}
	return d / factor, nil
}
