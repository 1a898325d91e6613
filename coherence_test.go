package coherence_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wiless/coherence"
)

func TestRappaportDistance(t *testing.T) {
	ch := coherence.NewRappaport(2.4e9, 3.0)
	assert.Equal(t, 1.0, ch.CoherenceDistance(0))
	assert.InDelta(t, math.Exp(-23*0.04), ch.CoherenceDistance(0.2), 1e-12)
	assert.InDelta(t, 0.3985, ch.CoherenceDistance(0.2), 1e-3)

	prev := ch.CoherenceDistance(0)
	for d := 0.01; d < 1.0; d += 0.01 {
		v := ch.CoherenceDistance(d)
		assert.Less(t, v, prev, "d=%v", d)
		assert.Greater(t, v, 0.0)
		assert.Equal(t, v, ch.CoherenceDistance(-d))
		prev = v
	}
}

func TestJakesDistance(t *testing.T) {
	ch := coherence.NewJakes(2.4e9, 3.0)
	assert.Equal(t, 1.0, ch.CoherenceDistance(0))

	// first zero of J0 at 2.404825557695773
	zero := 2.404825557695773 / (2 * math.Pi)
	assert.InDelta(t, 0.3827, zero, 1e-4)
	assert.InDelta(t, 0, ch.CoherenceDistance(zero), 1e-12)

	for d := -2.0; d <= 2.0; d += 0.013 {
		v := ch.CoherenceDistance(d)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
		assert.Equal(t, v, ch.CoherenceDistance(-d))
	}
}

func TestJakesOscillates(t *testing.T) {
	ch := coherence.NewJakes(2.4e9, 3.0)
	rp := coherence.NewRappaport(2.4e9, 3.0)

	// past the first zero the Jakes curve rises again, the Gaussian never does
	d, eps := 0.4, 0.05
	assert.Less(t, ch.CoherenceDistance(d), ch.CoherenceDistance(d+eps))
	assert.Greater(t, rp.CoherenceDistance(d), rp.CoherenceDistance(d+eps))
}

func TestCoherenceTime(t *testing.T) {
	f, v := 2.4e9, 3.0
	for _, ch := range []*coherence.Channel{coherence.NewRappaport(f, v), coherence.NewJakes(f, v)} {
		assert.Equal(t, v*f/coherence.SpeedOfLight, ch.TimeToDistanceFactor())
		for _, dt := range []float64{0, 1e-3, 5e-3, 0.01, -0.02} {
			want := ch.CoherenceDistance(dt * (v * f / coherence.SpeedOfLight))
			assert.Equal(t, want, ch.CoherenceTime(dt), "%v dt=%v", ch, dt)
			assert.Equal(t, want, ch.ByTime(dt))
			assert.Equal(t, want, ch.CovarianceTime(dt))
		}
		assert.Equal(t, ch.CoherenceDistance(0.1), ch.ByDistance(0.1))
		assert.Equal(t, ch.CoherenceDistance(0.1), ch.CovarianceDistance(0.1))
	}
}

func TestStaticChannel(t *testing.T) {
	ch := coherence.NewJakes(2.4e9, 0)
	assert.Equal(t, 0.0, ch.TimeToDistanceFactor())
	assert.Equal(t, 1.0, ch.CoherenceTime(100))
}

func TestBareChannel(t *testing.T) {
	ch := coherence.NewChannel(2.4e9, 3.0)
	assert.PanicsWithError(t, coherence.ErrNotImplemented.Error(), func() {
		ch.CoherenceDistance(0.1)
	})
	assert.PanicsWithError(t, coherence.ErrNotImplemented.Error(), func() {
		ch.CoherenceTime(0.1)
	})
	_, err := ch.Evaluate(0.1)
	assert.ErrorIs(t, err, coherence.ErrNotImplemented)
	assert.Nil(t, ch.Model())
}

func TestEvaluate(t *testing.T) {
	ch := coherence.NewRappaport(2.4e9, 3.0)
	v, err := ch.Evaluate(0.2)
	require.NoError(t, err)
	assert.Equal(t, ch.CoherenceDistance(0.2), v)
}

func TestState(t *testing.T) {
	ch := coherence.NewRappaport(2.4e9, 3.0)
	assert.Equal(t, coherence.State{"freq": 2.4e9, "velocity": 3.0}, ch.State())
	assert.Equal(t, 2.4e9, ch.CarrierFreq())
	assert.Equal(t, 3.0, ch.Velocity())
}

func TestString(t *testing.T) {
	assert.Equal(t, "Rappaport(freq=2.4e+09, velocity=3)", coherence.NewRappaport(2.4e9, 3).String())
	assert.Equal(t, "Jakes(freq=2.4e+09, velocity=3)", coherence.NewJakes(2.4e9, 3).String())
	assert.Equal(t, "Channel(freq=1e+09, velocity=0.5)", coherence.NewChannel(1e9, 0.5).String())
}

type halfModel struct{}

func (halfModel) CoherenceDistance(float64) float64 { return 0.5 }

func TestCustomModel(t *testing.T) {
	ch := coherence.New(halfModel{}, 1e9, 1)
	assert.Equal(t, 0.5, ch.CoherenceTime(3))
	assert.Equal(t, "Channel(freq=1e+09, velocity=1)", ch.String())
}

func TestConcurrentQueries(t *testing.T) {
	for _, ch := range []*coherence.Channel{coherence.NewRappaport(2.4e9, 3.0), coherence.NewJakes(2.4e9, 3.0)} {
		deltas := coherence.Span(0, 0.05, 64)
		want := ch.TimeProfile(deltas)

		var wg sync.WaitGroup
		got := make([][]float64, 8)
		for g := range got {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				res := make([]float64, len(deltas))
				for i, dt := range deltas {
					res[i] = ch.CoherenceTime(dt)
					_ = ch.State()
					_ = ch.String()
				}
				got[g] = res
			}(g)
		}
		wg.Wait()
		for g := range got {
			assert.Equal(t, []float64(want), got[g], "%v goroutine %d", ch, g)
		}
	}
}
