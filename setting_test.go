package coherence_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wiless/coherence"
)

func TestModelType(t *testing.T) {
	assert.Equal(t, "Rappaport", coherence.RappaportType.String())
	assert.Equal(t, "Jakes", coherence.JakesType.String())
	assert.Equal(t, "Unknown", coherence.ModelType(5).String())

	mt, err := coherence.ParseModelType(" jakes ")
	require.NoError(t, err)
	assert.Equal(t, coherence.JakesType, mt)

	_, err = coherence.ParseModelType("clarke")
	assert.ErrorIs(t, err, coherence.ErrUnknownModel)
}

func TestDefaultSetting(t *testing.T) {
	s := coherence.NewModelSetting()
	assert.Equal(t, coherence.RappaportType, s.Type)
	assert.Equal(t, 2.0, s.FGHz())
	s.SetFGHz(3.5)
	assert.Equal(t, 3.5e9, s.FreqHz)
}

func TestSettingJSON(t *testing.T) {
	s := coherence.NewModelSetting()
	require.NoError(t, s.Set(`{"type":"Jakes","freq":2.4e9,"velocity":3}`))
	assert.Equal(t, coherence.ModelSetting{Type: coherence.JakesType, FreqHz: 2.4e9, Velocity: 3}, *s)

	assert.Error(t, s.Set(`{"type":"nope"}`))
	assert.Error(t, s.Set(`{`))
}

func TestSettingCreate(t *testing.T) {
	s := coherence.ModelSetting{Type: coherence.JakesType, FreqHz: 2.4e9, Velocity: 3}
	ch, err := s.Create()
	require.NoError(t, err)
	assert.Equal(t, "Jakes(freq=2.4e+09, velocity=3)", ch.String())

	back, err := ch.Setting()
	require.NoError(t, err)
	assert.Equal(t, s, back)

	_, err = coherence.ModelSetting{Type: 9}.Create()
	assert.ErrorIs(t, err, coherence.ErrUnknownModel)

	_, err = coherence.NewChannel(1e9, 1).Setting()
	assert.ErrorIs(t, err, coherence.ErrUnknownModel)
}

func TestValidate(t *testing.T) {
	_, err := coherence.NewValidated(coherence.Rappaport{}, 2.4e9, 3)
	assert.NoError(t, err)

	for _, f := range []float64{0, -1e9, math.NaN(), math.Inf(1)} {
		_, err = coherence.NewValidated(coherence.Rappaport{}, f, 3)
		assert.ErrorIs(t, err, coherence.ErrInvalidFrequency, "freq=%v", f)
	}
	_, err = coherence.NewValidated(coherence.Jakes{}, 2.4e9, math.Inf(-1))
	assert.ErrorIs(t, err, coherence.ErrInvalidVelocity)

	// the plain constructor accepts anything
	ch := coherence.NewRappaport(-1, math.NaN())
	assert.True(t, math.IsNaN(ch.CoherenceTime(1)))
}

func TestFromState(t *testing.T) {
	s, err := coherence.FromState(coherence.NewJakes(2.4e9, 3).State())
	require.NoError(t, err)
	assert.Equal(t, 2.4e9, s.FreqHz)
	assert.Equal(t, 3.0, s.Velocity)
	assert.Equal(t, coherence.RappaportType, s.Type)

	s, err = coherence.FromState(map[string]interface{}{
		"type":     "jakes",
		"freq":     "900e6",
		"velocity": 30,
	})
	require.NoError(t, err)
	assert.Equal(t, coherence.ModelSetting{Type: coherence.JakesType, FreqHz: 900e6, Velocity: 30}, s)

	_, err = coherence.FromState(map[string]interface{}{"type": "clarke"})
	assert.Error(t, err)
}
