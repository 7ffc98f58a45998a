package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlendCurvesAreMonotonicWithFixedEndpoints(t *testing.T) {
	styles := []BlendStyle{EaseInOut, EaseIn, EaseOut, HardIn, HardOut, Linear, Custom}
	for _, style := range styles {
		t.Run(style.String(), func(t *testing.T) {
			def := BlendDefinition{Style: style, Duration: 1, CustomCurve: func(t float32) float32 { return t * t }}
			assert.Equal(t, float32(0), def.Weight(0))
			assert.Equal(t, float32(1), def.Weight(1))
			prev := float32(0)
			for i := 1; i <= 100; i++ {
				w := def.Weight(float32(i) / 100)
				assert.GreaterOrEqual(t, w, prev, "t=%v", float32(i)/100)
				assert.LessOrEqual(t, w, float32(1))
				prev = w
			}
		})
	}
}

func TestCutWeightIsStep(t *testing.T) {
	def := BlendDefinition{Style: Cut, Duration: 2}
	assert.Equal(t, float32(0), def.Weight(0))
	assert.Equal(t, float32(1), def.Weight(0.001))
	assert.Equal(t, float32(1), def.Weight(0.5))
	assert.True(t, def.IsCut())
	assert.Equal(t, float32(0), def.BlendTime())
}

func TestBlendTime(t *testing.T) {
	assert.Equal(t, float32(0), BlendDefinition{Style: Linear}.BlendTime())
	assert.Equal(t, float32(0), BlendDefinition{Style: Linear, Duration: -1}.BlendTime())
	assert.Equal(t, float32(1.5), BlendDefinition{Style: EaseIn, Duration: 1.5}.BlendTime())
}

func TestCustomWithoutCurveFallsBackToEaseInOut(t *testing.T) {
	custom := BlendDefinition{Style: Custom, Duration: 1}
	ease := BlendDefinition{Style: EaseInOut, Duration: 1}
	assert.Equal(t, ease.Weight(0.3), custom.Weight(0.3))
}

func TestParseBlendStyle(t *testing.T) {
	cases := map[string]BlendStyle{
		"cut":         Cut,
		"EaseInOut":   EaseInOut,
		"ease-in":     EaseIn,
		"ease_out":    EaseOut,
		"Hard In":     HardIn,
		"hardout":     HardOut,
		" linear ":    Linear,
		"custom":      Custom,
		"ease_in_out": EaseInOut,
	}
	for in, want := range cases {
		got, err := ParseBlendStyle(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseBlendStyle("wobble")
	assert.Error(t, err)
}

func TestLookups(t *testing.T) {
	a, b := newTestCamera("a", 0), newTestCamera("b", 1)
	assert.True(t, CutLookup.LookupBlend(a, b).IsCut())

	def := BlendDefinition{Style: Linear, Duration: 2}
	assert.Equal(t, float32(2), ConstantLookup(def).LookupBlend(a, b).Duration)
}
