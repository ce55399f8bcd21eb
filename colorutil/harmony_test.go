package colorutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHarmonyPredicates(t *testing.T) {
	// red 0°, yellow 60°, cyan 180°, blue 240°, pink 352°
	assert.True(t, AreMonochromatic("#FF0000", "#CC0000"))
	assert.True(t, AreMonochromatic("#FF0000", "#FF0022"))
	assert.False(t, AreMonochromatic("#FF0000", "#FFFF00"))

	assert.True(t, AreAnalogous("#FF0000", "#FFFF00"))
	assert.False(t, AreAnalogous("#FF0000", "#00FFFF"))

	assert.True(t, AreComplementary("#FF0000", "#00FFFF"))
	assert.False(t, AreComplementary("#FF0000", "#0000FF"))
}

func TestGetColorHarmonyScore(t *testing.T) {
	for _, c := range []string{"#FF0000", "#3366CC", "#ff00ff", "#00AA55"} {
		assert.Equal(t, 95.0, GetColorHarmonyScore(c, c), c)
	}

	for _, c := range []string{"#FF0000", "#3366CC", "#000000", "garbage"} {
		assert.Equal(t, 90.0, GetColorHarmonyScore("#FFFFFF", c), c)
		assert.Equal(t, 90.0, GetColorHarmonyScore(c, "#FFFFFF"), c)
	}

	assert.Equal(t, 85.0, GetColorHarmonyScore("#FF0000", "#FFFF00"))
	assert.Equal(t, 80.0, GetColorHarmonyScore("#FF0000", "#00FFFF"))

	// 240° apart matches nothing and falls back to distance
	want := 100 - (ColorDistance("#FF0000", "#0000FF")/441)*50
	assert.InDelta(t, want, GetColorHarmonyScore("#FF0000", "#0000FF"), 0.0001)
	assert.InDelta(t, 59.11, GetColorHarmonyScore("#FF0000", "#0000FF"), 0.01)
}

func TestGetColorHarmonyScoreFallbackRange(t *testing.T) {
	colors := []string{"#FF0000", "#00FF00", "#0000FF", "#FFFF00", "#00FFFF", "#FF00FF", "#8844CC", "#22AA66"}
	for _, a := range colors {
		for _, b := range colors {
			score := GetColorHarmonyScore(a, b)
			assert.GreaterOrEqual(t, score, 50.0)
			assert.LessOrEqual(t, score, 100.0)
		}
	}
}

func TestGetColorHarmonyType(t *testing.T) {
	assert.Equal(t, HarmonyNeutral, GetColorHarmonyType("#1a1a1a", "#ff00ff"))
	assert.Equal(t, HarmonyMonochromatic, GetColorHarmonyType("#FF0000", "#CC0000"))
	assert.Equal(t, HarmonyAnalogous, GetColorHarmonyType("#FF0000", "#FFFF00"))
	assert.Equal(t, HarmonyComplementary, GetColorHarmonyType("#FF0000", "#00FFFF"))
	assert.Equal(t, HarmonyUnknown, GetColorHarmonyType("#FF0000", "#0000FF"))
}

func TestDoPatternsClash(t *testing.T) {
	assert.True(t, DoPatternsClash("stripes", "plaid"))
	assert.True(t, DoPatternsClash("plaid", "stripes"))
	assert.True(t, DoPatternsClash("stripes", "stripes"))
	assert.True(t, DoPatternsClash("floral", "animal-print"))
	assert.True(t, DoPatternsClash("stripes", "polka-dots"))

	assert.False(t, DoPatternsClash("solid", "plaid"))
	assert.False(t, DoPatternsClash("plaid", "solid"))
	assert.False(t, DoPatternsClash("floral", "floral"))
	assert.False(t, DoPatternsClash("", "stripes"))
	assert.False(t, DoPatternsClash("abstract", "geometric"))
}
