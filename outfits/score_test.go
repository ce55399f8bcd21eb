package outfits

import (
	"testing"

	"wardrobeapi/colorutil"

	"github.com/stretchr/testify/assert"
)

func TestScoreOutfitNeutralPair(t *testing.T) {
	items := []ClothingItem{
		{ID: "a", Type: Top, PrimaryColor: "#1a1a1a"},
		{ID: "b", Type: Bottom, PrimaryColor: "#ff00ff"},
	}

	result := ScoreOutfit(items, ScoreOptions{})

	assert.Equal(t, colorutil.HarmonyNeutral, result.ColorHarmony)
	assert.Contains(t, result.Reasons, "Excellent color harmony")
	// 50 + (90-50)*0.4
	assert.InDelta(t, 66, result.Score, 0.0001)
}

func TestScoreOutfitAllFactors(t *testing.T) {
	items := []ClothingItem{
		{ID: "t", Type: Top, PrimaryColor: "#FF0000", Pattern: "stripes", Styles: []string{"casual"}, Occasions: []string{"work"}, Seasons: []Season{Summer}},
		{ID: "b", Type: Bottom, PrimaryColor: "#FFFFFF", Pattern: "plaid", Styles: []string{"casual"}, Seasons: []Season{Fall}},
		{ID: "s", Type: Shoes, PrimaryColor: "#000000", Styles: []string{"casual", "sporty"}, Seasons: []Season{Winter, Fall}},
	}

	result := ScoreOutfit(items, ScoreOptions{
		PreferredStyle: "casual",
		Occasion:       "work",
		Weather:        &Weather{Temperature: 5, Condition: Rainy},
	})

	// 50 +16 harmony -20 clash +15 style +10 cohesion +3.33 occasion +6.67 weather
	assert.InDelta(t, 81, result.Score, 0.0001)
	assert.Equal(t, []string{
		"Excellent color harmony",
		"Pattern clash detected",
		"Perfect casual style match",
		"Cohesive casual look",
		"Consider adding a jacket",
	}, result.Reasons)
	assert.Equal(t, colorutil.HarmonyNeutral, result.ColorHarmony)
}

func TestScoreOutfitHarmonyUsesFirstPair(t *testing.T) {
	items := []ClothingItem{
		{ID: "t", Type: Top, PrimaryColor: "#FF0000"},
		{ID: "b", Type: Bottom, PrimaryColor: "#00FFFF"},
		{ID: "s", Type: Shoes, PrimaryColor: "#FFFFFF"},
	}
	assert.Equal(t, colorutil.HarmonyComplementary, ScoreOutfit(items, ScoreOptions{}).ColorHarmony)

	reordered := []ClothingItem{items[2], items[0], items[1]}
	assert.Equal(t, colorutil.HarmonyNeutral, ScoreOutfit(reordered, ScoreOptions{}).ColorHarmony)
}

func TestScoreOutfitGoodCoordination(t *testing.T) {
	// complementary 80 ⇒ between 70 and 85
	items := []ClothingItem{
		{ID: "t", Type: Top, PrimaryColor: "#FF0000"},
		{ID: "b", Type: Bottom, PrimaryColor: "#00FFFF"},
	}
	result := ScoreOutfit(items, ScoreOptions{})
	assert.Equal(t, []string{"Good color coordination"}, result.Reasons)
	assert.InDelta(t, 62, result.Score, 0.0001)
}

func TestScoreOutfitClampsAtZero(t *testing.T) {
	items := []ClothingItem{
		{ID: "r", Type: Top, PrimaryColor: "#FF0000", Pattern: "stripes"},
		{ID: "b", Type: Bottom, PrimaryColor: "#0000FF", Pattern: "stripes"},
		{ID: "g", Type: Shoes, PrimaryColor: "#00FF00", Pattern: "stripes"},
	}

	result := ScoreOutfit(items, ScoreOptions{})

	assert.Equal(t, 0.0, result.Score)
	clashes := 0
	for _, reason := range result.Reasons {
		if reason == "Pattern clash detected" {
			clashes++
		}
	}
	assert.Equal(t, 3, clashes)
	assert.Equal(t, colorutil.HarmonyUnknown, result.ColorHarmony)
}

func TestScoreOutfitClampsAtHundred(t *testing.T) {
	items := []ClothingItem{
		{ID: "c", Type: Outerwear, PrimaryColor: "#808080", Styles: []string{"cozy"}, Occasions: []string{"work"}, Seasons: []Season{Winter}},
		{ID: "d", Type: Dress, PrimaryColor: "#808080", Styles: []string{"cozy"}, Occasions: []string{"work"}, Seasons: []Season{Winter}},
	}
	result := ScoreOutfit(items, ScoreOptions{
		PreferredStyle: "cozy",
		Occasion:       "work",
		Weather:        &Weather{Temperature: -3, Condition: Stormy},
	})
	assert.Equal(t, 100.0, result.Score)
	assert.NotContains(t, result.Reasons, "Consider adding a jacket")
}

func TestScoreOutfitCohesionTieGoesToFirstTag(t *testing.T) {
	items := []ClothingItem{
		{ID: "a", PrimaryColor: "#808080", Styles: []string{"formal", "casual"}},
		{ID: "b", PrimaryColor: "#808080", Styles: []string{"casual", "formal"}},
	}
	result := ScoreOutfit(items, ScoreOptions{})
	assert.Contains(t, result.Reasons, "Cohesive formal look")
	assert.NotContains(t, result.Reasons, "Cohesive casual look")
}

func TestScoreOutfitEmpty(t *testing.T) {
	result := ScoreOutfit(nil, ScoreOptions{PreferredStyle: "casual", Weather: &Weather{Temperature: -10}})
	assert.Equal(t, 50.0, result.Score)
	assert.Empty(t, result.Reasons)
	assert.Equal(t, colorutil.HarmonyNeutral, result.ColorHarmony)
}

func TestScoreWeather(t *testing.T) {
	winterTop := ClothingItem{Type: Top, Seasons: []Season{Winter}}
	summerTop := ClothingItem{Type: Top, Seasons: []Season{Summer}}
	fallCoat := ClothingItem{Type: Outerwear, Seasons: []Season{Fall}}

	assert.InDelta(t, 7.5, scoreWeather([]ClothingItem{winterTop, summerTop}, Weather{Temperature: -1}), 0.0001)
	assert.InDelta(t, 10, scoreWeather([]ClothingItem{winterTop, fallCoat}, Weather{Temperature: 0}), 0.0001)
	assert.InDelta(t, 0, scoreWeather([]ClothingItem{winterTop, summerTop}, Weather{Temperature: 18}), 0.0001)
	assert.InDelta(t, 5, scoreWeather([]ClothingItem{winterTop, summerTop}, Weather{Temperature: 30}), 0.0001)
	assert.InDelta(t, 5, scoreWeather([]ClothingItem{summerTop, fallCoat}, Weather{Temperature: 18, Condition: Rainy}), 0.0001)
	assert.InDelta(t, 0, scoreWeather([]ClothingItem{summerTop}, Weather{Temperature: 18, Condition: Stormy}), 0.0001)
	assert.InDelta(t, 0, scoreWeather([]ClothingItem{summerTop}, Weather{Temperature: 25}), 0.0001)
}
