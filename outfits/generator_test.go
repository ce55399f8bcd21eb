package outfits

import (
	"testing"
	"time"

	"wardrobeapi/colorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedRandom struct {
	picks []int
	calls int
}

func (r *scriptedRandom) IntN(n int) int {
	if len(r.picks) == 0 {
		return 0
	}
	pick := r.picks[r.calls%len(r.picks)]
	r.calls++
	return pick % n
}

func fixedClock(month time.Month) func() time.Time {
	return func() time.Time {
		return time.Date(2026, month, 15, 9, 0, 0, 0, time.UTC)
	}
}

func item(id string, clothingType ClothingType, color string, seasons ...Season) ClothingItem {
	if len(seasons) == 0 {
		seasons = []Season{Summer}
	}
	return ClothingItem{
		ID:           id,
		Type:         clothingType,
		Styles:       []string{"casual"},
		Seasons:      seasons,
		Occasions:    []string{"weekend"},
		PrimaryColor: color,
	}
}

func itemIDs(items []ClothingItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func TestSeasonAt(t *testing.T) {
	expected := map[time.Month]Season{
		time.January: Winter, time.February: Winter, time.March: Spring,
		time.April: Spring, time.May: Spring, time.June: Summer,
		time.July: Summer, time.August: Summer, time.September: Fall,
		time.October: Fall, time.November: Fall, time.December: Winter,
	}
	for month, season := range expected {
		assert.Equal(t, season, SeasonAt(fixedClock(month)()), month.String())
	}
}

func TestGenerateSuggestionsEmptyWardrobe(t *testing.T) {
	g := NewGenerator(WithClock(fixedClock(time.July)))
	suggestions := g.GenerateSuggestions(GenerateOptions{})
	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}

func TestGenerateSuggestionsSingleOutfit(t *testing.T) {
	g := NewGenerator()
	wardrobe := []ClothingItem{
		item("t1", Top, "#FF0000"),
		item("b1", Bottom, "#FFFFFF"),
		item("s1", Shoes, "#000000"),
	}

	suggestions := g.GenerateSuggestions(GenerateOptions{Wardrobe: wardrobe, CurrentSeason: Summer})

	require.Len(t, suggestions, 1)
	assert.Equal(t, "t1-b1-s1", suggestions[0].ID)
	assert.Equal(t, []string{"t1", "b1", "s1"}, itemIDs(suggestions[0].Items))
	assert.GreaterOrEqual(t, suggestions[0].Score, 0.0)
	assert.LessOrEqual(t, suggestions[0].Score, 100.0)
}

func TestGenerateSuggestionsSeasonFromClock(t *testing.T) {
	wardrobe := []ClothingItem{
		item("t1", Top, "#FF0000", Winter),
		item("b1", Bottom, "#FFFFFF", Winter),
		item("s1", Shoes, "#000000", Winter, Summer),
	}

	summer := NewGenerator(WithClock(fixedClock(time.July)))
	assert.Empty(t, summer.GenerateSuggestions(GenerateOptions{Wardrobe: wardrobe}))

	winter := NewGenerator(WithClock(fixedClock(time.January)))
	assert.Len(t, winter.GenerateSuggestions(GenerateOptions{Wardrobe: wardrobe}), 1)

	// an explicit season wins over the clock
	assert.Len(t, summer.GenerateSuggestions(GenerateOptions{Wardrobe: wardrobe, CurrentSeason: Winter}), 1)
}

func TestGenerateSuggestionsPoolsBothShapes(t *testing.T) {
	wardrobe := []ClothingItem{
		item("t1", Top, "#FF0000"),
		item("b1", Bottom, "#FFFFFF"),
		item("d1", Dress, "#3366CC"),
		item("s1", Shoes, "#000000"),
		item("a1", Accessory, "#FFD700"),
	}

	suggestions := NewGenerator().GenerateSuggestions(GenerateOptions{Wardrobe: wardrobe, CurrentSeason: Summer, Count: 10})

	require.Len(t, suggestions, 2)
	ids := []string{suggestions[0].ID, suggestions[1].ID}
	assert.ElementsMatch(t, []string{"t1-b1-s1", "d1-s1"}, ids)
	for _, s := range suggestions {
		hasDress := false
		hasTopOrBottom := false
		for _, it := range s.Items {
			assert.NotEqual(t, Accessory, it.Type)
			hasDress = hasDress || it.Type == Dress
			hasTopOrBottom = hasTopOrBottom || it.Type == Top || it.Type == Bottom
		}
		assert.False(t, hasDress && hasTopOrBottom, "dress mixed with top/bottom in %s", s.ID)
		assert.Contains(t, []int{2, 3}, len(s.Items))
	}
}

func TestGenerateSuggestionsMissingSlot(t *testing.T) {
	wardrobe := []ClothingItem{
		item("t1", Top, "#FF0000"),
		item("b1", Bottom, "#FFFFFF"),
		item("d1", Dress, "#3366CC"),
	}
	assert.Empty(t, NewGenerator().GenerateSuggestions(GenerateOptions{Wardrobe: wardrobe, CurrentSeason: Summer}))
}

func TestGenerateSuggestionsLockedItemPinsSlot(t *testing.T) {
	wardrobe := []ClothingItem{
		item("t1", Top, "#FF0000"),
		item("t2", Top, "#00FF00"),
		item("t3", Top, "#0000FF"),
		item("b1", Bottom, "#FFFFFF"),
		item("b2", Bottom, "#808080"),
		item("s1", Shoes, "#000000"),
	}
	locked := []ClothingItem{wardrobe[1]}

	suggestions := NewGenerator().GenerateSuggestions(GenerateOptions{
		Wardrobe:      wardrobe,
		LockedItems:   locked,
		CurrentSeason: Summer,
		Count:         10,
	})

	require.Len(t, suggestions, 2)
	for _, s := range suggestions {
		assert.Equal(t, "t2", s.Items[0].ID)
	}
}

func TestGenerateSuggestionsSortedAndLimited(t *testing.T) {
	wardrobe := []ClothingItem{
		item("t1", Top, "#FF0000"),
		item("t2", Top, "#0000FF"),
		item("b1", Bottom, "#00FF00"),
		item("b2", Bottom, "#FFFFFF"),
		item("s1", Shoes, "#000000"),
		item("s2", Shoes, "#FF00FF"),
	}

	g := NewGenerator()
	all := g.GenerateSuggestions(GenerateOptions{Wardrobe: wardrobe, CurrentSeason: Summer, Count: 100})
	require.Len(t, all, 8)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Score, all[i].Score)
	}

	top := g.GenerateSuggestions(GenerateOptions{Wardrobe: wardrobe, CurrentSeason: Summer})
	require.Len(t, top, DefaultSuggestionCount)
	assert.Equal(t, all[:DefaultSuggestionCount], top)
}

func TestGenerateSuggestionsTiesKeepEnumerationOrder(t *testing.T) {
	wardrobe := []ClothingItem{
		item("t1", Top, "#808080"),
		item("t2", Top, "#808080"),
		item("b1", Bottom, "#808080"),
		item("s1", Shoes, "#808080"),
	}

	suggestions := NewGenerator().GenerateSuggestions(GenerateOptions{Wardrobe: wardrobe, CurrentSeason: Summer})

	require.Len(t, suggestions, 2)
	assert.Equal(t, suggestions[0].Score, suggestions[1].Score)
	assert.Equal(t, "t1-b1-s1", suggestions[0].ID)
	assert.Equal(t, "t2-b1-s1", suggestions[1].ID)
}

func TestGenerateSuggestionsDoesNotMutateInput(t *testing.T) {
	wardrobe := []ClothingItem{
		item("t1", Top, "#FF0000"),
		item("b1", Bottom, "#FFFFFF"),
		item("s1", Shoes, "#000000"),
	}
	before := make([]ClothingItem, len(wardrobe))
	copy(before, wardrobe)

	NewGenerator().GenerateSuggestions(GenerateOptions{Wardrobe: wardrobe, CurrentSeason: Summer, PreferredStyle: "casual"})

	assert.Equal(t, before, wardrobe)
}

func TestShuffleAllLocked(t *testing.T) {
	current := []ClothingItem{
		item("t1", Top, "#FF0000"),
		item("b1", Bottom, "#FFFFFF"),
		item("s1", Shoes, "#000000"),
	}
	wardrobe := append(current, item("t2", Top, "#00FF00"), item("s2", Shoes, "#FF00FF"))

	result := NewGenerator().Shuffle(current, wardrobe, []string{"t1", "b1", "s1"})

	require.NotNil(t, result)
	assert.Equal(t, []string{"t1", "b1", "s1"}, itemIDs(result.Items))
	assert.Equal(t, "t1-b1-s1", result.ID)
}

func TestShuffleReplacesUnlockedItems(t *testing.T) {
	current := []ClothingItem{
		item("t1", Top, "#FF0000"),
		item("b1", Bottom, "#FFFFFF"),
		item("s1", Shoes, "#000000"),
	}
	wardrobe := []ClothingItem{
		current[0], current[1], current[2],
		item("t2", Top, "#00FF00"),
		item("t3", Top, "#0000FF"),
		item("s2", Shoes, "#FF00FF"),
	}
	random := &scriptedRandom{picks: []int{1, 0}}

	result := NewGenerator(WithRandom(random)).Shuffle(current, wardrobe, []string{"b1"})

	require.NotNil(t, result)
	// locked first, then alternatives in the order of the unlocked items
	assert.Equal(t, []string{"b1", "t3", "s2"}, itemIDs(result.Items))
	assert.Equal(t, "b1-t3-s2", result.ID)
	assert.Equal(t, 2, random.calls)
}

func TestShuffleKeepsOriginalWithoutAlternative(t *testing.T) {
	current := []ClothingItem{
		item("d1", Dress, "#3366CC"),
		item("s1", Shoes, "#000000"),
	}
	wardrobe := []ClothingItem{current[0], current[1], item("d2", Dress, "#FF0000")}

	result := NewGenerator(WithRandom(&scriptedRandom{})).Shuffle(current, wardrobe, nil)

	require.NotNil(t, result)
	assert.Equal(t, []string{"d2", "s1"}, itemIDs(result.Items))
}

func TestShuffleMarksLockedItems(t *testing.T) {
	current := []ClothingItem{item("t1", Top, "#FF0000"), item("b1", Bottom, "#FFFFFF")}
	wardrobe := append(current, item("b2", Bottom, "#000000"))

	result := NewGenerator().Shuffle(current, wardrobe, []string{"t1"})

	require.NotNil(t, result)
	assert.Equal(t, []string{"t1", "b2"}, itemIDs(result.Items))
	assert.True(t, result.Items[0].Locked)
	assert.False(t, result.Items[1].Locked)
	// the caller's outfit is not modified
	assert.False(t, current[0].Locked)
}

func TestShuffleHonorsLockedFlag(t *testing.T) {
	pinnedTop := item("t1", Top, "#FF0000")
	pinnedTop.Locked = true
	current := []ClothingItem{item("b1", Bottom, "#FFFFFF"), pinnedTop}
	wardrobe := append(current, item("t2", Top, "#00FF00"))

	result := NewGenerator().Shuffle(current, wardrobe, nil)

	require.NotNil(t, result)
	assert.Equal(t, []string{"t1", "b1"}, itemIDs(result.Items))
	assert.True(t, result.Items[0].Locked)
}

func TestShuffleIgnoresStyleAndWeather(t *testing.T) {
	current := []ClothingItem{item("t1", Top, "#FF0000"), item("b1", Bottom, "#FFFFFF")}
	result := NewGenerator().Shuffle(current, current, nil)

	require.NotNil(t, result)
	assert.Equal(t, ScoreOutfit(result.Items, ScoreOptions{}).Score, result.Score)
	assert.NotContains(t, result.Reasons, "Consider adding a jacket")
}

func TestShuffleEmpty(t *testing.T) {
	assert.Nil(t, NewGenerator().Shuffle(nil, []ClothingItem{item("t1", Top, "#FF0000")}, nil))
}

func TestSurpriseOnlyTopsAndAccessories(t *testing.T) {
	wardrobe := []ClothingItem{
		item("t1", Top, "#FF0000"),
		item("a1", Accessory, "#FFD700"),
	}
	assert.Nil(t, NewGenerator(WithClock(fixedClock(time.July))).Surprise(wardrobe))
}

func TestSurprisePrefersDress(t *testing.T) {
	wardrobe := []ClothingItem{
		item("t1", Top, "#FF0000"),
		item("b1", Bottom, "#FFFFFF"),
		item("d1", Dress, "#3366CC"),
		item("d2", Dress, "#FF00FF"),
		item("s1", Shoes, "#000000"),
	}
	g := NewGenerator(WithClock(fixedClock(time.July)), WithRandom(&scriptedRandom{picks: []int{1, 0}}))

	result := g.Surprise(wardrobe)

	require.NotNil(t, result)
	assert.Equal(t, []string{"d2", "s1"}, itemIDs(result.Items))
	require.NotEmpty(t, result.Reasons)
	assert.Equal(t, "Surprise combination!", result.Reasons[len(result.Reasons)-1])
}

func TestSurpriseFallsBackToSeparates(t *testing.T) {
	wardrobe := []ClothingItem{
		item("t1", Top, "#FF0000"),
		item("b1", Bottom, "#FFFFFF"),
		item("s1", Shoes, "#000000"),
		item("d1", Dress, "#3366CC", Winter),
	}
	result := NewGenerator(WithClock(fixedClock(time.July))).Surprise(wardrobe)

	require.NotNil(t, result)
	assert.Equal(t, []string{"t1", "b1", "s1"}, itemIDs(result.Items))
	assert.Contains(t, result.Reasons, "Surprise combination!")
	assert.Equal(t, colorutil.HarmonyNeutral, result.ColorHarmony)
}

func TestSurpriseOutOfSeason(t *testing.T) {
	wardrobe := []ClothingItem{
		item("d1", Dress, "#3366CC", Winter),
		item("s1", Shoes, "#000000", Winter),
	}
	assert.Nil(t, NewGenerator(WithClock(fixedClock(time.July))).Surprise(wardrobe))
}

func TestPackageLevelHelpers(t *testing.T) {
	wardrobe := []ClothingItem{
		item("t1", Top, "#FF0000", Seasons...),
		item("b1", Bottom, "#FFFFFF", Seasons...),
		item("s1", Shoes, "#000000", Seasons...),
	}

	suggestions := GenerateSuggestions(GenerateOptions{Wardrobe: wardrobe})
	require.Len(t, suggestions, 1)

	surprise := Surprise(wardrobe)
	require.NotNil(t, surprise)
	assert.Len(t, surprise.Items, 3)

	shuffled := Shuffle(suggestions[0].Items, wardrobe, nil)
	require.NotNil(t, shuffled)
	assert.Len(t, shuffled.Items, 3)
}
