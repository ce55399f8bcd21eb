package outfits

import (
	"math/rand/v2"
	"slices"
	"sort"
	"time"
)

// RandomSource picks an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int {
	return rand.IntN(n)
}

// Generator composes outfits from a wardrobe snapshot. It holds no state
// besides its clock and random source and is safe for concurrent use when
// the random source is.
type Generator struct {
	now    func() time.Time
	random RandomSource
}

type Option func(*Generator)

func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func WithRandom(random RandomSource) Option {
	return func(g *Generator) {
		g.random = random
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now, random: globalRandom{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGenerator = NewGenerator()

func GenerateSuggestions(opts GenerateOptions) []OutfitSuggestion {
	return defaultGenerator.GenerateSuggestions(opts)
}

func Shuffle(currentOutfit, wardrobe []ClothingItem, lockedItemIDs []string) *OutfitSuggestion {
	return defaultGenerator.Shuffle(currentOutfit, wardrobe, lockedItemIDs)
}

func Surprise(wardrobe []ClothingItem) *OutfitSuggestion {
	return defaultGenerator.Surprise(wardrobe)
}

// SeasonAt maps a month to its northern hemisphere season.
func SeasonAt(t time.Time) Season {
	switch t.Month() {
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	case time.September, time.October, time.November:
		return Fall
	default:
		return Winter
	}
}

func (g *Generator) CurrentSeason() Season {
	return SeasonAt(g.now())
}

func filterSeason(wardrobe []ClothingItem, season Season) []ClothingItem {
	var seasonal []ClothingItem
	for _, item := range wardrobe {
		if item.HasSeason(season) {
			seasonal = append(seasonal, item)
		}
	}
	return seasonal
}

func filterType(items []ClothingItem, clothingType ClothingType) []ClothingItem {
	var matched []ClothingItem
	for _, item := range items {
		if item.Type == clothingType {
			matched = append(matched, item)
		}
	}
	return matched
}

// pinned returns the single locked item for a slot, or all candidates.
func pinned(candidates []ClothingItem, locked []ClothingItem, clothingType ClothingType) []ClothingItem {
	for _, item := range locked {
		if item.Type == clothingType {
			return []ClothingItem{item}
		}
	}
	return candidates
}

// GenerateSuggestions enumerates top+bottom+shoes and dress+shoes combinations
// of in-season items, scores them and returns the best Count. Ties keep
// enumeration order.
func (g *Generator) GenerateSuggestions(opts GenerateOptions) []OutfitSuggestion {
	season := opts.CurrentSeason
	if season == "" {
		season = g.CurrentSeason()
	}
	count := opts.Count
	if count <= 0 {
		count = DefaultSuggestionCount
	}

	seasonal := filterSeason(opts.Wardrobe, season)
	tops := filterType(seasonal, Top)
	bottoms := filterType(seasonal, Bottom)
	dresses := filterType(seasonal, Dress)
	shoes := filterType(seasonal, Shoes)
	// accessories are not part of any shape yet

	var combinations [][]ClothingItem
	if len(tops) > 0 && len(bottoms) > 0 && len(shoes) > 0 {
		for _, top := range pinned(tops, opts.LockedItems, Top) {
			for _, bottom := range pinned(bottoms, opts.LockedItems, Bottom) {
				for _, shoe := range pinned(shoes, opts.LockedItems, Shoes) {
					combinations = append(combinations, []ClothingItem{top, bottom, shoe})
				}
			}
		}
	}
	if len(dresses) > 0 && len(shoes) > 0 {
		for _, dress := range pinned(dresses, opts.LockedItems, Dress) {
			for _, shoe := range pinned(shoes, opts.LockedItems, Shoes) {
				combinations = append(combinations, []ClothingItem{dress, shoe})
			}
		}
	}

	scoreOpts := ScoreOptions{
		PreferredStyle: opts.PreferredStyle,
		Weather:        opts.Weather,
		Occasion:       opts.Occasion,
	}
	suggestions := make([]OutfitSuggestion, 0, len(combinations))
	for _, items := range combinations {
		suggestions = append(suggestions, NewSuggestion(items, scoreOpts))
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > count {
		suggestions = suggestions[:count]
	}
	return suggestions
}

// Shuffle replaces every unlocked item with a random wardrobe item of the same
// type that is not already in the outfit. An item is locked when its id is in
// lockedItemIDs or it already carries the Locked flag; locked items come first
// in the result and keep the flag. Types without an alternative keep their
// original item. Style, weather and occasion are not considered.
func (g *Generator) Shuffle(currentOutfit, wardrobe []ClothingItem, lockedItemIDs []string) *OutfitSuggestion {
	var locked, unlocked []ClothingItem
	for _, item := range currentOutfit {
		if item.Locked || slices.Contains(lockedItemIDs, item.ID) {
			item.Locked = true
			locked = append(locked, item)
		} else {
			unlocked = append(unlocked, item)
		}
	}

	inOutfit := func(id string) bool {
		return slices.ContainsFunc(currentOutfit, func(item ClothingItem) bool { return item.ID == id })
	}

	alternatives := make([]ClothingItem, 0, len(unlocked))
	for _, original := range unlocked {
		var candidates []ClothingItem
		for _, item := range wardrobe {
			if item.Type == original.Type && !inOutfit(item.ID) {
				candidates = append(candidates, item)
			}
		}
		if len(candidates) > 0 {
			alternatives = append(alternatives, candidates[g.random.IntN(len(candidates))])
		} else {
			alternatives = append(alternatives, original)
		}
	}

	items := append(locked, alternatives...)
	if len(items) == 0 {
		return nil
	}
	suggestion := NewSuggestion(items, ScoreOptions{})
	return &suggestion
}

func (g *Generator) randomItem(items []ClothingItem, clothingType ClothingType) (ClothingItem, bool) {
	candidates := filterType(items, clothingType)
	if len(candidates) == 0 {
		return ClothingItem{}, false
	}
	return candidates[g.random.IntN(len(candidates))], true
}

// Surprise builds a random in-season outfit, preferring dress+shoes and
// falling back to top+bottom+shoes. Nil when neither shape can be filled.
func (g *Generator) Surprise(wardrobe []ClothingItem) *OutfitSuggestion {
	seasonal := filterSeason(wardrobe, g.CurrentSeason())

	dress, hasDress := g.randomItem(seasonal, Dress)
	shoes, hasShoes := g.randomItem(seasonal, Shoes)

	var items []ClothingItem
	if hasDress && hasShoes {
		items = []ClothingItem{dress, shoes}
	} else {
		top, hasTop := g.randomItem(seasonal, Top)
		bottom, hasBottom := g.randomItem(seasonal, Bottom)
		if !hasTop || !hasBottom || !hasShoes {
			return nil
		}
		items = []ClothingItem{top, bottom, shoes}
	}

	suggestion := NewSuggestion(items, ScoreOptions{})
	suggestion.Reasons = append(suggestion.Reasons, "Surprise combination!")
	return &suggestion
}
