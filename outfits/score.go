package outfits

import (
	"fmt"
	"math"

	"wardrobeapi/colorutil"
)

const baseScore = 50

type ScoreOptions struct {
	PreferredStyle string
	Weather        *Weather
	Occasion       string
}

type ScoreResult struct {
	Score        float64
	Reasons      []string
	ColorHarmony colorutil.HarmonyType
}

// ScoreOutfit rates an item set from 0 to 100. Reasons follow evaluation order.
func ScoreOutfit(items []ClothingItem, opts ScoreOptions) ScoreResult {
	score := float64(baseScore)
	reasons := []string{}
	harmony := colorutil.HarmonyNeutral

	// every pair counts the same regardless of slot
	var totalColorScore float64
	colorPairs := 0
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			totalColorScore += colorutil.GetColorHarmonyScore(items[i].PrimaryColor, items[j].PrimaryColor)
			colorPairs++
			if i == 0 && j == 1 {
				harmony = colorutil.GetColorHarmonyType(items[i].PrimaryColor, items[j].PrimaryColor)
			}
		}
	}
	if colorPairs > 0 {
		avgColorScore := totalColorScore / float64(colorPairs)
		score += (avgColorScore - 50) * 0.4
		if avgColorScore >= 85 {
			reasons = append(reasons, "Excellent color harmony")
		} else if avgColorScore >= 70 {
			reasons = append(reasons, "Good color coordination")
		}
	}

	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if colorutil.DoPatternsClash(items[i].Pattern, items[j].Pattern) {
				score -= 20
				reasons = append(reasons, "Pattern clash detected")
			}
		}
	}

	if len(items) > 0 {
		if opts.PreferredStyle != "" {
			ratio := fraction(items, func(item ClothingItem) bool { return item.HasStyle(opts.PreferredStyle) })
			score += ratio * 15
			if ratio >= 0.8 {
				reasons = append(reasons, fmt.Sprintf("Perfect %s style match", opts.PreferredStyle))
			}
		}

		if style, count := mostCommonStyle(items); count > 0 && float64(count) >= float64(len(items))*0.8 {
			score += 10
			reasons = append(reasons, fmt.Sprintf("Cohesive %s look", style))
		}

		if opts.Occasion != "" {
			ratio := fraction(items, func(item ClothingItem) bool { return item.HasOccasion(opts.Occasion) })
			score += ratio * 10
			if ratio >= 0.8 {
				reasons = append(reasons, fmt.Sprintf("Great for %s", opts.Occasion))
			}
		}

		if opts.Weather != nil {
			score += scoreWeather(items, *opts.Weather)
			if opts.Weather.Temperature < 10 && !hasType(items, Outerwear) {
				reasons = append(reasons, "Consider adding a jacket")
			}
		}
	}

	return ScoreResult{
		Score:        math.Max(0, math.Min(100, score)),
		Reasons:      reasons,
		ColorHarmony: harmony,
	}
}

// scoreWeather returns a bonus between 0 and 15.
func scoreWeather(items []ClothingItem, weather Weather) float64 {
	var score float64

	switch {
	case weather.Temperature < 0:
		score += fraction(items, func(item ClothingItem) bool { return item.HasSeason(Winter) }) * 15
	case weather.Temperature < 10:
		score += fraction(items, func(item ClothingItem) bool {
			return item.HasSeason(Winter) || item.HasSeason(Fall)
		}) * 10
	case weather.Temperature > 25:
		score += fraction(items, func(item ClothingItem) bool { return item.HasSeason(Summer) }) * 10
	}

	if weather.Condition == Rainy || weather.Condition == Stormy {
		if hasType(items, Outerwear) {
			score += 5
		}
	}
	return score
}

// mostCommonStyle counts every style tag across items; ties go to the tag seen first.
func mostCommonStyle(items []ClothingItem) (string, int) {
	counts := map[string]int{}
	var order []string
	for _, item := range items {
		for _, style := range item.Styles {
			if _, seen := counts[style]; !seen {
				order = append(order, style)
			}
			counts[style]++
		}
	}

	best, bestCount := "", 0
	for _, style := range order {
		if counts[style] > bestCount {
			best, bestCount = style, counts[style]
		}
	}
	return best, bestCount
}

func fraction(items []ClothingItem, match func(ClothingItem) bool) float64 {
	if len(items) == 0 {
		return 0
	}
	matched := 0
	for _, item := range items {
		if match(item) {
			matched++
		}
	}
	return float64(matched) / float64(len(items))
}

func hasType(items []ClothingItem, clothingType ClothingType) bool {
	for _, item := range items {
		if item.Type == clothingType {
			return true
		}
	}
	return false
}

// NewSuggestion scores items and wraps them as a suggestion.
func NewSuggestion(items []ClothingItem, opts ScoreOptions) OutfitSuggestion {
	result := ScoreOutfit(items, opts)
	return OutfitSuggestion{
		ID:           OutfitID(items),
		Items:        items,
		Score:        result.Score,
		ColorHarmony: result.ColorHarmony,
		Reasons:      result.Reasons,
	}
}
