package colorutil

import "math"

type HarmonyType string

const (
	HarmonyComplementary HarmonyType = "complementary"
	HarmonyAnalogous     HarmonyType = "analogous"
	HarmonyTriadic       HarmonyType = "triadic"
	HarmonyNeutral       HarmonyType = "neutral"
	HarmonyMonochromatic HarmonyType = "monochromatic"
	HarmonyUnknown       HarmonyType = "unknown"
)

// hueDiff is the raw absolute difference, not the circular minimum.
// Pairs across the red boundary (10° vs 350°) only match through the
// >= 300 / >= 345 arms of the predicates below.
func hueDiff(color1, color2 string) float64 {
	return math.Abs(hexToHSL(color1).H - hexToHSL(color2).H)
}

// AreComplementary reports hues roughly opposite on the wheel (150°–210° apart).
func AreComplementary(color1, color2 string) bool {
	diff := hueDiff(color1, color2)
	return diff >= 150 && diff <= 210
}

// AreAnalogous reports hues adjacent on the wheel.
func AreAnalogous(color1, color2 string) bool {
	diff := hueDiff(color1, color2)
	return diff <= 60 || diff >= 300
}

// AreMonochromatic reports the same hue family.
func AreMonochromatic(color1, color2 string) bool {
	diff := hueDiff(color1, color2)
	return diff <= 15 || diff >= 345
}

// GetColorHarmonyScore rates a pair from 0 to 100. The checks run in a fixed
// order and the first match wins.
func GetColorHarmonyScore(color1, color2 string) float64 {
	if IsNeutralColor(color1) || IsNeutralColor(color2) {
		return 90
	}
	if AreMonochromatic(color1, color2) {
		return 95
	}
	if AreAnalogous(color1, color2) {
		return 85
	}
	if AreComplementary(color1, color2) {
		return 80
	}

	distance := ColorDistance(color1, color2)
	return math.Max(0, math.Min(100, 100-(distance/maxColorDistance)*50))
}

// GetColorHarmonyType uses the same precedence as GetColorHarmonyScore.
func GetColorHarmonyType(color1, color2 string) HarmonyType {
	if IsNeutralColor(color1) || IsNeutralColor(color2) {
		return HarmonyNeutral
	}
	if AreMonochromatic(color1, color2) {
		return HarmonyMonochromatic
	}
	if AreAnalogous(color1, color2) {
		return HarmonyAnalogous
	}
	if AreComplementary(color1, color2) {
		return HarmonyComplementary
	}
	return HarmonyUnknown
}
