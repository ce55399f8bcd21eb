package colorutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSL holds hue in degrees [0,360) and saturation/lightness as percentages [0,100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// max euclidean distance between black and white is ~441.67
const maxColorDistance = 441

var hexColorRegex = regexp.MustCompile(`(?i)^#?([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})$`)
var shortHexColorRegex = regexp.MustCompile(`(?i)^#?([a-f\d])([a-f\d])([a-f\d])$`)

// ParseHex parses #RRGGBB, RRGGBB or the #RGB shorthand. Surrounding
// whitespace is not accepted.
// ok is false when the input is not a color, in which case black is returned.
func ParseHex(hex string) (RGB, bool) {
	matches := hexColorRegex.FindStringSubmatch(hex)
	if matches == nil {
		short := shortHexColorRegex.FindStringSubmatch(hex)
		if short == nil {
			return RGB{}, false
		}
		matches = []string{short[0], short[1] + short[1], short[2] + short[2], short[3] + short[3]}
	}
	r, _ := strconv.ParseUint(matches[1], 16, 8)
	g, _ := strconv.ParseUint(matches[2], 16, 8)
	b, _ := strconv.ParseUint(matches[3], 16, 8)
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, true
}

// HexToRGB never fails: anything unparseable is black.
func HexToRGB(hex string) RGB {
	rgb, _ := ParseHex(hex)
	return rgb
}

func RGBToHex(rgb RGB) string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// NormalizeHex returns the canonical uppercase #RRGGBB form.
func NormalizeHex(hex string) string {
	return RGBToHex(HexToRGB(hex))
}

func RGBToHSL(rgb RGB) HSL {
	r := float64(rgb.R) / 255
	g := float64(rgb.G) / 255
	b := float64(rgb.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	var h, s float64
	l := (max + min) / 2

	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}

		switch max {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	return HSL{H: h * 360, S: s * 100, L: l * 100}
}

func hexToHSL(hex string) HSL {
	return RGBToHSL(HexToRGB(hex))
}

// ColorDistance is plain euclidean distance in RGB space. It approximates
// Delta E but is not perceptually uniform.
func ColorDistance(color1, color2 string) float64 {
	rgb1 := HexToRGB(color1)
	rgb2 := HexToRGB(color2)

	dr := float64(rgb1.R) - float64(rgb2.R)
	dg := float64(rgb1.G) - float64(rgb2.G)
	db := float64(rgb1.B) - float64(rgb2.B)

	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// IsNeutralColor reports black/white/gray (low saturation) and beige/tan/brown tones.
func IsNeutralColor(hex string) bool {
	hsl := hexToHSL(hex)

	if hsl.S < 15 {
		return true
	}
	if hsl.H >= 20 && hsl.H <= 50 && hsl.S < 40 {
		return true
	}
	return false
}

// GetComplementaryColor inverts every channel. This is not a hue rotation.
func GetComplementaryColor(hex string) string {
	rgb := HexToRGB(hex)
	return RGBToHex(RGB{
		R: 255 - rgb.R,
		G: 255 - rgb.G,
		B: 255 - rgb.B,
	})
}
