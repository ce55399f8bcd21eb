package models

import (
	"slices"

	"wardrobeapi/colorutil"
	"wardrobeapi/outfits"

	"github.com/go-playground/validator"
)

var Patterns = []string{"solid", "stripes", "plaid", "floral", "polka-dots", "geometric", "animal-print", "abstract"}

var OutfitKinds = []string{OutfitKindSuggestion, OutfitKindShuffle, OutfitKindSurprise, OutfitKindDaily}

func ValidateClothingType(fl validator.FieldLevel) bool {
	return ValidateClothingTypeRaw(fl.Field().String())
}

func ValidateClothingTypeRaw(value string) bool {
	return slices.Contains(outfits.ClothingTypes, outfits.ClothingType(value))
}

func ValidateSeason(fl validator.FieldLevel) bool {
	return ValidateSeasonRaw(fl.Field().String())
}

func ValidateSeasonRaw(value string) bool {
	return slices.Contains(outfits.Seasons, outfits.Season(value))
}

// empty pattern means "no pattern" and is accepted
func ValidatePattern(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || slices.Contains(Patterns, value)
}

func ValidateWeatherCondition(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || slices.Contains(outfits.WeatherConditions, outfits.WeatherCondition(value))
}

func ValidateOutfitKind(fl validator.FieldLevel) bool {
	return slices.Contains(OutfitKinds, fl.Field().String())
}

func ValidateColorHex(fl validator.FieldLevel) bool {
	_, ok := colorutil.ParseHex(fl.Field().String())
	return ok
}

// RegisterValidations adds the wardrobe tag validators under their struct tag names.
func RegisterValidations(v *validator.Validate) {
	v.RegisterValidation("clothingtype", ValidateClothingType)
	v.RegisterValidation("season", ValidateSeason)
	v.RegisterValidation("pattern", ValidatePattern)
	v.RegisterValidation("weathercondition", ValidateWeatherCondition)
	v.RegisterValidation("outfitkind", ValidateOutfitKind)
	v.RegisterValidation("colorhex", ValidateColorHex)
}
