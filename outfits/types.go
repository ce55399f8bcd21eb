package outfits

import (
	"slices"
	"strings"

	"wardrobeapi/colorutil"
)

type ClothingType string

const (
	Top       ClothingType = "TOP"
	Bottom    ClothingType = "BOTTOM"
	Dress     ClothingType = "DRESS"
	Outerwear ClothingType = "OUTERWEAR"
	Shoes     ClothingType = "SHOES"
	Accessory ClothingType = "ACCESSORY"
)

var ClothingTypes = []ClothingType{Top, Bottom, Dress, Outerwear, Shoes, Accessory}

type Season string

const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
)

var Seasons = []Season{Winter, Spring, Summer, Fall}

type WeatherCondition string

const (
	Sunny        WeatherCondition = "sunny"
	PartlyCloudy WeatherCondition = "partly-cloudy"
	Cloudy       WeatherCondition = "cloudy"
	Rainy        WeatherCondition = "rainy"
	Stormy       WeatherCondition = "stormy"
	Snowy        WeatherCondition = "snowy"
	Foggy        WeatherCondition = "foggy"
	Windy        WeatherCondition = "windy"
)

var WeatherConditions = []WeatherCondition{Sunny, PartlyCloudy, Cloudy, Rainy, Stormy, Snowy, Foggy, Windy}

// Weather is a snapshot from the weather provider. Temperatures are in °C.
// Only Temperature and Condition take part in scoring.
type Weather struct {
	Temperature   float64          `json:"temperature"`
	FeelsLike     float64          `json:"feels_like"`
	Humidity      float64          `json:"humidity"`
	Condition     WeatherCondition `json:"condition"`
	UVIndex       float64          `json:"uv_index"`
	Precipitation float64          `json:"precipitation"`
	WindSpeed     float64          `json:"wind_speed"`
}

type ClothingItem struct {
	ID           string       `json:"id"`
	ImageURL     string       `json:"image_url,omitempty"`
	Type         ClothingType `json:"type"`
	Styles       []string     `json:"styles"`
	Seasons      []Season     `json:"seasons"`
	Occasions    []string     `json:"occasions"`
	PrimaryColor string       `json:"primary_color"`
	Pattern      string       `json:"pattern,omitempty"`
	// Locked is request scoped and never persisted.
	Locked bool `json:"locked,omitempty"`
}

func (item ClothingItem) HasStyle(style string) bool {
	return slices.Contains(item.Styles, style)
}

func (item ClothingItem) HasSeason(season Season) bool {
	return slices.Contains(item.Seasons, season)
}

func (item ClothingItem) HasOccasion(occasion string) bool {
	return slices.Contains(item.Occasions, occasion)
}

// OutfitSuggestion references the wardrobe items it was built from; it does
// not own them.
type OutfitSuggestion struct {
	ID           string                `json:"id"`
	Items        []ClothingItem        `json:"items"`
	Score        float64               `json:"score"`
	ColorHarmony colorutil.HarmonyType `json:"color_harmony"`
	Reasons      []string              `json:"reasons"`
}

// OutfitID is the ordered join of item ids, stable for a given item sequence.
func OutfitID(items []ClothingItem) string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return strings.Join(ids, "-")
}

type GenerateOptions struct {
	Wardrobe       []ClothingItem
	LockedItems    []ClothingItem
	PreferredStyle string
	Weather        *Weather
	Occasion       string
	// CurrentSeason defaults to the generator clock's season.
	CurrentSeason Season
	// Count defaults to 3.
	Count int
}

const DefaultSuggestionCount = 3
