package models

import (
	"strconv"

	"wardrobeapi/outfits"

	"github.com/lib/pq"
)

type Clothing struct {
	JsonModel
	Name string `json:"name"`
	// this is file **key** in storage, not a URL
	ImageURL        *string        `json:"image_url"`
	ClothingType    string         `gorm:"index" json:"clothing_type"` // TOP, BOTTOM, DRESS, OUTERWEAR, SHOES, ACCESSORY
	Styles          pq.StringArray `gorm:"type:text[]" json:"styles"`
	Seasons         pq.StringArray `gorm:"type:text[]" json:"seasons"`
	Occasions       pq.StringArray `gorm:"type:text[]" json:"occasions"`
	PrimaryColor    string         `json:"primary_color"`
	SecondaryColors pq.StringArray `gorm:"type:text[]" json:"secondary_colors"`
	Pattern         *string        `json:"pattern"`
	Brand           *string        `json:"brand"`
	IsOuterwear     bool           `json:"is_outerwear"`
	Owner           UserAccount    `json:"-"`
	OwnerID         uint           `gorm:"index" json:"-"`
}

// OutfitItem converts the stored row into the generator's view of it.
// imageURL is the already resolved (presigned) URL, may be empty.
func (c Clothing) OutfitItem(imageURL string) outfits.ClothingItem {
	seasons := make([]outfits.Season, len(c.Seasons))
	for i, season := range c.Seasons {
		seasons[i] = outfits.Season(season)
	}
	var pattern string
	if c.Pattern != nil {
		pattern = *c.Pattern
	}
	return outfits.ClothingItem{
		ID:           ClothingKey(c.ID),
		ImageURL:     imageURL,
		Type:         outfits.ClothingType(c.ClothingType),
		Styles:       append([]string{}, c.Styles...),
		Seasons:      seasons,
		Occasions:    append([]string{}, c.Occasions...),
		PrimaryColor: c.PrimaryColor,
		Pattern:      pattern,
	}
}

// ClothingKey is the outfit item id of a clothing row.
func ClothingKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func OutfitItems(clothes []Clothing) []outfits.ClothingItem {
	items := make([]outfits.ClothingItem, len(clothes))
	for i, c := range clothes {
		items[i] = c.OutfitItem("")
	}
	return items
}
