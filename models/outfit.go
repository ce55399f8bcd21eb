package models

import (
	"wardrobeapi/outfits"

	"github.com/lib/pq"
)

const (
	OutfitKindSuggestion = "suggestion"
	OutfitKindShuffle    = "shuffle"
	OutfitKindSurprise   = "surprise"
	OutfitKindDaily      = "daily"
)

// OutfitGeneration is a generated outfit kept for history, written by the
// daily worker or when the user saves one.
type OutfitGeneration struct {
	JsonModel
	UserAccountID uint        `gorm:"index" json:"-"`
	UserAccount   UserAccount `json:"-"`
	Kind          string      `gorm:"index" json:"kind"`
	// outfit id, the ordered join of item ids
	OutfitKey    string         `json:"outfit_key"`
	ItemIDs      pq.StringArray `gorm:"type:text[]" json:"item_ids"`
	Score        float64        `json:"score"`
	ColorHarmony string         `json:"color_harmony"`
	Reasons      pq.StringArray `gorm:"type:text[]" json:"reasons"`
}

func NewOutfitGeneration(userID uint, kind string, suggestion outfits.OutfitSuggestion) OutfitGeneration {
	ids := make([]string, len(suggestion.Items))
	for i, item := range suggestion.Items {
		ids[i] = item.ID
	}
	return OutfitGeneration{
		UserAccountID: userID,
		Kind:          kind,
		OutfitKey:     suggestion.ID,
		ItemIDs:       ids,
		Score:         suggestion.Score,
		ColorHarmony:  string(suggestion.ColorHarmony),
		Reasons:       append(pq.StringArray{}, suggestion.Reasons...),
	}
}
