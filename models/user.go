package models

import "time"

type JsonModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserAccount mirrors the identity provider's user. Sign-in happens elsewhere;
// we only read the token subject.
type UserAccount struct {
	JsonModel
	Name   string `json:"name"`
	Email  string `json:"email" gorm:"unique"`
	Banned bool   `gorm:"default:false" json:"-"`
	//"STARTED_AUTH", "FINISHED_AUTH"
	Status    string `json:"-"`
	AvatarURL string `json:"avatar_url"`

	// used to resolve weather when the client doesn't send it
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	PreferredStyle     *string `json:"preferred_style"`
	ReceiveDailyOutfit bool    `gorm:"default:false" json:"receive_daily_outfit"`
}

func (u UserAccount) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}
