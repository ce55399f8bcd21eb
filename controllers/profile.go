package controllers

import (
	"net/http"
	"strings"

	"wardrobeapi/languageutil"
	"wardrobeapi/models"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
)

type ProfileController struct {
}

type UserInfoOut struct {
	ID                 uint     `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Status             string   `json:"status"`
	AvatarUrl          string   `json:"avatar_url"`
	PreferredStyle     *string  `json:"preferred_style"`
	ReceiveDailyOutfit bool     `json:"receive_daily_outfit"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
}

type UpdateProfileIn struct {
	PreferredStyle     *string  `json:"preferred_style" validate:"omitempty,max=40"`
	ReceiveDailyOutfit *bool    `json:"receive_daily_outfit"`
	Latitude           *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude          *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
}

func userInfo(user models.UserAccount) UserInfoOut {
	return UserInfoOut{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		Status:             user.Status,
		AvatarUrl:          user.AvatarURL,
		PreferredStyle:     user.PreferredStyle,
		ReceiveDailyOutfit: user.ReceiveDailyOutfit,
		Latitude:           user.Latitude,
		Longitude:          user.Longitude,
	}
}

func (controller *ProfileController) ProfileRoutes(g *echo.Group) {
	g.GET("/me", func(c echo.Context) error {
		user := c.Get("currentUser").(models.UserAccount)
		return c.JSON(http.StatusOK, userInfo(user))
	})

	g.PUT("/me", func(c echo.Context) error {
		user, store, ok := contextDeps(c)
		if !ok {
			return errorJSON(c, http.StatusUnauthorized, "Unauthorized")
		}
		var req UpdateProfileIn
		if err := c.Bind(&req); err != nil {
			return errorJSON(c, http.StatusBadRequest, "Invalid request body")
		}
		if err := c.Validate(req); err != nil {
			return errorJSON(c, http.StatusBadRequest, validationMessage(err))
		}

		if req.PreferredStyle != nil {
			// empty string clears the preference
			style := languageutil.LowerCaser.String(strings.TrimSpace(*req.PreferredStyle))
			if style == "" {
				user.PreferredStyle = nil
			} else {
				user.PreferredStyle = &style
			}
		}
		if req.ReceiveDailyOutfit != nil {
			user.ReceiveDailyOutfit = *req.ReceiveDailyOutfit
		}
		if req.Latitude != nil {
			user.Latitude = req.Latitude
		}
		if req.Longitude != nil {
			user.Longitude = req.Longitude
		}

		if err := store.UpdateUser(c.Request().Context(), &user); err != nil {
			sentry.CaptureException(err)
			return errorJSON(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return c.JSON(http.StatusOK, userInfo(user))
	})
}
