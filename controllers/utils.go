package controllers

import (
	"fmt"
	"strconv"

	"wardrobeapi/models"
	"wardrobeapi/services"

	"github.com/labstack/echo/v4"
)

func BoolPointer(b bool) *bool {
	return &b
}

func StrPointer(b string) *string {
	return &b
}

func Float64Pointer(u float64) *float64 {
	return &u
}

func UIntToStr(value uint) string {
	return strconv.FormatUint(uint64(value), 10)
}

// ParseItemIDs turns outfit item ids back into clothing primary keys.
func ParseItemIDs(ids []string) ([]uint, error) {
	parsed := make([]uint, 0, len(ids))
	for _, id := range ids {
		value, err := strconv.ParseUint(id, 10, 64)
		if err != nil || value == 0 {
			return nil, fmt.Errorf("invalid item id %q", id)
		}
		parsed = append(parsed, uint(value))
	}
	return parsed, nil
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

func contextDeps(c echo.Context) (models.UserAccount, services.WardrobeStoreProvider, bool) {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return models.UserAccount{}, nil, false
	}
	store, ok := c.Get("__store").(services.WardrobeStoreProvider)
	return user, store, ok
}
