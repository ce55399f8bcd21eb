package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"wardrobeapi/services"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

func UserMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		store := c.Get("__store").(services.WardrobeStoreProvider)
		userRaw := c.Get("user")
		if userRaw == nil {
			return echo.ErrUnauthorized
		}
		user := userRaw.(*jwt.Token)
		claims := user.Claims.(jwt.MapClaims)
		subject, _ := claims["sub"].(string)
		if subject == "" {
			log.Println("Error while getting the token information!")
			return echo.ErrUnauthorized
		}
		userId, err := strconv.ParseUint(subject, 10, 64)
		if err != nil {
			return echo.ErrUnauthorized
		}

		currentUser, err := store.GetUser(c.Request().Context(), uint(userId))
		if errors.Is(err, services.ErrNotFound) {
			return echo.ErrUnauthorized
		}
		if err != nil {
			fmt.Println("Failed to fetch user", err)
			return echo.ErrInternalServerError
		}
		if currentUser.Banned {
			return echo.NewHTTPError(http.StatusLocked)
		}
		c.Set("currentUser", currentUser)
		return next(c)
	}
}
