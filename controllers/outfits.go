package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"wardrobeapi/languageutil"
	"wardrobeapi/models"
	"wardrobeapi/outfits"
	"wardrobeapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
)

type WeatherIn struct {
	Temperature   float64 `json:"temperature"`
	FeelsLike     float64 `json:"feels_like"`
	Humidity      float64 `json:"humidity"`
	Condition     string  `json:"condition" validate:"weathercondition"`
	UVIndex       float64 `json:"uv_index"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"wind_speed"`
}

func (w WeatherIn) weather() *outfits.Weather {
	return &outfits.Weather{
		Temperature:   w.Temperature,
		FeelsLike:     w.FeelsLike,
		Humidity:      w.Humidity,
		Condition:     outfits.WeatherCondition(w.Condition),
		UVIndex:       w.UVIndex,
		Precipitation: w.Precipitation,
		WindSpeed:     w.WindSpeed,
	}
}

type SuggestionsIn struct {
	LockedItemIDs  []string   `json:"locked_item_ids" validate:"max=10"`
	PreferredStyle string     `json:"preferred_style" validate:"max=40"`
	Occasion       string     `json:"occasion" validate:"max=40"`
	Season         string     `json:"season" validate:"omitempty,season"`
	Weather        *WeatherIn `json:"weather"`
	Count          int        `json:"count" validate:"min=0,max=10"`
}

type ShuffleIn struct {
	ItemIDs       []string `json:"item_ids" validate:"required,min=1,max=10"`
	LockedItemIDs []string `json:"locked_item_ids" validate:"max=10"`
}

type SaveOutfitIn struct {
	ItemIDs []string `json:"item_ids" validate:"required,min=1,max=10"`
	Kind    string   `json:"kind" validate:"required,outfitkind"`
}

type SuggestionsResponse struct {
	Outfits []outfits.OutfitSuggestion `json:"outfits"`
}

type OutfitResponse struct {
	Outfit *outfits.OutfitSuggestion `json:"outfit"`
}

type DailyOutfitResponse struct {
	Generation models.OutfitGeneration `json:"generation"`
	// still existing items of the outfit
	Items []outfits.ClothingItem `json:"items"`
}

type OutfitController struct {
	Generator       *outfits.Generator
	SuggestionCache services.SuggestionCacheProvider
	Weather         services.WeatherServiceProvider
	Metrics         *services.OutfitMetrics
	Clothes         *ClothesController
}

func (controller *OutfitController) OutfitRoutes(g *echo.Group) {
	g.POST("/suggestions", controller.Suggestions)
	g.POST("/shuffle", controller.Shuffle)
	g.POST("/surprise", controller.Surprise)
	g.POST("/save", controller.Save)
	g.GET("/daily", controller.Daily)
}

// pickItems returns the wardrobe items for ids in request order, false if any is not in the wardrobe.
func pickItems(wardrobe []outfits.ClothingItem, ids []string) ([]outfits.ClothingItem, bool) {
	picked := make([]outfits.ClothingItem, 0, len(ids))
	for _, id := range ids {
		index := slices.IndexFunc(wardrobe, func(item outfits.ClothingItem) bool { return item.ID == id })
		if index < 0 {
			return nil, false
		}
		picked = append(picked, wardrobe[index])
	}
	return picked, true
}

func withImages(suggestion outfits.OutfitSuggestion, urls map[string]string) outfits.OutfitSuggestion {
	items := make([]outfits.ClothingItem, len(suggestion.Items))
	for i, item := range suggestion.Items {
		item.ImageURL = urls[item.ID]
		items[i] = item
	}
	suggestion.Items = items
	return suggestion
}

// clothesByKeys keeps the rows whose outfit item id is in keys.
func clothesByKeys(clothes []models.Clothing, keys []string) []models.Clothing {
	picked := []models.Clothing{}
	for _, c := range clothes {
		if slices.Contains(keys, models.ClothingKey(c.ID)) {
			picked = append(picked, c)
		}
	}
	return picked
}

// referencedClothes returns only the rows used by the given suggestions, so
// image URLs are presigned for what the response shows.
func referencedClothes(clothes []models.Clothing, suggestions ...outfits.OutfitSuggestion) []models.Clothing {
	var keys []string
	for _, suggestion := range suggestions {
		for _, item := range suggestion.Items {
			keys = append(keys, item.ID)
		}
	}
	return clothesByKeys(clothes, keys)
}

func (controller *OutfitController) imageURLs(ctx context.Context, clothes []models.Clothing) map[string]string {
	if controller.Clothes == nil {
		return map[string]string{}
	}
	return controller.Clothes.ResolveImageURLs(ctx, clothes)
}

func (controller *OutfitController) wardrobe(c echo.Context) (models.UserAccount, services.WardrobeStoreProvider, []models.Clothing, error) {
	user, store, ok := contextDeps(c)
	if !ok {
		return user, nil, nil, echo.ErrUnauthorized
	}
	clothes, err := store.ListClothes(c.Request().Context(), user.ID)
	if err != nil {
		sentry.CaptureException(err)
		return user, store, nil, err
	}
	return user, store, clothes, nil
}

func (controller *OutfitController) resolveWeather(ctx context.Context, user models.UserAccount, in *WeatherIn) *outfits.Weather {
	if in != nil {
		return in.weather()
	}
	if !user.HasLocation() || controller.Weather == nil {
		return nil
	}
	weather, err := controller.Weather.CurrentWeather(ctx, *user.Latitude, *user.Longitude)
	if err != nil {
		fmt.Printf("[User %v] Weather unavailable, suggesting without it: %v\n", user.ID, err)
		sentry.CaptureException(err)
		return nil
	}
	return weather
}

func (controller *OutfitController) Suggestions(c echo.Context) error {
	var req SuggestionsIn
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Season = languageutil.LowerCaser.String(strings.TrimSpace(req.Season))
	if err := c.Validate(req); err != nil {
		return errorJSON(c, http.StatusBadRequest, validationMessage(err))
	}
	lockedIDs, err := ParseItemIDs(req.LockedItemIDs)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	user, _, clothes, err := controller.wardrobe(c)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch clothes")
	}
	ctx := c.Request().Context()
	wardrobe := models.OutfitItems(clothes)

	lockedKeys := make([]string, len(lockedIDs))
	for i, id := range lockedIDs {
		lockedKeys[i] = models.ClothingKey(id)
	}
	locked, ok := pickItems(wardrobe, lockedKeys)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "Item not found")
	}

	query := services.SuggestionQuery{
		LockedItemIDs:  lockedIDs,
		PreferredStyle: languageutil.LowerCaser.String(strings.TrimSpace(req.PreferredStyle)),
		Occasion:       languageutil.LowerCaser.String(strings.TrimSpace(req.Occasion)),
		Season:         outfits.Season(req.Season),
		Count:          req.Count,
	}
	if query.PreferredStyle == "" && user.PreferredStyle != nil {
		query.PreferredStyle = *user.PreferredStyle
	}
	if query.Season == "" {
		query.Season = controller.Generator.CurrentSeason()
	}
	if query.Count <= 0 {
		query.Count = outfits.DefaultSuggestionCount
	}
	query.Weather = controller.resolveWeather(ctx, user, req.Weather)

	key := services.SuggestionKey(user.ID, clothes, query)
	suggestions, hit := controller.SuggestionCache.GetSuggestions(ctx, key)
	if !hit {
		suggestions = controller.Generator.GenerateSuggestions(outfits.GenerateOptions{
			Wardrobe:       wardrobe,
			LockedItems:    locked,
			PreferredStyle: query.PreferredStyle,
			Weather:        query.Weather,
			Occasion:       query.Occasion,
			CurrentSeason:  query.Season,
			Count:          query.Count,
		})
		controller.SuggestionCache.SetSuggestions(ctx, key, suggestions)
	}
	controller.Metrics.Observe(models.OutfitKindSuggestion, suggestions...)

	urls := controller.imageURLs(ctx, referencedClothes(clothes, suggestions...))
	response := SuggestionsResponse{Outfits: make([]outfits.OutfitSuggestion, len(suggestions))}
	for i, suggestion := range suggestions {
		response.Outfits[i] = withImages(suggestion, urls)
	}
	return c.JSON(http.StatusOK, response)
}

func (controller *OutfitController) Shuffle(c echo.Context) error {
	var req ShuffleIn
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return errorJSON(c, http.StatusBadRequest, validationMessage(err))
	}

	_, _, clothes, err := controller.wardrobe(c)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch clothes")
	}
	wardrobe := models.OutfitItems(clothes)
	current, ok := pickItems(wardrobe, req.ItemIDs)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "Item not found")
	}

	shuffled := controller.Generator.Shuffle(current, wardrobe, req.LockedItemIDs)
	return controller.single(c, models.OutfitKindShuffle, clothes, shuffled)
}

func (controller *OutfitController) Surprise(c echo.Context) error {
	_, _, clothes, err := controller.wardrobe(c)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch clothes")
	}
	surprise := controller.Generator.Surprise(models.OutfitItems(clothes))
	return controller.single(c, models.OutfitKindSurprise, clothes, surprise)
}

func (controller *OutfitController) single(c echo.Context, kind string, clothes []models.Clothing, suggestion *outfits.OutfitSuggestion) error {
	if suggestion == nil {
		controller.Metrics.Observe(kind)
		return c.JSON(http.StatusOK, OutfitResponse{})
	}
	controller.Metrics.Observe(kind, *suggestion)
	withURLs := withImages(*suggestion, controller.imageURLs(c.Request().Context(), referencedClothes(clothes, *suggestion)))
	return c.JSON(http.StatusOK, OutfitResponse{Outfit: &withURLs})
}

func (controller *OutfitController) Save(c echo.Context) error {
	var req SaveOutfitIn
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return errorJSON(c, http.StatusBadRequest, validationMessage(err))
	}
	ids, err := ParseItemIDs(req.ItemIDs)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	user, store, ok := contextDeps(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "Unauthorized")
	}
	ctx := c.Request().Context()

	clothes, err := store.GetClothes(ctx, user.ID, ids)
	if errors.Is(err, services.ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "Item not found")
	}
	if err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch clothes")
	}

	var opts outfits.ScoreOptions
	if user.PreferredStyle != nil {
		opts.PreferredStyle = *user.PreferredStyle
	}
	suggestion := outfits.NewSuggestion(models.OutfitItems(clothes), opts)
	generation := models.NewOutfitGeneration(user.ID, req.Kind, suggestion)
	if err := store.SaveOutfitGeneration(ctx, &generation); err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to save outfit")
	}
	fmt.Printf("[User %v] Outfit %s saved as %s\n", user.ID, generation.OutfitKey, generation.Kind)
	return c.JSON(http.StatusCreated, generation)
}

func (controller *OutfitController) Daily(c echo.Context) error {
	user, store, clothes, err := controller.wardrobe(c)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch clothes")
	}
	ctx := c.Request().Context()

	generation, err := store.LatestOutfitGeneration(ctx, user.ID, models.OutfitKindDaily)
	if errors.Is(err, services.ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "No daily outfit yet")
	}
	if err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch daily outfit")
	}

	urls := controller.imageURLs(ctx, clothesByKeys(clothes, generation.ItemIDs))
	wardrobe := models.OutfitItems(clothes)
	items := []outfits.ClothingItem{}
	for _, id := range generation.ItemIDs {
		if picked, ok := pickItems(wardrobe, []string{id}); ok {
			item := picked[0]
			item.ImageURL = urls[item.ID]
			items = append(items, item)
		}
	}
	return c.JSON(http.StatusOK, DailyOutfitResponse{Generation: generation, Items: items})
}

func validationMessage(err error) string {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("%v", httpErr.Message)
	}
	return err.Error()
}
