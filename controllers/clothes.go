package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"regexp"
	"strings"

	"wardrobeapi/colorutil"
	"wardrobeapi/languageutil"
	"wardrobeapi/models"
	"wardrobeapi/outfits"
	"wardrobeapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

// concurrent presign calls per list request
const presignConcurrency = 8

const maxColorImageSize = 10 << 20

var unsafeFileNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// ClothingIn is used both for create and for full update.
type ClothingIn struct {
	Name            string   `json:"name" validate:"omitempty,max=100"`
	FileName        *string  `json:"file_name" validate:"omitempty,max=200"`
	ClothingType    string   `json:"clothing_type" validate:"required,clothingtype"`
	Styles          []string `json:"styles" validate:"max=20,dive,max=40"`
	Seasons         []string `json:"seasons" validate:"dive,season"`
	Occasions       []string `json:"occasions" validate:"max=20,dive,max=40"`
	PrimaryColor    string   `json:"primary_color" validate:"required,colorhex"`
	SecondaryColors []string `json:"secondary_colors" validate:"max=10,dive,colorhex"`
	Pattern         string   `json:"pattern" validate:"pattern"`
	Brand           string   `json:"brand" validate:"omitempty,max=100"`
}

func (in *ClothingIn) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.ClothingType = languageutil.NormalizeClothingType(in.ClothingType)
	in.Styles = languageutil.NormalizeTags(in.Styles)
	in.Seasons = languageutil.NormalizeTags(in.Seasons)
	in.Occasions = languageutil.NormalizeTags(in.Occasions)
	in.PrimaryColor = strings.TrimSpace(in.PrimaryColor)
	for i, color := range in.SecondaryColors {
		in.SecondaryColors[i] = strings.TrimSpace(color)
	}
	in.Pattern = languageutil.LowerCaser.String(strings.TrimSpace(in.Pattern))
	in.Brand = strings.TrimSpace(in.Brand)
}

// apply copies the validated request onto the row, keeping identity and image.
func (in ClothingIn) apply(clothing *models.Clothing) {
	clothing.Name = in.Name
	clothing.ClothingType = in.ClothingType
	clothing.Styles = in.Styles
	clothing.Seasons = in.Seasons
	clothing.Occasions = in.Occasions
	clothing.PrimaryColor = colorutil.NormalizeHex(in.PrimaryColor)
	clothing.SecondaryColors = make([]string, len(in.SecondaryColors))
	for i, color := range in.SecondaryColors {
		clothing.SecondaryColors[i] = colorutil.NormalizeHex(color)
	}
	clothing.Pattern = nil
	if in.Pattern != "" {
		clothing.Pattern = StrPointer(in.Pattern)
	}
	clothing.Brand = nil
	if in.Brand != "" {
		clothing.Brand = StrPointer(in.Brand)
	}
	clothing.IsOuterwear = in.ClothingType == string(outfits.Outerwear)
}

type ClothingResponse struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	ClothingType    string   `json:"clothing_type"`
	Styles          []string `json:"styles"`
	Seasons         []string `json:"seasons"`
	Occasions       []string `json:"occasions"`
	PrimaryColor    string   `json:"primary_color"`
	SecondaryColors []string `json:"secondary_colors"`
	Pattern         *string  `json:"pattern"`
	Brand           *string  `json:"brand"`
	IsOuterwear     bool     `json:"is_outerwear"`
	Uri             *string  `json:"uri,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

type ClothingCreatedResponse struct {
	ClothingResponse ClothingResponse `json:"clothes"`
	FileUploadUrl    string           `json:"file_upload_url,omitempty"`
}

type ClothesListResponse struct {
	Tops        []ClothingResponse `json:"tops"`
	Bottoms     []ClothingResponse `json:"bottoms"`
	Dresses     []ClothingResponse `json:"dresses"`
	Outerwear   []ClothingResponse `json:"outerwear"`
	Shoes       []ClothingResponse `json:"shoes"`
	Accessories []ClothingResponse `json:"accessories"`
}

func clothingResponse(item models.Clothing, uri *string) ClothingResponse {
	return ClothingResponse{
		ID:              item.ID,
		Name:            item.Name,
		ClothingType:    item.ClothingType,
		Styles:          append([]string{}, item.Styles...),
		Seasons:         append([]string{}, item.Seasons...),
		Occasions:       append([]string{}, item.Occasions...),
		PrimaryColor:    item.PrimaryColor,
		SecondaryColors: append([]string{}, item.SecondaryColors...),
		Pattern:         item.Pattern,
		Brand:           item.Brand,
		IsOuterwear:     item.IsOuterwear,
		Uri:             uri,
		CreatedAt:       item.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:       item.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

type ClothesController struct {
	AWSService services.AWSServiceProvider
	URLCache   services.URLCacheServiceProvider
	BucketName string
}

func (controller *ClothesController) ClothingRoutes(g *echo.Group) {
	g.GET("/list", controller.ListClothes)
	g.POST("/create", controller.CreateClothing)
	g.PUT("/:id", controller.UpdateClothing)
	g.DELETE("/:id", controller.DeleteClothing)
	g.POST("/detect-color", controller.DetectColor)
}

func bindClothing(c echo.Context) (ClothingIn, error) {
	var req ClothingIn
	if err := c.Bind(&req); err != nil {
		return req, errors.New("Invalid request body")
	}
	req.normalize()
	if err := c.Validate(req); err != nil {
		return req, errors.New(validationMessage(err))
	}
	return req, nil
}

// attachUpload points the row at a fresh storage key and returns the upload URL for it.
func (controller *ClothesController) attachUpload(ctx context.Context, clothing *models.Clothing, fileName *string) (string, error) {
	if fileName == nil || *fileName == "" {
		return "", nil
	}
	safeName := unsafeFileNameChars.ReplaceAllString(path.Base(*fileName), "-")
	key := fmt.Sprintf("clothes/%d/%s-%s", clothing.OwnerID, uuid.NewString(), safeName)
	uploadUrl, err := controller.AWSService.PresignLink(ctx, controller.BucketName, key)
	if err != nil {
		return "", err
	}
	clothing.ImageURL = &key
	return uploadUrl, nil
}

func (controller *ClothesController) CreateClothing(c echo.Context) error {
	user, store, ok := contextDeps(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "Unauthorized")
	}
	req, err := bindClothing(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()

	clothing := models.Clothing{OwnerID: user.ID}
	req.apply(&clothing)
	uploadUrl, err := controller.attachUpload(ctx, &clothing, req.FileName)
	if err != nil {
		log.Printf("[User %v] Unable to presign upload for %s: %s", user.ID, clothing.Name, err)
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Error while creating clothe with attachment")
	}

	if err := store.CreateClothing(ctx, &clothing); err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to create wardrobe item")
	}
	fmt.Printf("[User %v] Clothing %v created, type %s\n", user.ID, clothing.ID, clothing.ClothingType)

	return c.JSON(http.StatusCreated, ClothingCreatedResponse{
		ClothingResponse: clothingResponse(clothing, nil),
		FileUploadUrl:    uploadUrl,
	})
}

func (controller *ClothesController) UpdateClothing(c echo.Context) error {
	user, store, ok := contextDeps(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "Unauthorized")
	}
	var id uint
	if err := echo.PathParamsBinder(c).Uint("id", &id).BindError(); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid item id")
	}
	req, err := bindClothing(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()

	clothing, err := store.GetClothing(ctx, user.ID, id)
	if errors.Is(err, services.ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "Item not found")
	}
	if err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to update wardrobe item")
	}

	req.apply(&clothing)
	uploadUrl, err := controller.attachUpload(ctx, &clothing, req.FileName)
	if err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to update wardrobe item")
	}
	if err := store.UpdateClothing(ctx, &clothing); err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to update wardrobe item")
	}

	return c.JSON(http.StatusOK, ClothingCreatedResponse{
		ClothingResponse: clothingResponse(clothing, nil),
		FileUploadUrl:    uploadUrl,
	})
}

func (controller *ClothesController) DeleteClothing(c echo.Context) error {
	user, store, ok := contextDeps(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "Unauthorized")
	}
	var id uint
	if err := echo.PathParamsBinder(c).Uint("id", &id).BindError(); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid item id")
	}

	err := store.DeleteClothing(c.Request().Context(), user.ID, id)
	if errors.Is(err, services.ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "Item not found")
	}
	if err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to delete wardrobe item")
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// resolveImageURL asks the cache first and falls back to presigning directly.
// An empty string means neither worked.
func (controller *ClothesController) resolveImageURL(ctx context.Context, objectKey string) string {
	url, err := controller.URLCache.GetReadURL(ctx, objectKey)
	if err == nil {
		return url
	}
	log.Printf("CACHE WARNING: Cache system failed for key '%s': %v. Triggering manual R2 fallback.", objectKey, err)
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("failure_type", "cache_system")
		scope.SetExtra("objectKey", objectKey)
		sentry.CaptureException(err)
	})

	fallbackUrl, fallbackErr := controller.AWSService.GetPresignedR2FileReadURL(ctx, controller.BucketName, objectKey)
	if fallbackErr != nil {
		log.Printf("CRITICAL: Manual R2 fallback also failed for key '%s': %v", objectKey, fallbackErr)
		sentry.CaptureException(fallbackErr)
		return ""
	}
	return fallbackUrl
}

func (controller *ClothesController) populatePresignedClothingImages(ctx context.Context, clothes []models.Clothing) []ClothingResponse {
	processed := make([]ClothingResponse, len(clothes))
	var group errgroup.Group
	group.SetLimit(presignConcurrency)
	for i, item := range clothes {
		group.Go(func() error {
			var imageUrl string
			if item.ImageURL != nil && *item.ImageURL != "" {
				imageUrl = controller.resolveImageURL(ctx, *item.ImageURL)
			}
			processed[i] = clothingResponse(item, &imageUrl)
			return nil
		})
	}
	group.Wait()
	return processed
}

// ResolveImageURLs maps clothing keys to presigned image URLs for outfit responses.
func (controller *ClothesController) ResolveImageURLs(ctx context.Context, clothes []models.Clothing) map[string]string {
	urls := make(map[string]string, len(clothes))
	for _, response := range controller.populatePresignedClothingImages(ctx, clothes) {
		urls[models.ClothingKey(response.ID)] = *response.Uri
	}
	return urls
}

func (controller *ClothesController) ListClothes(c echo.Context) error {
	user, store, ok := contextDeps(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "Unauthorized")
	}

	clothes, err := store.ListClothes(c.Request().Context(), user.ID)
	if err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch clothes")
	}
	processedResponses := controller.populatePresignedClothingImages(c.Request().Context(), clothes)

	response := ClothesListResponse{
		Tops:        []ClothingResponse{},
		Bottoms:     []ClothingResponse{},
		Dresses:     []ClothingResponse{},
		Outerwear:   []ClothingResponse{},
		Shoes:       []ClothingResponse{},
		Accessories: []ClothingResponse{},
	}

	for _, resp := range processedResponses {
		switch outfits.ClothingType(resp.ClothingType) {
		case outfits.Top:
			response.Tops = append(response.Tops, resp)
		case outfits.Bottom:
			response.Bottoms = append(response.Bottoms, resp)
		case outfits.Dress:
			response.Dresses = append(response.Dresses, resp)
		case outfits.Outerwear:
			response.Outerwear = append(response.Outerwear, resp)
		case outfits.Shoes:
			response.Shoes = append(response.Shoes, resp)
		case outfits.Accessory:
			response.Accessories = append(response.Accessories, resp)
		}
	}

	return c.JSON(http.StatusOK, response)
}

type DetectColorResponse struct {
	PrimaryColor string `json:"primary_color"`
}

// DetectColor suggests a primary color for a photo sent as the "image" form file.
func (controller *ClothesController) DetectColor(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Image file is required")
	}
	if fileHeader.Size > maxColorImageSize {
		return errorJSON(c, http.StatusRequestEntityTooLarge, "Image is too large")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Unable to read image")
	}
	defer file.Close()

	hex, err := colorutil.DecodeDominantColor(io.LimitReader(file, maxColorImageSize))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Unsupported image")
	}
	return c.JSON(http.StatusOK, DetectColorResponse{PrimaryColor: hex})
}
