package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"

	"wardrobeapi/models"
	"wardrobeapi/outfits"
	"wardrobeapi/services"

	"github.com/go-playground/validator"
	echojwt "github.com/labstack/echo-jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func NewValidator() *CustomValidator {
	v := validator.New()
	// report json field names so clients can map errors to their payload
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	models.RegisterValidations(v)
	return &CustomValidator{validator: v}
}

func SetupServer(
	store services.WardrobeStoreProvider,
	awsService services.AWSServiceProvider,
	urlCache services.URLCacheServiceProvider,
	suggestionCache services.SuggestionCacheProvider,
	weather services.WeatherServiceProvider,
	generator *outfits.Generator,
	metrics *services.OutfitMetrics,
) *echo.Echo {

	err := awsService.InitPresignClient(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize AWS provider: S3, %v", err)
	}

	e := echo.New()
	e.Validator = NewValidator()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("__store", store)
			return next(c)
		}
	})

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	wardrobeGroup := e.Group("/wardrobe", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))))
	wardrobeGroup.Use(UserMiddleware)

	profileController := ProfileController{}
	profileController.ProfileRoutes(wardrobeGroup.Group("/profile"))

	clothesController := ClothesController{
		AWSService: awsService,
		URLCache:   urlCache,
		BucketName: services.GetEnv("R2_BUCKET_NAME", "wardrobe"),
	}
	clothesController.ClothingRoutes(wardrobeGroup.Group("/clothes"))

	outfitController := OutfitController{
		Generator:       generator,
		SuggestionCache: suggestionCache,
		Weather:         weather,
		Metrics:         metrics,
		Clothes:         &clothesController,
	}
	outfitController.OutfitRoutes(wardrobeGroup.Group("/outfits"))

	return e
}
