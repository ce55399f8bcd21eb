package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"wardrobeapi/outfits"

	"golang.org/x/time/rate"
)

const defaultWeatherBaseURL = "https://api.open-meteo.com"

// wind above this (km/h) reads as windy when the sky itself is calm
const windyThreshold = 40.0

type WeatherServiceProvider interface {
	CurrentWeather(ctx context.Context, latitude, longitude float64) (*outfits.Weather, error)
}

type OpenMeteoService struct {
	BaseURL string
	Client  *http.Client
	limiter *rate.Limiter
}

func NewOpenMeteoService(baseURL string) *OpenMeteoService {
	if baseURL == "" {
		baseURL = defaultWeatherBaseURL
	}
	return &OpenMeteoService{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
		// open-meteo free tier allows ~10k calls a day
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

type openMeteoResponse struct {
	Current struct {
		Temperature         float64 `json:"temperature_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		RelativeHumidity    float64 `json:"relative_humidity_2m"`
		WeatherCode         int     `json:"weather_code"`
		UVIndex             float64 `json:"uv_index"`
		Precipitation       float64 `json:"precipitation"`
		WindSpeed           float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

func (s *OpenMeteoService) CurrentWeather(ctx context.Context, latitude, longitude float64) (*outfits.Weather, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("weather rate limit: %w", err)
	}

	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(latitude, 'f', 4, 64))
	query.Set("longitude", strconv.FormatFloat(longitude, 'f', 4, 64))
	query.Set("current", "temperature_2m,apparent_temperature,relative_humidity_2m,weather_code,uv_index,precipitation,wind_speed_10m")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/v1/forecast?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	res, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider answered %d", res.StatusCode)
	}

	var body openMeteoResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("weather response: %w", err)
	}
	current := body.Current
	return &outfits.Weather{
		Temperature:   current.Temperature,
		FeelsLike:     current.ApparentTemperature,
		Humidity:      current.RelativeHumidity,
		Condition:     ConditionFromWMO(current.WeatherCode, current.WindSpeed),
		UVIndex:       current.UVIndex,
		Precipitation: current.Precipitation,
		WindSpeed:     current.WindSpeed,
	}, nil
}

// ConditionFromWMO maps a WMO weather interpretation code to a condition.
func ConditionFromWMO(code int, windSpeed float64) outfits.WeatherCondition {
	switch {
	case code >= 95:
		return outfits.Stormy
	case code >= 71 && code <= 77, code == 85, code == 86:
		return outfits.Snowy
	case code >= 51 && code <= 67, code >= 80 && code <= 82:
		return outfits.Rainy
	case code == 45, code == 48:
		return outfits.Foggy
	}
	if windSpeed >= windyThreshold {
		return outfits.Windy
	}
	switch code {
	case 0, 1:
		return outfits.Sunny
	case 2:
		return outfits.PartlyCloudy
	default:
		return outfits.Cloudy
	}
}
