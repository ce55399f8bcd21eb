package test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"wardrobeapi/models"
	"wardrobeapi/outfits"
	"wardrobeapi/services"

	"github.com/golang-jwt/jwt/v4"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {

	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func GenerateUserToken(userPk string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userPk,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Fatalf("Error when signing user token for %s. Error %s ", userPk, err)
	}
	return t
}

func NewJSONAuthRequest(method string, target string, userPk string, param interface{}) *http.Request {
	req := NewJSONRequest(method, target, param)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", GenerateUserToken(userPk)))
	return req
}

func NewJSONAuthRequestRaw(method string, target string, userPk string, json string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(json))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", GenerateUserToken(userPk)))
	return req
}

func NewRefString(data string) *string {
	return &data
}

func Float64Pointer(f float64) *float64 {
	return &f
}

// WardrobeStoreMock is an in-memory WardrobeStoreProvider. Err, when set, is
// returned by every call.
type WardrobeStoreMock struct {
	mu          sync.Mutex
	nextID      uint
	Users       []models.UserAccount
	Clothes     []models.Clothing
	Generations []models.OutfitGeneration
	Err         error
}

var _ services.WardrobeStoreProvider = (*WardrobeStoreMock)(nil)

func NewWardrobeStoreMock() *WardrobeStoreMock {
	return &WardrobeStoreMock{}
}

func (m *WardrobeStoreMock) id() uint {
	m.nextID++
	return m.nextID
}

func (m *WardrobeStoreMock) stamp(model *models.JsonModel) {
	now := time.Now()
	if model.ID == 0 {
		model.ID = m.id()
		model.CreatedAt = now
	}
	model.UpdatedAt = now
}

func (m *WardrobeStoreMock) AddUser(user models.UserAccount) models.UserAccount {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stamp(&user.JsonModel)
	m.Users = append(m.Users, user)
	return user
}

func (m *WardrobeStoreMock) AddClothing(clothing models.Clothing) models.Clothing {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stamp(&clothing.JsonModel)
	m.Clothes = append(m.Clothes, clothing)
	return clothing
}

func (m *WardrobeStoreMock) GetUser(ctx context.Context, userID uint) (models.UserAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return models.UserAccount{}, m.Err
	}
	for _, user := range m.Users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.UserAccount{}, services.ErrNotFound
}

func (m *WardrobeStoreMock) UpdateUser(ctx context.Context, user *models.UserAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i, u := range m.Users {
		if u.ID == user.ID {
			m.stamp(&user.JsonModel)
			m.Users[i] = *user
			return nil
		}
	}
	return services.ErrNotFound
}

func (m *WardrobeStoreMock) ListDailyOutfitUsers(ctx context.Context) ([]models.UserAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var users []models.UserAccount
	for _, user := range m.Users {
		if user.ReceiveDailyOutfit && !user.Banned {
			users = append(users, user)
		}
	}
	return users, nil
}

func (m *WardrobeStoreMock) ListClothes(ctx context.Context, ownerID uint) ([]models.Clothing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	clothes := []models.Clothing{}
	for _, c := range m.Clothes {
		if c.OwnerID == ownerID {
			clothes = append(clothes, c)
		}
	}
	return clothes, nil
}

func (m *WardrobeStoreMock) GetClothes(ctx context.Context, ownerID uint, ids []uint) ([]models.Clothing, error) {
	clothes := make([]models.Clothing, 0, len(ids))
	for _, id := range ids {
		c, err := m.GetClothing(ctx, ownerID, id)
		if err != nil {
			return nil, err
		}
		clothes = append(clothes, c)
	}
	return clothes, nil
}

func (m *WardrobeStoreMock) GetClothing(ctx context.Context, ownerID uint, id uint) (models.Clothing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return models.Clothing{}, m.Err
	}
	for _, c := range m.Clothes {
		if c.ID == id && c.OwnerID == ownerID {
			return c, nil
		}
	}
	return models.Clothing{}, services.ErrNotFound
}

func (m *WardrobeStoreMock) CreateClothing(ctx context.Context, clothing *models.Clothing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	clothing.ID = 0
	m.stamp(&clothing.JsonModel)
	m.Clothes = append(m.Clothes, *clothing)
	return nil
}

func (m *WardrobeStoreMock) UpdateClothing(ctx context.Context, clothing *models.Clothing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i, c := range m.Clothes {
		if c.ID == clothing.ID {
			m.stamp(&clothing.JsonModel)
			m.Clothes[i] = *clothing
			return nil
		}
	}
	return services.ErrNotFound
}

func (m *WardrobeStoreMock) DeleteClothing(ctx context.Context, ownerID uint, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	index := slices.IndexFunc(m.Clothes, func(c models.Clothing) bool {
		return c.ID == id && c.OwnerID == ownerID
	})
	if index < 0 {
		return services.ErrNotFound
	}
	m.Clothes = slices.Delete(m.Clothes, index, index+1)
	return nil
}

func (m *WardrobeStoreMock) SaveOutfitGeneration(ctx context.Context, generation *models.OutfitGeneration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.stamp(&generation.JsonModel)
	m.Generations = append(m.Generations, *generation)
	return nil
}

func (m *WardrobeStoreMock) LatestOutfitGeneration(ctx context.Context, userID uint, kind string) (models.OutfitGeneration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return models.OutfitGeneration{}, m.Err
	}
	for i := len(m.Generations) - 1; i >= 0; i-- {
		g := m.Generations[i]
		if g.UserAccountID == userID && g.Kind == kind {
			return g, nil
		}
	}
	return models.OutfitGeneration{}, services.ErrNotFound
}

type AWSProviderMock struct {
	MockUrl string
	Err     error
}

func (awsService AWSProviderMock) InitPresignClient(ctx context.Context) error {
	return nil
}

func (awsService AWSProviderMock) PresignLink(ctx context.Context, bucketName string, fileName string) (string, error) {
	return fmt.Sprintf("https://fakebucketurl.com/%s", fileName), nil
}

func (awsService AWSProviderMock) GetPresignedR2FileReadURL(ctx context.Context, bucketName, fileKey string) (string, error) {
	if awsService.Err != nil {
		return "", awsService.Err
	}
	return awsService.MockUrl + "/" + fileKey, nil
}

// URLCacheMock records every requested key in Requested.
type URLCacheMock struct {
	mu        sync.Mutex
	Err       error
	Requested []string
}

func (u *URLCacheMock) GetReadURL(ctx context.Context, objectKey string) (string, error) {
	u.mu.Lock()
	u.Requested = append(u.Requested, objectKey)
	u.mu.Unlock()
	if u.Err != nil {
		return "", u.Err
	}
	if objectKey == "" {
		return "", nil
	}
	return "https://cached.example.com/" + objectKey, nil
}

type SuggestionCacheMock struct {
	mu      sync.Mutex
	Entries map[string][]outfits.OutfitSuggestion
	Hits    int
}

func NewSuggestionCacheMock() *SuggestionCacheMock {
	return &SuggestionCacheMock{Entries: map[string][]outfits.OutfitSuggestion{}}
}

func (s *SuggestionCacheMock) GetSuggestions(ctx context.Context, key string) ([]outfits.OutfitSuggestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	suggestions, ok := s.Entries[key]
	if ok {
		s.Hits++
	}
	return suggestions, ok
}

func (s *SuggestionCacheMock) SetSuggestions(ctx context.Context, key string, suggestions []outfits.OutfitSuggestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries[key] = suggestions
}

type WeatherServiceMock struct {
	Weather *outfits.Weather
	Err     error
	Calls   int
}

func (w *WeatherServiceMock) CurrentWeather(ctx context.Context, latitude, longitude float64) (*outfits.Weather, error) {
	w.Calls++
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Weather, nil
}

var ErrMockFailure = errors.New("mock failure")

func FakeUser(store *WardrobeStoreMock) models.UserAccount {
	return store.AddUser(models.UserAccount{
		Name:      "OurName",
		Email:     "email@example.com",
		Status:    "FINISHED_AUTH",
		AvatarURL: "pictureurl",
	})
}

// FakeWardrobe adds a small all-season wardrobe: a white top, navy bottom,
// black shoes and a red dress.
func FakeWardrobe(store *WardrobeStoreMock, ownerID uint) []models.Clothing {
	allSeasons := []string{"spring", "summer", "fall", "winter"}
	items := []models.Clothing{
		{Name: "White tee", ClothingType: "TOP", PrimaryColor: "#FFFFFF", Styles: []string{"casual"}, Seasons: allSeasons, Occasions: []string{"everyday"}, ImageURL: NewRefString("clothes/tee.png")},
		{Name: "Navy chinos", ClothingType: "BOTTOM", PrimaryColor: "#000080", Styles: []string{"casual"}, Seasons: allSeasons, Occasions: []string{"everyday"}},
		{Name: "Black boots", ClothingType: "SHOES", PrimaryColor: "#000000", Styles: []string{"casual"}, Seasons: allSeasons},
		{Name: "Red dress", ClothingType: "DRESS", PrimaryColor: "#FF0000", Styles: []string{"formal"}, Seasons: allSeasons},
	}
	for i := range items {
		items[i].OwnerID = ownerID
		items[i] = store.AddClothing(items[i])
	}
	return items
}
