package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"wardrobeapi/models"
	"wardrobeapi/outfits"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

type SuggestionCacheProvider interface {
	GetSuggestions(ctx context.Context, key string) ([]outfits.OutfitSuggestion, bool)
	SetSuggestions(ctx context.Context, key string, suggestions []outfits.OutfitSuggestion)
}

// SuggestionQuery holds every input that changes the generated suggestions.
type SuggestionQuery struct {
	LockedItemIDs  []uint           `json:"locked"`
	PreferredStyle string           `json:"style"`
	Occasion       string           `json:"occasion"`
	Season         outfits.Season   `json:"season"`
	Weather        *outfits.Weather `json:"weather"`
	Count          int              `json:"count"`
}

// SuggestionKey fingerprints the wardrobe by id and last update so any edit
// to the user's clothes yields a new key.
func SuggestionKey(userID uint, clothes []models.Clothing, query SuggestionQuery) string {
	fingerprint := make([]string, len(clothes))
	for i, c := range clothes {
		fingerprint[i] = fmt.Sprintf("%d@%d", c.ID, c.UpdatedAt.UnixNano())
	}
	raw, _ := json.Marshal(struct {
		UserID   uint            `json:"u"`
		Query    SuggestionQuery `json:"q"`
		Wardrobe []string        `json:"w"`
	}{userID, query, fingerprint})
	sum := sha256.Sum256(raw)
	return "suggestions:" + hex.EncodeToString(sum[:])
}

type SuggestionCache struct {
	ristretto *ristretto.Cache
	cache     *cache.Cache[[]byte]
	ttl       time.Duration
}

func NewSuggestionCache(ttl time.Duration) (*SuggestionCache, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 25,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	return &SuggestionCache{
		ristretto: ristrettoCache,
		cache:     cache.New[[]byte](ristretto_store.NewRistretto(ristrettoCache)),
		ttl:       ttl,
	}, nil
}

func (s *SuggestionCache) GetSuggestions(ctx context.Context, key string) ([]outfits.OutfitSuggestion, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var suggestions []outfits.OutfitSuggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		log.Printf("[SuggestionCache] corrupt entry %s: %v", key, err)
		return nil, false
	}
	return suggestions, true
}

func (s *SuggestionCache) SetSuggestions(ctx context.Context, key string, suggestions []outfits.OutfitSuggestion) {
	raw, err := json.Marshal(suggestions)
	if err != nil {
		log.Printf("[SuggestionCache] unable to encode %s: %v", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, raw, store.WithExpiration(s.ttl), store.WithCost(int64(len(raw)))); err != nil {
		log.Printf("[SuggestionCache] unable to store %s: %v", key, err)
	}
}
