package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// validity of presigned read URLs
const presignedURLExpiration = 15 * time.Minute

// slightly less than expiration
const cacheCleanupInterval = 12 * time.Minute

type URLCacheServiceProvider interface {
	GetReadURL(ctx context.Context, objectKey string) (string, error)
}

type URLCacheService struct {
	cache      *cache.LoadableCache[string]
	bucketName string
}

func newRistrettoStore(numCounters, maxCost int64) (*ristretto_store.RistrettoStore, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	return ristretto_store.NewRistretto(ristrettoCache), nil
}

// NewURLCacheService loads missing keys by presigning them against the bucket.
func NewURLCacheService(awsService AWSServiceProvider, bucketName string) (*URLCacheService, error) {
	ristrettoStore, err := newRistrettoStore(1e6, 1<<26)
	if err != nil {
		return nil, err
	}

	loadFunction := func(ctx context.Context, key any) (string, []store.Option, error) {
		objectKey, ok := key.(string)
		if !ok {
			return "", nil, fmt.Errorf("invalid key type provided to URL cache: expected string, got %T", key)
		}

		log.Printf("[URLCache] miss for key: %s, presigning", objectKey)
		url, err := awsService.GetPresignedR2FileReadURL(ctx, bucketName, objectKey)
		return url, []store.Option{store.WithExpiration(cacheCleanupInterval), store.WithCost(1)}, err
	}

	loadableCache := cache.NewLoadable[string](
		loadFunction,
		cache.New[string](ristrettoStore),
	)
	return &URLCacheService{
		cache:      loadableCache,
		bucketName: bucketName,
	}, nil
}

func (s *URLCacheService) GetReadURL(ctx context.Context, objectKey string) (string, error) {
	if objectKey == "" {
		return "", nil
	}

	return s.cache.Get(ctx, objectKey)
}
