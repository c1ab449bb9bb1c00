package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"techforge_app_go/models"

	"github.com/redis/go-redis/v9"
)

const listingCachePrefix = "catalog:listings:"

// RedisListingCache caches listing lookups in Redis
type RedisListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisListingCache connects to redisURL and verifies the connection
func NewRedisListingCache(redisURL string, ttl time.Duration) (*RedisListingCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("[REDIS] Listing cache connected")
	return &RedisListingCache{client: client, ttl: ttl}, nil
}

func listingCacheKey(categoryID string) string {
	return listingCachePrefix + categoryID
}

// cachedListing keeps the fields the JSON form of a listing hides
type cachedListing struct {
	models.ProjectListing
	CategoryID   string `json:"category_id"`
	Slug         string `json:"slug"`
	DisplayOrder int    `json:"display_order"`
}

func encodeListings(listings []models.ProjectListing) ([]byte, error) {
	out := make([]cachedListing, len(listings))
	for i, l := range listings {
		out[i] = cachedListing{ProjectListing: l, CategoryID: l.CategoryID, Slug: l.Slug, DisplayOrder: l.DisplayOrder}
	}
	return json.Marshal(out)
}

func decodeListings(data []byte) ([]models.ProjectListing, error) {
	var in []cachedListing
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	listings := make([]models.ProjectListing, len(in))
	for i, c := range in {
		l := c.ProjectListing
		l.CategoryID = c.CategoryID
		l.Slug = c.Slug
		l.DisplayOrder = c.DisplayOrder
		l.IsActive = true
		listings[i] = l
	}
	return listings, nil
}

// Get returns cached listings. Any Redis error is treated as a miss.
func (r *RedisListingCache) Get(ctx context.Context, categoryID string) ([]models.ProjectListing, bool) {
	data, err := r.client.Get(ctx, listingCacheKey(categoryID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[WARNING] Listing cache read failed for %s: %v", categoryID, err)
		}
		return nil, false
	}

	listings, err := decodeListings(data)
	if err != nil {
		log.Printf("[WARNING] Discarding corrupt cache entry for %s: %v", categoryID, err)
		return nil, false
	}
	return listings, true
}

// Set stores listings for the configured TTL
func (r *RedisListingCache) Set(ctx context.Context, categoryID string, listings []models.ProjectListing) {
	data, err := encodeListings(listings)
	if err != nil {
		log.Printf("[WARNING] Failed to encode listings for cache: %v", err)
		return
	}
	if err := r.client.Set(ctx, listingCacheKey(categoryID), data, r.ttl).Err(); err != nil {
		log.Printf("[WARNING] Listing cache write failed for %s: %v", categoryID, err)
	}
}

// Invalidate drops every cached category
func (r *RedisListingCache) Invalidate(ctx context.Context) error {
	keys := make([]string, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		keys = append(keys, listingCacheKey(c.ID))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate listing cache: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *RedisListingCache) Close() {
	if r.client != nil {
		r.client.Close()
		log.Println("[REDIS] Listing cache connection closed")
	}
}
