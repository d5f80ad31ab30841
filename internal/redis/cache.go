package redis

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/Nogs0/bot-api-Vercel/internal/domain"
)

// DriverCacheTTL bounds how stale a cached driver can be.
const DriverCacheTTL = 30 * time.Second

const driverPhonePrefix = "cache:driver:phone:"

// CacheStore handles driver caching in Redis.
type CacheStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client, ttl: DriverCacheTTL}
}

// CachedDriver represents a cached driver entity.
type CachedDriver struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Online      bool   `json:"online"`
}

// GetDriverByPhone retrieves a driver from cache. A miss returns nil, nil.
func (s *CacheStore) GetDriverByPhone(ctx context.Context, phoneNumber string) (*domain.Driver, error) {
	data, err := s.client.Get(ctx, driverPhonePrefix+phoneNumber).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var cached CachedDriver
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	return &domain.Driver{
		ID:          cached.ID,
		Name:        cached.Name,
		PhoneNumber: cached.PhoneNumber,
		Online:      cached.Online,
	}, nil
}

// SetDriver stores a driver in cache under its phone number.
func (s *CacheStore) SetDriver(ctx context.Context, driver *domain.Driver) error {
	data, err := json.Marshal(CachedDriver{
		ID:          driver.ID,
		Name:        driver.Name,
		PhoneNumber: driver.PhoneNumber,
		Online:      driver.Online,
	})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, driverPhonePrefix+driver.PhoneNumber, data, s.ttl).Err()
}

// InvalidateDriver removes the cached entry for a phone number.
func (s *CacheStore) InvalidateDriver(ctx context.Context, phoneNumber string) error {
	return s.client.Del(ctx, driverPhonePrefix+phoneNumber).Err()
}
