package redis

import (
	"context"

	"github.com/Nogs0/bot-api-Vercel/internal/domain"
)

// DriverCacheInterface defines the driver cache operations used by services.
type DriverCacheInterface interface {
	GetDriverByPhone(ctx context.Context, phoneNumber string) (*domain.Driver, error)
	SetDriver(ctx context.Context, driver *domain.Driver) error
	InvalidateDriver(ctx context.Context, phoneNumber string) error
}

// Ensure concrete types implement interfaces.
var _ DriverCacheInterface = (*CacheStore)(nil)
