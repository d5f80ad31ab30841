package repository

import (
	"context"

	"github.com/Nogs0/bot-api-Vercel/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver. The caller assigns the ID.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetAll retrieves all drivers in store order.
	GetAll(ctx context.Context) ([]*domain.Driver, error)

	// GetOnline retrieves the drivers currently online.
	GetOnline(ctx context.Context) ([]*domain.Driver, error)

	// GetFirstByPhone retrieves the first driver with the given phone number.
	GetFirstByPhone(ctx context.Context, phoneNumber string) (*domain.Driver, error)

	// UpdateOnline sets the online flag of a driver and returns the updated record.
	UpdateOnline(ctx context.Context, id string, online bool) (*domain.Driver, error)
}
