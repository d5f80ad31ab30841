// Package memory provides an in-process repository.DriverRepository used
// when no database is configured and as the substitute store in tests.
package memory

import (
	"context"
	"sync"

	"github.com/Nogs0/bot-api-Vercel/internal/domain"
	"github.com/Nogs0/bot-api-Vercel/internal/repository"
)

// DriverRepository keeps drivers in insertion order behind a RWMutex.
type DriverRepository struct {
	mu      sync.RWMutex
	drivers []*domain.Driver
}

// NewDriverRepository creates an empty in-memory driver repository.
func NewDriverRepository() *DriverRepository {
	return &DriverRepository{}
}

// Create adds a new driver.
func (r *DriverRepository) Create(_ context.Context, driver *domain.Driver) error {
	stored := *driver

	r.mu.Lock()
	defer r.mu.Unlock()
	r.drivers = append(r.drivers, &stored)
	return nil
}

// GetAll retrieves all drivers in insertion order.
func (r *DriverRepository) GetAll(_ context.Context) ([]*domain.Driver, error) {
	return r.filter(func(*domain.Driver) bool { return true }), nil
}

// GetOnline retrieves the drivers whose online flag is set.
func (r *DriverRepository) GetOnline(_ context.Context) ([]*domain.Driver, error) {
	return r.filter(func(d *domain.Driver) bool { return d.Online }), nil
}

// GetFirstByPhone retrieves the first driver matching the phone number.
func (r *DriverRepository) GetFirstByPhone(_ context.Context, phoneNumber string) (*domain.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.drivers {
		if d.PhoneNumber == phoneNumber {
			found := *d
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

// UpdateOnline sets the online flag of the driver and returns a copy of it.
func (r *DriverRepository) UpdateOnline(_ context.Context, id string, online bool) (*domain.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.drivers {
		if d.ID == id {
			d.Online = online
			updated := *d
			return &updated, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *DriverRepository) filter(keep func(*domain.Driver) bool) []*domain.Driver {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Driver, 0, len(r.drivers))
	for _, d := range r.drivers {
		if keep(d) {
			c := *d
			result = append(result, &c)
		}
	}
	return result
}

var _ repository.DriverRepository = (*DriverRepository)(nil)
