package tests

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Nogs0/bot-api-Vercel/internal/domain"
	"github.com/Nogs0/bot-api-Vercel/internal/repository"
	"github.com/Nogs0/bot-api-Vercel/internal/repository/memory"
)

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository wraps the in-memory store with call counters and
// error injection.
type MockDriverRepository struct {
	*memory.DriverRepository

	// Counters for verification
	CreateCallCount          int32
	GetFirstByPhoneCallCount int32
	UpdateOnlineCallCount    int32

	// Error injection
	CreateError       error
	GetAllError       error
	GetOnlineError    error
	UpdateOnlineError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{DriverRepository: memory.NewDriverRepository()}
}

// AddDriver seeds the store without touching the counters.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	_ = m.DriverRepository.Create(context.Background(), driver)
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	return m.DriverRepository.Create(ctx, driver)
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	return m.DriverRepository.GetAll(ctx)
}

func (m *MockDriverRepository) GetOnline(ctx context.Context) ([]*domain.Driver, error) {
	if m.GetOnlineError != nil {
		return nil, m.GetOnlineError
	}
	return m.DriverRepository.GetOnline(ctx)
}

func (m *MockDriverRepository) GetFirstByPhone(ctx context.Context, phoneNumber string) (*domain.Driver, error) {
	atomic.AddInt32(&m.GetFirstByPhoneCallCount, 1)
	return m.DriverRepository.GetFirstByPhone(ctx, phoneNumber)
}

func (m *MockDriverRepository) UpdateOnline(ctx context.Context, id string, online bool) (*domain.Driver, error) {
	atomic.AddInt32(&m.UpdateOnlineCallCount, 1)
	if m.UpdateOnlineError != nil {
		return nil, m.UpdateOnlineError
	}
	return m.DriverRepository.UpdateOnline(ctx, id, online)
}

// GetDriver returns a copy of the stored driver, or nil.
func (m *MockDriverRepository) GetDriver(id string) *domain.Driver {
	drivers, _ := m.DriverRepository.GetAll(context.Background())
	for _, d := range drivers {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// Count returns the number of stored drivers.
func (m *MockDriverRepository) Count() int {
	drivers, _ := m.DriverRepository.GetAll(context.Background())
	return len(drivers)
}

var _ repository.DriverRepository = (*MockDriverRepository)(nil)

// ──────────────────────────────────────────────
// MOCK DRIVER CACHE
// ──────────────────────────────────────────────

// MockDriverCache is an in-memory stand-in for the Redis driver cache.
type MockDriverCache struct {
	mu      sync.Mutex
	byPhone map[string]domain.Driver

	GetCallCount        int32
	SetCallCount        int32
	InvalidateCallCount int32

	GetError error
	SetError error
}

// NewMockDriverCache creates an empty mock cache.
func NewMockDriverCache() *MockDriverCache {
	return &MockDriverCache{byPhone: make(map[string]domain.Driver)}
}

func (m *MockDriverCache) GetDriverByPhone(ctx context.Context, phoneNumber string) (*domain.Driver, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byPhone[phoneNumber]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *MockDriverCache) SetDriver(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byPhone[driver.PhoneNumber] = *driver
	return nil
}

func (m *MockDriverCache) InvalidateDriver(ctx context.Context, phoneNumber string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byPhone, phoneNumber)
	return nil
}

// Cached returns the cached driver for a phone number, if any.
func (m *MockDriverCache) Cached(phoneNumber string) (domain.Driver, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byPhone[phoneNumber]
	return d, ok
}
