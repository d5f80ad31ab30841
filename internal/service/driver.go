package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Nogs0/bot-api-Vercel/internal/domain"
	"github.com/Nogs0/bot-api-Vercel/internal/log"
	"github.com/Nogs0/bot-api-Vercel/internal/redis"
	"github.com/Nogs0/bot-api-Vercel/internal/repository"
	"github.com/Nogs0/bot-api-Vercel/internal/shuffle"
)

// Chat replies.
const (
	DriverNotRegisteredMessage = "Motorista não cadastrado!"

	broadcastGreeting = "Olá, tudo bem? Espero que sim!\n" +
		"Estou indisponível no momento! 😓\n" +
		"Em caso de agendamentos, respondo em alguns instantes! 😁"

	broadcastDriversAvailable = "Mas, a RGS conta com motoristas preparados para lhe atender! 🚗"
)

// onlineKeyword is the chat message, compared case-insensitively after
// trimming, that sets a driver online. Anything else sets it offline.
const onlineKeyword = "ONLINE"

// DriverService handles driver operations.
type DriverService struct {
	driverRepo  repository.DriverRepository
	driverCache redis.DriverCacheInterface
}

// NewDriverService creates a new DriverService. driverCache may be nil.
func NewDriverService(driverRepo repository.DriverRepository, driverCache redis.DriverCacheInterface) *DriverService {
	return &DriverService{
		driverRepo:  driverRepo,
		driverCache: driverCache,
	}
}

// CreateDriverRequest contains the parameters for registering a driver.
type CreateDriverRequest struct {
	Name        string
	PhoneNumber string
	Online      bool
}

// UpdateStatusRequest carries the fields of a chat message that drive a
// status change.
type UpdateStatusRequest struct {
	GroupParticipant string
	Message          string
}

// ListDrivers returns every driver in store order.
func (s *DriverService) ListDrivers(ctx context.Context) ([]*domain.Driver, error) {
	return s.driverRepo.GetAll(ctx)
}

// CreateDriver persists a new driver with a generated ID.
func (s *DriverService) CreateDriver(ctx context.Context, req CreateDriverRequest) (*domain.Driver, error) {
	if req.Name == "" {
		return nil, ErrInvalidName
	}
	if req.PhoneNumber == "" {
		return nil, ErrInvalidPhoneNumber
	}

	driver := &domain.Driver{
		ID:          uuid.New().String(),
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Online:      req.Online,
	}
	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, fmt.Errorf("create driver: %w", err)
	}
	return driver, nil
}

// FindByPhone returns the first driver registered with phoneNumber, or
// repository.ErrNotFound.
func (s *DriverService) FindByPhone(ctx context.Context, phoneNumber string) (*domain.Driver, error) {
	if phoneNumber == "" {
		return nil, ErrInvalidPhoneNumber
	}

	if s.driverCache != nil {
		cached, err := s.driverCache.GetDriverByPhone(ctx, phoneNumber)
		if err != nil {
			log.Warn(ctx, "driver cache read failed", log.Err(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	driver, err := s.driverRepo.GetFirstByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}
	s.cacheDriver(ctx, driver)
	return driver, nil
}

// UpdateStatusFromMessage toggles the online flag of the driver identified
// by the message's group participant and returns the chat reply. An unknown
// participant is not an error: it yields DriverNotRegisteredMessage.
func (s *DriverService) UpdateStatusFromMessage(ctx context.Context, req UpdateStatusRequest) (string, error) {
	driver, err := s.FindByPhone(ctx, req.GroupParticipant)
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, ErrInvalidPhoneNumber) {
		return DriverNotRegisteredMessage, nil
	}
	if err != nil {
		return "", err
	}

	online := IsOnlineMessage(req.Message)
	updated, err := s.driverRepo.UpdateOnline(ctx, driver.ID, online)
	if errors.Is(err, repository.ErrNotFound) {
		// The cached entry pointed at a record that no longer exists.
		s.invalidateDriver(ctx, req.GroupParticipant)
		return DriverNotRegisteredMessage, nil
	}
	if err != nil {
		return "", fmt.Errorf("update driver status: %w", err)
	}
	s.cacheDriver(ctx, updated)

	log.Info(ctx, "driver status changed",
		slog.String("driver_id", updated.ID),
		slog.Bool("online", updated.Online),
	)
	return StatusReply(updated), nil
}

// BroadcastMessage builds the away message listing online drivers in
// random order.
func (s *DriverService) BroadcastMessage(ctx context.Context) (string, error) {
	drivers, err := s.driverRepo.GetOnline(ctx)
	if err != nil {
		return "", fmt.Errorf("list online drivers: %w", err)
	}
	drivers = shuffle.Shuffle(drivers)

	var b strings.Builder
	b.WriteString(broadcastGreeting)
	if len(drivers) > 0 {
		b.WriteString("\n")
		b.WriteString(broadcastDriversAvailable)
	}
	for _, d := range drivers {
		fmt.Fprintf(&b, "\n🔷 %s: %s", d.Name, d.PhoneNumber)
	}
	return b.String(), nil
}

// IsOnlineMessage reports whether a chat message asks to go online.
func IsOnlineMessage(message string) bool {
	return strings.ToUpper(strings.TrimSpace(message)) == onlineKeyword
}

// StatusReply formats the confirmation sent after a status change.
func StatusReply(driver *domain.Driver) string {
	return fmt.Sprintf("Motorista %s está %s!", driver.Name, driver.StatusLabel())
}

func (s *DriverService) cacheDriver(ctx context.Context, driver *domain.Driver) {
	if s.driverCache == nil {
		return
	}
	if err := s.driverCache.SetDriver(ctx, driver); err != nil {
		log.Warn(ctx, "driver cache write failed", log.Err(err))
	}
}

func (s *DriverService) invalidateDriver(ctx context.Context, phoneNumber string) {
	if s.driverCache == nil {
		return
	}
	if err := s.driverCache.InvalidateDriver(ctx, phoneNumber); err != nil {
		log.Warn(ctx, "driver cache invalidation failed", log.Err(err))
	}
}
