package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nogs0/bot-api-Vercel/internal/domain"
	"github.com/Nogs0/bot-api-Vercel/internal/repository"
)

const driverColumns = `id, name, phone_number, online`

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	db *sql.DB
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `INSERT INTO "Driver" (id, name, phone_number, online) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, driver.ID, driver.Name, driver.PhoneNumber, driver.Online); err != nil {
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

// GetAll retrieves all drivers.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	return r.list(ctx, `SELECT `+driverColumns+` FROM "Driver"`)
}

// GetOnline retrieves the drivers whose online flag is set.
func (r *DriverRepository) GetOnline(ctx context.Context) ([]*domain.Driver, error) {
	return r.list(ctx, `SELECT `+driverColumns+` FROM "Driver" WHERE online = $1`, true)
}

// GetFirstByPhone retrieves the first driver matching the phone number.
func (r *DriverRepository) GetFirstByPhone(ctx context.Context, phoneNumber string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM "Driver" WHERE phone_number = $1 LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, phoneNumber))
}

// UpdateOnline sets the online flag of the driver and returns the updated row.
func (r *DriverRepository) UpdateOnline(ctx context.Context, id string, online bool) (*domain.Driver, error) {
	query := `UPDATE "Driver" SET online = $1 WHERE id = $2 RETURNING ` + driverColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, online, id))
}

func (r *DriverRepository) scanOne(row *sql.Row) (*domain.Driver, error) {
	var driver domain.Driver
	err := row.Scan(&driver.ID, &driver.Name, &driver.PhoneNumber, &driver.Online)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan driver: %w", err)
	}
	return &driver, nil
}

func (r *DriverRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Driver, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query drivers: %w", err)
	}
	defer rows.Close()

	drivers := make([]*domain.Driver, 0)
	for rows.Next() {
		var driver domain.Driver
		if err := rows.Scan(&driver.ID, &driver.Name, &driver.PhoneNumber, &driver.Online); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		drivers = append(drivers, &driver)
	}
	return drivers, rows.Err()
}
