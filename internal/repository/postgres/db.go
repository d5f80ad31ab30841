package postgres

import "github.com/Nogs0/bot-api-Vercel/internal/repository"

var _ repository.DriverRepository = (*DriverRepository)(nil)
