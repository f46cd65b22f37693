package repository

import (
	"context"
	"database/sql"
	"time"

	"wsn_dashboard/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.Operator, error)
}

// SettingsRepo persists the single dashboard settings row.
type SettingsRepo interface {
	Save(ctx context.Context, s models.DashboardSettings) error
	Load(ctx context.Context) (models.DashboardSettings, error)
}

// EventRepo is the append-only session journal.
type EventRepo interface {
	Append(ctx context.Context, e models.SessionEvent) error
	List(ctx context.Context, f EventFilter) ([]models.SessionEvent, error)
}

// ReadingRepo stores every applied poll response.
type ReadingRepo interface {
	Insert(ctx context.Context, r models.Reading) error
	// Recent returns the newest limit readings of a mode in ascending time order.
	Recent(ctx context.Context, mode string, limit int) ([]models.Reading, error)
}

// EventFilter narrows a journal query; zero fields match everything.
type EventFilter struct {
	From time.Time
	To   time.Time
	Type string
	Mode string
}

type Repository struct {
	SettingsRepo SettingsRepo
	EventRepo    EventRepo
	ReadingRepo  ReadingRepo
	Auth         Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		SettingsRepo: NewSettingsSQLite(db),
		EventRepo:    NewEventSQLite(db),
		ReadingRepo:  NewReadingSQLite(db),
		Auth:         NewOperatorRepository(db),
	}
}
