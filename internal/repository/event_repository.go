package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/lenstube-reports/internal/models"
)

// EventRepository сохраняет события аналитики.
type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *models.AnalyticsEvent) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO analytics_events (user_id, event)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, event.UserID, event.Event).
		Scan(&event.ID, &event.CreatedAt)
}
