package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/lenstube-reports/internal/goroutine"
	"github.com/ignatzorin/lenstube-reports/internal/logger"
	"github.com/ignatzorin/lenstube-reports/internal/models"
)

const persistTimeout = 5 * time.Second

// EventStore сохраняет события.
type EventStore interface {
	Create(ctx context.Context, event *models.AnalyticsEvent) error
}

// Tracker пишет события в лог и асинхронно сохраняет их в хранилище.
type Tracker struct {
	store  EventStore
	userID *uuid.UUID
}

func NewTracker(store EventStore) *Tracker {
	return &Tracker{store: store}
}

// ForUser возвращает трекер, привязанный к пользователю.
func (t *Tracker) ForUser(userID uuid.UUID) *Tracker {
	return &Tracker{store: t.store, userID: &userID}
}

// Track не блокирует вызывающего; ошибки сохранения только логируются.
func (t *Tracker) Track(event string) {
	fields := logrus.Fields{"event": event}
	if t.userID != nil {
		fields["user_id"] = t.userID.String()
	}
	logger.WithFields(fields).Info("track")

	if t.store == nil {
		return
	}

	record := &models.AnalyticsEvent{UserID: t.userID, Event: event}
	goroutine.SafeGo(func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := t.store.Create(ctx, record); err != nil {
			logger.WithFields(fields).WithError(err).Warn("analytics: не удалось сохранить событие")
		}
	})
}

// LogTracker только пишет события в лог.
type LogTracker struct{}

func (LogTracker) Track(event string) {
	logger.WithFields(logrus.Fields{"event": event}).Debug("track")
}
