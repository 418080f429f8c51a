package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/lenstube-reports/internal/models"
)

type mockEventStore struct {
	mock.Mock
}

func (m *mockEventStore) Create(ctx context.Context, event *models.AnalyticsEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestTracker_PersistsEventForUser(t *testing.T) {
	store := new(mockEventStore)
	userID := uuid.New()
	saved := make(chan *models.AnalyticsEvent, 1)
	store.On("Create", mock.Anything, mock.AnythingOfType("*models.AnalyticsEvent")).
		Run(func(args mock.Arguments) { saved <- args.Get(1).(*models.AnalyticsEvent) }).
		Return(nil)

	NewTracker(store).ForUser(userID).Track("Report")

	select {
	case event := <-saved:
		assert.Equal(t, "Report", event.Event)
		if assert.NotNil(t, event.UserID) {
			assert.Equal(t, userID, *event.UserID)
		}
	case <-time.After(time.Second):
		t.Fatal("событие не сохранено")
	}
}

func TestTracker_StoreErrorIsSwallowed(t *testing.T) {
	store := new(mockEventStore)
	done := make(chan struct{})
	store.On("Create", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { close(done) }).
		Return(errors.New("db down"))

	assert.NotPanics(t, func() { NewTracker(store).Track("Report") })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("хранилище не вызвано")
	}
}

func TestTracker_NilStore(t *testing.T) {
	assert.NotPanics(t, func() { NewTracker(nil).Track("Report") })
	assert.NotPanics(t, func() { LogTracker{}.Track("Report") })
}
