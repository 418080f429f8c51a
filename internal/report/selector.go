package report

import (
	"fmt"
	"sync"

	"github.com/ignatzorin/lenstube-reports/internal/models"
)

// Selector хранит текущую выбранную причину жалобы.
type Selector struct {
	mu      sync.RWMutex
	current string
}

// NewSelector создаёт селектор с причиной по умолчанию.
func NewSelector() *Selector {
	return &Selector{current: models.DefaultReasonID}
}

// Select меняет выбор. Идентификаторы вне таксономии отклоняются.
func (s *Selector) Select(id string) error {
	if _, ok := models.LookupReason(id); !ok {
		return fmt.Errorf("%w: %q", models.ErrUnknownReason, id)
	}

	s.mu.Lock()
	s.current = id
	s.mu.Unlock()
	return nil
}

// Current возвращает выбранный составной идентификатор.
func (s *Selector) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Request собирает запрос мутации для текущего выбора.
func (s *Selector) Request(publicationID string) models.ReportRequest {
	return models.NewReportRequest(publicationID, s.Current())
}
