package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/lenstube-reports/internal/lens"
	"github.com/ignatzorin/lenstube-reports/internal/logger"
	"github.com/ignatzorin/lenstube-reports/internal/models"
	"github.com/ignatzorin/lenstube-reports/internal/pkg/apperror"
)

// CollectModuleFetcher получает collect-модуль публикации из Lens.
type CollectModuleFetcher interface {
	CollectModule(ctx context.Context, publicationID string) (models.CollectModule, error)
}

// CollectModuleService кэширует настройки collect-модулей: они почти не
// меняются, а UI запрашивает их на каждой карточке.
type CollectModuleService struct {
	fetcher CollectModuleFetcher
	cache   *expirable.LRU[string, models.CollectModule]
}

func NewCollectModuleService(fetcher CollectModuleFetcher, size int, ttl time.Duration) *CollectModuleService {
	if size <= 0 {
		size = 1024
	}
	return &CollectModuleService{
		fetcher: fetcher,
		cache:   expirable.NewLRU[string, models.CollectModule](size, nil, ttl),
	}
}

// Get возвращает модуль из кэша или из Lens.
func (s *CollectModuleService) Get(ctx context.Context, publicationID string) (models.CollectModule, error) {
	publicationID = strings.TrimSpace(publicationID)
	if publicationID == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "не указан идентификатор публикации")
	}

	if module, ok := s.cache.Get(publicationID); ok {
		return module, nil
	}

	module, err := s.fetcher.CollectModule(ctx, publicationID)
	switch {
	case err == nil:
	case errors.Is(err, lens.ErrPublicationNotFound):
		return nil, apperror.ErrPublicationNotFound
	case errors.Is(err, models.ErrUnknownCollectModule), errors.Is(err, models.ErrNoCollectModule):
		logger.WithFields(logrus.Fields{"publication_id": publicationID}).WithError(err).Warn("collect: неподдерживаемый модуль")
		return nil, apperror.Wrap(err, apperror.ErrCodeUpstream, "неподдерживаемый collect-модуль")
	default:
		return nil, apperror.Wrap(err, apperror.ErrCodeUpstream, "не удалось получить collect-модуль")
	}

	s.cache.Add(publicationID, module)
	return module, nil
}

// Invalidate убирает публикацию из кэша.
func (s *CollectModuleService) Invalidate(publicationID string) {
	s.cache.Remove(strings.TrimSpace(publicationID))
}
