package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/lenstube-reports/internal/logger"
	"github.com/ignatzorin/lenstube-reports/internal/models"
	"github.com/ignatzorin/lenstube-reports/internal/pkg/apperror"
	"github.com/ignatzorin/lenstube-reports/internal/report"
	"github.com/ignatzorin/lenstube-reports/internal/repository"
)

// ReportStore хранит историю жалоб.
type ReportStore interface {
	Create(ctx context.Context, report *models.PublicationReport) error
	GetByID(ctx context.Context, id, reporterID uuid.UUID) (*models.PublicationReport, error)
	ListByReporter(ctx context.Context, reporterID uuid.UUID, limit, offset int) ([]models.PublicationReport, error)
}

// DialogLimits ограничивает реестр открытых форм. Нули означают значения
// по умолчанию.
type DialogLimits struct {
	Size int
	TTL  time.Duration
}

const (
	defaultDialogLimit = 10000
	defaultDialogTTL   = 15 * time.Minute
)

// Фабрики участников формы: мутация подписывается токеном зрителя,
// уведомления и события привязаны к нему же.
type (
	ReporterFactory func(accessToken string) report.Reporter
	NotifierFactory func(viewerID uuid.UUID) report.Notifier
	TrackerFactory  func(viewerID uuid.UUID) report.Tracker
)

// ReportInput - одна попытка пожаловаться.
type ReportInput struct {
	ViewerID      uuid.UUID
	PublicationID string
	ReasonID      string
	AccessToken   string
}

type dialogKey struct {
	viewerID      uuid.UUID
	publicationID string
}

type dialogSession struct {
	dialog *report.Dialog

	// submitting держится на всё время выбора и отправки.
	submitting sync.Mutex

	mu    sync.Mutex
	token string
}

func (s *dialogSession) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *dialogSession) currentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

type reporterFunc func(ctx context.Context, req models.ReportRequest) error

func (f reporterFunc) ReportPublication(ctx context.Context, req models.ReportRequest) error {
	return f(ctx, req)
}

// ReportService держит по одной открытой форме на пару (зритель, публикация).
// Успешная отправка закрывает форму, неуспешная оставляет её открытой до
// DELETE, вытеснения из реестра или истечения TTL.
type ReportService struct {
	repo      ReportStore
	reporters ReporterFactory
	notifiers NotifierFactory
	trackers  TrackerFactory

	mu      sync.Mutex
	dialogs *expirable.LRU[dialogKey, *dialogSession]
}

func NewReportService(repo ReportStore, reporters ReporterFactory, notifiers NotifierFactory, trackers TrackerFactory, limits DialogLimits) *ReportService {
	if limits.Size <= 0 {
		limits.Size = defaultDialogLimit
	}
	if limits.TTL <= 0 {
		limits.TTL = defaultDialogTTL
	}
	return &ReportService{
		repo:      repo,
		reporters: reporters,
		notifiers: notifiers,
		trackers:  trackers,
		// вытесненная форма закрывается: поздний ответ Lens не покажет тост
		dialogs: expirable.NewLRU[dialogKey, *dialogSession](limits.Size, func(_ dialogKey, session *dialogSession) {
			session.dialog.Close()
		}, limits.TTL),
	}
}

// Reasons возвращает таксономию причин.
func (s *ReportService) Reasons() []models.ReasonGroup {
	return models.ReasonGroups()
}

// ReportPublication выбирает причину и отправляет жалобу через открытую форму.
func (s *ReportService) ReportPublication(ctx context.Context, in ReportInput) (*models.PublicationReport, error) {
	publicationID := strings.TrimSpace(in.PublicationID)
	if publicationID == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "не указан идентификатор публикации")
	}

	reasonID := in.ReasonID
	if reasonID == "" {
		reasonID = models.DefaultReasonID
	}
	if _, ok := models.LookupReason(reasonID); !ok {
		return nil, apperror.Wrap(models.ErrUnknownReason, apperror.ErrCodeValidation, "неизвестная причина жалобы")
	}

	key := dialogKey{viewerID: in.ViewerID, publicationID: publicationID}
	req, err := s.submit(ctx, key, reasonID, in.AccessToken)
	if errors.Is(err, report.ErrDialogClosed) {
		// форму закрыли между открытием и отправкой, пробуем со свежей
		req, err = s.submit(ctx, key, reasonID, in.AccessToken)
	}
	switch {
	case errors.Is(err, report.ErrDialogClosed):
		return nil, apperror.ErrDialogClosed
	case errors.Is(err, errSessionBusy), errors.Is(err, report.ErrSubmitInFlight):
		return nil, apperror.ErrReportInFlight
	case errors.Is(err, models.ErrUnknownReason):
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, "неизвестная причина жалобы")
	}

	record := &models.PublicationReport{
		ReporterID:    in.ViewerID,
		PublicationID: publicationID,
		Status:        models.ReportStatusReported,
	}
	if _, detail := req.Reason.Populated(); detail != nil {
		record.Reason = detail.Reason
		record.Subreason = detail.Subreason
	}
	if err != nil {
		msg := report.ErrorMessage(err)
		record.Status = models.ReportStatusFailed
		record.ErrorMessage = &msg
	}
	s.save(context.WithoutCancel(ctx), record)

	if err != nil {
		return record, apperror.Wrap(err, apperror.ErrCodeUpstream, report.ErrorMessage(err))
	}
	return record, nil
}

var errSessionBusy = errors.New("report session is busy")

// submit отправляет жалобу через форму пары key. Выбор причины, токен и
// отправка не пересекаются с другим запросом той же пары.
func (s *ReportService) submit(ctx context.Context, key dialogKey, reasonID, token string) (models.ReportRequest, error) {
	session := s.openDialog(key)
	if !session.submitting.TryLock() {
		return models.ReportRequest{}, errSessionBusy
	}
	defer session.submitting.Unlock()

	session.setToken(token)
	req, err := session.dialog.SubmitReason(ctx, reasonID)
	if errors.Is(err, report.ErrDialogClosed) {
		s.closeDialog(key, session)
	}
	return req, err
}

// GetReport возвращает жалобу зрителя по идентификатору.
func (s *ReportService) GetReport(ctx context.Context, viewerID, reportID uuid.UUID) (*models.PublicationReport, error) {
	if s.repo == nil {
		return nil, apperror.ErrReportNotFound
	}
	rec, err := s.repo.GetByID(ctx, reportID, viewerID)
	if errors.Is(err, repository.ErrReportNotFound) {
		return nil, apperror.ErrReportNotFound
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить жалобу")
	}
	return rec, nil
}

// Dismiss закрывает форму без отправки. Ответ на уже отправленный запрос
// будет проигнорирован.
func (s *ReportService) Dismiss(viewerID uuid.UUID, publicationID string) bool {
	key := dialogKey{viewerID: viewerID, publicationID: strings.TrimSpace(publicationID)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dialogs.Peek(key); !ok {
		return false
	}
	// onEvict закрывает форму
	return s.dialogs.Remove(key)
}

// ListReports возвращает историю жалоб зрителя.
func (s *ReportService) ListReports(ctx context.Context, viewerID uuid.UUID, limit, offset int) ([]models.PublicationReport, error) {
	if s.repo == nil {
		return []models.PublicationReport{}, nil
	}
	reports, err := s.repo.ListByReporter(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить жалобы")
	}
	return reports, nil
}

// OpenDialogs возвращает число открытых форм.
func (s *ReportService) OpenDialogs() int {
	return s.dialogs.Len()
}

func (s *ReportService) openDialog(key dialogKey) *dialogSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.dialogs.Get(key); ok {
		s.dialogs.Add(key, session)
		return session
	}
	// просроченная, но ещё не вычищенная запись закрывается через onEvict
	s.dialogs.Remove(key)

	session := &dialogSession{}
	deps := report.Dependencies{
		Reporter: reporterFunc(func(ctx context.Context, req models.ReportRequest) error {
			return s.reporters(session.currentToken()).ReportPublication(ctx, req)
		}),
		OnSuccess: func() { s.closeDialog(key, session) },
	}
	if s.notifiers != nil {
		deps.Notifier = s.notifiers(key.viewerID)
	}
	if s.trackers != nil {
		deps.Tracker = s.trackers(key.viewerID)
	}
	session.dialog = report.NewDialog(key.publicationID, deps)
	s.dialogs.Add(key, session)
	return session
}

func (s *ReportService) closeDialog(key dialogKey, session *dialogSession) {
	s.mu.Lock()
	if cur, ok := s.dialogs.Peek(key); ok && cur == session {
		s.dialogs.Remove(key)
	}
	s.mu.Unlock()
	session.dialog.Close()
}

func (s *ReportService) save(ctx context.Context, record *models.PublicationReport) {
	fields := logrus.Fields{
		"viewer_id":      record.ReporterID.String(),
		"publication_id": record.PublicationID,
		"reason":         record.Reason,
		"subreason":      record.Subreason,
		"status":         record.Status,
	}
	if s.repo == nil {
		logger.WithFields(fields).Info("report submitted")
		return
	}
	if err := s.repo.Create(ctx, record); err != nil {
		logger.WithFields(fields).WithError(err).Error("report: не удалось сохранить запись")
		return
	}
	logger.WithFields(fields).Info("report submitted")
}
