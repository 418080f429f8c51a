package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/lenstube-reports/internal/models"
	"github.com/ignatzorin/lenstube-reports/internal/repository/common"
)

var ErrReportNotFound = errors.New("report not found")

// ReportRepository хранит историю отправленных жалоб.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *models.PublicationReport) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO publication_reports (reporter_id, publication_id, reason, subreason, status, error_message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, report.ReporterID, report.PublicationID, report.Reason, report.Subreason, report.Status, report.ErrorMessage).
		Scan(&report.ID, &report.CreatedAt)
}

// GetByID возвращает жалобу зрителя. Чужая жалоба неотличима от отсутствующей.
func (r *ReportRepository) GetByID(ctx context.Context, id, reporterID uuid.UUID) (*models.PublicationReport, error) {
	return common.GetOne[models.PublicationReport](ctx, r.db, ErrReportNotFound,
		`SELECT * FROM publication_reports WHERE id = $1 AND reporter_id = $2`, id, reporterID)
}

func (r *ReportRepository) ListByReporter(ctx context.Context, reporterID uuid.UUID, limit, offset int) ([]models.PublicationReport, error) {
	reports := []models.PublicationReport{}
	err := r.db.SelectContext(ctx, &reports, `
		SELECT * FROM publication_reports WHERE reporter_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, reporterID, limit, offset)
	return reports, err
}
