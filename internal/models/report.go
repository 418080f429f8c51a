package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы записанных жалоб.
const (
	ReportStatusReported = "reported"
	ReportStatusFailed   = "failed"
)

// ReasonDetail - пара категория/подпричина в том виде, в каком её ждёт API.
type ReasonDetail struct {
	Reason    string `json:"reason"`
	Subreason string `json:"subreason"`
}

// ReportReason содержит ровно одно заполненное поле, названное по категории.
type ReportReason struct {
	IllegalReason   *ReasonDetail `json:"illegalReason,omitempty"`
	FraudReason     *ReasonDetail `json:"fraudReason,omitempty"`
	SensitiveReason *ReasonDetail `json:"sensitiveReason,omitempty"`
	SpamReason      *ReasonDetail `json:"spamReason,omitempty"`
}

// Populated возвращает имя заполненного поля и его значение.
func (r ReportReason) Populated() (string, *ReasonDetail) {
	switch {
	case r.IllegalReason != nil:
		return FieldIllegalReason, r.IllegalReason
	case r.FraudReason != nil:
		return FieldFraudReason, r.FraudReason
	case r.SensitiveReason != nil:
		return FieldSensitiveReason, r.SensitiveReason
	case r.SpamReason != nil:
		return FieldSpamReason, r.SpamReason
	}
	return "", nil
}

// ReportRequest - входные данные мутации reportPublication.
type ReportRequest struct {
	PublicationID      string       `json:"publicationId"`
	Reason             ReportReason `json:"reason"`
	AdditionalComments string       `json:"additionalComments"`
}

// NewReportRequest собирает запрос из составного идентификатора "<CATEGORY>-<SUBREASON>".
// Идентификатор не проверяется по таксономии: это делает селектор.
func NewReportRequest(publicationID, reasonID string) ReportRequest {
	category, subreason := SplitReasonID(reasonID)
	detail := &ReasonDetail{Reason: string(category), Subreason: subreason}

	var reason ReportReason
	switch category.FieldName() {
	case FieldFraudReason:
		reason.FraudReason = detail
	case FieldSensitiveReason:
		reason.SensitiveReason = detail
	case FieldSpamReason:
		reason.SpamReason = detail
	default:
		reason.IllegalReason = detail
	}

	return ReportRequest{
		PublicationID:      publicationID,
		Reason:             reason,
		AdditionalComments: string(category) + " - " + subreason,
	}
}

// PublicationReport - запись о попытке пожаловаться на публикацию.
type PublicationReport struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ReporterID    uuid.UUID `db:"reporter_id" json:"reporter_id"`
	PublicationID string    `db:"publication_id" json:"publication_id"`
	Reason        string    `db:"reason" json:"reason"`
	Subreason     string    `db:"subreason" json:"subreason"`
	Status        string    `db:"status" json:"status"`
	ErrorMessage  *string   `db:"error_message" json:"error_message,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// AnalyticsEvent - событие трекинга.
type AnalyticsEvent struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	Event     string     `db:"event" json:"event"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
