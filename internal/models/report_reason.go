package models

import (
	"errors"
	"strings"
)

// ReasonCategory - категория жалобы.
type ReasonCategory string

const (
	ReasonIllegal   ReasonCategory = "ILLEGAL"
	ReasonFraud     ReasonCategory = "FRAUD"
	ReasonSensitive ReasonCategory = "SENSITIVE"
	ReasonSpam      ReasonCategory = "SPAM"
)

// Имена полей ReportReason в запросе.
const (
	FieldIllegalReason   = "illegalReason"
	FieldFraudReason     = "fraudReason"
	FieldSensitiveReason = "sensitiveReason"
	FieldSpamReason      = "spamReason"
)

// DefaultReasonID - выбор по умолчанию при открытии формы.
const DefaultReasonID = "ILLEGAL-ANIMAL_ABUSE"

// ReasonSeparator разделяет категорию и подпричину в составном идентификаторе.
const ReasonSeparator = "-"

var ErrUnknownReason = errors.New("unknown report reason")

// FieldName возвращает имя поля запроса для категории.
// Неизвестная категория намеренно отображается в illegalReason: через
// закрытый список опций она недостижима, но при повторном использовании
// функции неизвестные значения будут помечены как ILLEGAL.
func (c ReasonCategory) FieldName() string {
	switch c {
	case ReasonIllegal:
		return FieldIllegalReason
	case ReasonFraud:
		return FieldFraudReason
	case ReasonSensitive:
		return FieldSensitiveReason
	case ReasonSpam:
		return FieldSpamReason
	default:
		return FieldIllegalReason
	}
}

// Known сообщает, входит ли категория в закрытый список.
func (c ReasonCategory) Known() bool {
	switch c {
	case ReasonIllegal, ReasonFraud, ReasonSensitive, ReasonSpam:
		return true
	}
	return false
}

// ReasonOption - одна опция выпадающего списка.
type ReasonOption struct {
	ID        string         `json:"id"`
	Category  ReasonCategory `json:"category"`
	Subreason string         `json:"subreason"`
	Label     string         `json:"label"`
}

// ReasonGroup - группа опций одной категории.
type ReasonGroup struct {
	Category ReasonCategory `json:"category"`
	Options  []ReasonOption `json:"options"`
}

func option(category ReasonCategory, subreason, label string) ReasonOption {
	return ReasonOption{
		ID:        ReasonID(category, subreason),
		Category:  category,
		Subreason: subreason,
		Label:     label,
	}
}

var reasonGroups = []ReasonGroup{
	{Category: ReasonSpam, Options: []ReasonOption{
		option(ReasonSpam, "FAKE_ENGAGEMENT", "Fake Engagement"),
		option(ReasonSpam, "MANIPULATION_ALGO", "Algorithm Manipulation"),
		option(ReasonSpam, "MISLEADING", "Misleading"),
		option(ReasonSpam, "MISUSE_HASHTAGS", "Misuse Hashtags"),
		option(ReasonSpam, "REPETITIVE", "Repetitive"),
		option(ReasonSpam, "UNRELATED", "Unrelated"),
		option(ReasonSpam, "SOMETHING_ELSE", "Something Else"),
	}},
	{Category: ReasonIllegal, Options: []ReasonOption{
		option(ReasonIllegal, "ANIMAL_ABUSE", "Animal Abuse"),
		option(ReasonIllegal, "HUMAN_ABUSE", "Human Abuse"),
		option(ReasonIllegal, "DIRECT_THREAT", "Direct threat"),
		option(ReasonIllegal, "THREAT_INDIVIDUAL", "Threat Individual"),
		option(ReasonIllegal, "VIOLENCE", "Violence"),
	}},
	{Category: ReasonFraud, Options: []ReasonOption{
		option(ReasonFraud, "SCAM", "Scam"),
		option(ReasonFraud, "IMPERSONATION", "Impersonation"),
	}},
	{Category: ReasonSensitive, Options: []ReasonOption{
		option(ReasonSensitive, "NSFW", "NSFW"),
		option(ReasonSensitive, "OFFENSIVE", "Offensive"),
	}},
}

var reasonIndex = func() map[string]ReasonOption {
	idx := make(map[string]ReasonOption)
	for _, g := range reasonGroups {
		for _, o := range g.Options {
			idx[o.ID] = o
		}
	}
	return idx
}()

// ReasonID кодирует категорию и подпричину в один идентификатор.
func ReasonID(category ReasonCategory, subreason string) string {
	return string(category) + ReasonSeparator + subreason
}

// SplitReasonID разбивает идентификатор по первому разделителю.
func SplitReasonID(id string) (ReasonCategory, string) {
	category, subreason, _ := strings.Cut(id, ReasonSeparator)
	return ReasonCategory(category), subreason
}

// ReasonGroups возвращает копию таксономии в порядке отображения.
func ReasonGroups() []ReasonGroup {
	groups := make([]ReasonGroup, len(reasonGroups))
	for i, g := range reasonGroups {
		groups[i] = ReasonGroup{
			Category: g.Category,
			Options:  append([]ReasonOption(nil), g.Options...),
		}
	}
	return groups
}

// ReasonOptions возвращает все опции плоским списком.
func ReasonOptions() []ReasonOption {
	var opts []ReasonOption
	for _, g := range reasonGroups {
		opts = append(opts, g.Options...)
	}
	return opts
}

// LookupReason ищет опцию по составному идентификатору.
func LookupReason(id string) (ReasonOption, bool) {
	o, ok := reasonIndex[id]
	return o, ok
}
