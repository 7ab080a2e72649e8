package models

import (
	"encoding/json"
	"time"
)

type BriefStatus string // Статус брифа

const (
	DraftBrief        BriefStatus = "draft"        // Бриф в черновике
	LiveBrief         BriefStatus = "live"         // Бриф опубликован
	ClosedBrief       BriefStatus = "closed"       // Приём заявок завершён
	WithdrawnBrief    BriefStatus = "withdrawn"    // Бриф отозван
	AwardedBrief      BriefStatus = "awarded"      // Контракт присуждён
	CancelledBrief    BriefStatus = "cancelled"    // Бриф отменён
	UnsuccessfulBrief BriefStatus = "unsuccessful" // Подходящих поставщиков не нашлось
)

// ClosedBriefStatuses - статусы, при которых бриф считается завершённым на дашборде.
var ClosedBriefStatuses = []BriefStatus{ClosedBrief, WithdrawnBrief, AwardedBrief, CancelledBrief, UnsuccessfulBrief}

// ClosedPublishedBriefStatuses - завершённые статусы, при которых заявки поставщиков доступны для просмотра.
var ClosedPublishedBriefStatuses = []BriefStatus{ClosedBrief, AwardedBrief, CancelledBrief, UnsuccessfulBrief}

// DatetimeFormat - формат дат во всех ответах Data API.
const DatetimeFormat = "2006-01-02T15:04:05.000000Z"

// Brief представляет требование покупателя: фиксированные метаданные плюс
// произвольные ответы на вопросы манифеста.
type Brief struct {
	ID                     int
	FrameworkSlug          string
	LotSlug                string
	LotName                string
	Status                 BriefStatus
	CreatedAt              time.Time
	PublishedAt            time.Time
	ApplicationsClosedAt   time.Time
	Users                  []User
	Framework              BriefFramework
	ClarificationQuestions []ClarificationQuestion
	AwardedBriefResponseID int
	Answers                map[string]interface{}
}

// BriefFramework - вложенные сведения о фреймворке внутри брифа.
type BriefFramework struct {
	Slug   string `json:"slug"`
	Family string `json:"family"`
	Status string `json:"status"`
}

// ClarificationQuestion - опубликованный вопрос поставщика с ответом покупателя.
type ClarificationQuestion struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	PublishedAt string `json:"publishedAt,omitempty"`
	Number      int    `json:"number,omitempty"`
}

// briefMetadataKeys - ключи JSON, которые не являются ответами на вопросы.
var briefMetadataKeys = map[string]bool{
	"id":                                true,
	"frameworkSlug":                     true,
	"frameworkName":                     true,
	"frameworkFramework":                true,
	"framework":                         true,
	"lotSlug":                           true,
	"lotName":                           true,
	"status":                            true,
	"createdAt":                         true,
	"updatedAt":                         true,
	"publishedAt":                       true,
	"applicationsClosedAt":              true,
	"clarificationQuestionsClosedAt":    true,
	"clarificationQuestionsPublishedBy": true,
	"clarificationQuestionsAreClosed":   true,
	"users":                             true,
	"clarificationQuestions":            true,
	"awardedBriefResponseId":            true,
	"links":                             true,
}

type briefEnvelope struct {
	ID                     int                     `json:"id"`
	FrameworkSlug          string                  `json:"frameworkSlug"`
	LotSlug                string                  `json:"lotSlug"`
	LotName                string                  `json:"lotName"`
	Status                 BriefStatus             `json:"status"`
	CreatedAt              string                  `json:"createdAt"`
	PublishedAt            string                  `json:"publishedAt"`
	ApplicationsClosedAt   string                  `json:"applicationsClosedAt"`
	Users                  []User                  `json:"users"`
	Framework              BriefFramework          `json:"framework"`
	ClarificationQuestions []ClarificationQuestion `json:"clarificationQuestions"`
	AwardedBriefResponseID int                     `json:"awardedBriefResponseId"`
}

// UnmarshalJSON разделяет плоский объект Data API на метаданные и ответы.
func (b *Brief) UnmarshalJSON(data []byte) error {
	var env briefEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	answers := make(map[string]interface{})
	for key, value := range raw {
		if briefMetadataKeys[key] {
			continue
		}
		var decoded interface{}
		if err := json.Unmarshal(value, &decoded); err != nil {
			return err
		}
		answers[key] = decoded
	}

	*b = Brief{
		ID:                     env.ID,
		FrameworkSlug:          env.FrameworkSlug,
		LotSlug:                env.LotSlug,
		LotName:                env.LotName,
		Status:                 env.Status,
		CreatedAt:              parseAPITime(env.CreatedAt),
		PublishedAt:            parseAPITime(env.PublishedAt),
		ApplicationsClosedAt:   parseAPITime(env.ApplicationsClosedAt),
		Users:                  env.Users,
		Framework:              env.Framework,
		ClarificationQuestions: env.ClarificationQuestions,
		AwardedBriefResponseID: env.AwardedBriefResponseID,
		Answers:                answers,
	}
	return nil
}

// MarshalJSON восстанавливает плоский объект в формате Data API.
func (b Brief) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(b.Answers)+12)
	for key, value := range b.Answers {
		flat[key] = value
	}
	flat["id"] = b.ID
	flat["frameworkSlug"] = b.FrameworkSlug
	flat["lotSlug"] = b.LotSlug
	flat["lotName"] = b.LotName
	flat["status"] = b.Status
	flat["users"] = b.Users
	flat["framework"] = b.Framework
	if b.ClarificationQuestions != nil {
		flat["clarificationQuestions"] = b.ClarificationQuestions
	} else {
		flat["clarificationQuestions"] = []ClarificationQuestion{}
	}
	if !b.CreatedAt.IsZero() {
		flat["createdAt"] = b.CreatedAt.UTC().Format(DatetimeFormat)
	}
	if !b.PublishedAt.IsZero() {
		flat["publishedAt"] = b.PublishedAt.UTC().Format(DatetimeFormat)
	}
	if !b.ApplicationsClosedAt.IsZero() {
		flat["applicationsClosedAt"] = b.ApplicationsClosedAt.UTC().Format(DatetimeFormat)
	}
	if b.AwardedBriefResponseID != 0 {
		flat["awardedBriefResponseId"] = b.AwardedBriefResponseID
	}
	return json.Marshal(flat)
}

func parseAPITime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(DatetimeFormat, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Value возвращает ответ на вопрос или nil, если ответа нет.
func (b *Brief) Value(questionID string) interface{} {
	return b.Answers[questionID]
}

// Title возвращает название требования (оно само является ответом на вопрос).
func (b *Brief) Title() string {
	title, _ := b.Answers["title"].(string)
	return title
}

// DisplayName - название для пользовательских сообщений: title либо имя лота.
func (b *Brief) DisplayName() string {
	if title := b.Title(); title != "" {
		return title
	}
	return b.LotName
}

// IsAssociatedWithUser проверяет, принадлежит ли бриф пользователю.
func (b *Brief) IsAssociatedWithUser(userID int) bool {
	for _, user := range b.Users {
		if user.ID == userID {
			return true
		}
	}
	return false
}

// CanBeEdited - редактировать можно только черновик.
func (b *Brief) CanBeEdited() bool {
	return b.Status == DraftBrief
}

// IsWithdrawn проверяет, отозван ли бриф.
func (b *Brief) IsWithdrawn() bool {
	return b.Status == WithdrawnBrief
}

// IsClosed - приём заявок завершён, но исход ещё не объявлен.
func (b *Brief) IsClosed() bool {
	return b.Status == ClosedBrief
}

// HasStatus проверяет вхождение статуса брифа в список.
func (b *Brief) HasStatus(statuses ...BriefStatus) bool {
	for _, status := range statuses {
		if b.Status == status {
			return true
		}
	}
	return false
}
