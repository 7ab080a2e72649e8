package services

import (
	"time"

	"github.com/senyabanana/briefs-frontend/internal/models"
)

// Переопределяется в тестах.
var timeNow = time.Now

// PublishingDates - ключевые даты после публикации требований.
type PublishingDates struct {
	QuestionsCloseAt time.Time
	ClosingAt        time.Time
}

// GetPublishingDates вычисляет даты закрытия по ответу requirementsLength:
// "1 week" - приём заявок 7 дней, вопросы 2 дня; иначе 14 и 7 дней.
// Все сроки истекают в конце дня по UTC.
func GetPublishingDates(brief *models.Brief, from time.Time) PublishingDates {
	closingDays, questionDays := 14, 7
	if length, _ := brief.Value(requirementsLengthQuestion).(string); length == "1 week" {
		closingDays, questionDays = 7, 2
	}
	return PublishingDates{
		QuestionsCloseAt: endOfDay(from.AddDate(0, 0, questionDays)),
		ClosingAt:        endOfDay(from.AddDate(0, 0, closingDays)),
	}
}

func endOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 23, 59, 59, 0, time.UTC)
}
