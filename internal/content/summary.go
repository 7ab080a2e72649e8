package content

// SummaryQuestion - вопрос с ответом конкретного брифа. Значение лежит
// в наложении, а не в самом манифесте, поэтому манифест можно разделять
// между запросами без копирования.
type SummaryQuestion struct {
	*Question
	Value interface{}
}

// AnswerRequired - вопрос обязателен и ответа нет.
func (q SummaryQuestion) AnswerRequired() bool {
	return !q.Optional && isEmptyValue(q.Value)
}

// IsEmpty - ответ отсутствует: nil, пустая строка или пустой список.
func (q SummaryQuestion) IsEmpty() bool {
	return isEmptyValue(q.Value)
}

// SummarySection - секция манифеста с привязанными ответами.
type SummarySection struct {
	*Section
	Questions []SummaryQuestion
}

// GetQuestion возвращает привязанный вопрос секции по идентификатору.
func (s SummarySection) GetQuestion(questionID string) (SummaryQuestion, bool) {
	for _, question := range s.Questions {
		if question.ID == questionID {
			return question, true
		}
	}
	return SummaryQuestion{}, false
}

// SummarySections - результат Manifest.Summary.
type SummarySections []SummarySection

// GetSection возвращает секцию по slug.
func (s SummarySections) GetSection(slug string) (SummarySection, bool) {
	for _, section := range s {
		if section.Slug == slug {
			return section, true
		}
	}
	return SummarySection{}, false
}

// GetQuestion ищет привязанный вопрос по всем секциям.
func (s SummarySections) GetQuestion(questionID string) (SummaryQuestion, bool) {
	for _, section := range s {
		if question, ok := section.GetQuestion(questionID); ok {
			return question, true
		}
	}
	return SummaryQuestion{}, false
}

// CountUnansweredQuestions считает вопросы без ответа. Обязательный вопрос
// без ответа попадает в required; необязательный со значением "" / [] / nil -
// в optional. Присутствующие false и 0 ответами без значения не считаются.
// От этих счётчиков зависят кнопка публикации и счётчики на дашборде.
func CountUnansweredQuestions(sections []SummarySection) (required, optional int) {
	for _, section := range sections {
		for _, question := range section.Questions {
			if question.AnswerRequired() {
				required++
			} else if question.Optional && question.IsEmpty() {
				optional++
			}
		}
	}
	return required, optional
}

// isEmptyValue: ответом без значения считаются только nil, "" и пустой список.
func isEmptyValue(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []interface{}:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case []bool:
		return len(v) == 0
	default:
		return false
	}
}
