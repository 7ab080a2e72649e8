package content

import "net/url"

// Section - упорядоченная группа вопросов манифеста.
type Section struct {
	Slug           string
	Name           string
	Description    string
	Editable       bool
	HasSummaryPage bool
	Step           int
	Questions      []*Question
}

// AppliesToLot - секция применима к лоту, если применим хотя бы один вопрос.
func (s *Section) AppliesToLot(lotSlug string) bool {
	for _, question := range s.Questions {
		if question.AppliesToLot(lotSlug) {
			return true
		}
	}
	return false
}

// filterForLot возвращает копию секции только с вопросами лота.
func (s *Section) filterForLot(lotSlug string) *Section {
	filtered := &Section{
		Slug:           s.Slug,
		Name:           s.Name,
		Description:    s.Description,
		Editable:       s.Editable,
		HasSummaryPage: s.HasSummaryPage,
		Step:           s.Step,
	}
	for _, question := range s.Questions {
		if question.AppliesToLot(lotSlug) {
			filtered.Questions = append(filtered.Questions, question)
		}
	}
	return filtered
}

// GetQuestion возвращает вопрос секции по идентификатору, либо nil.
func (s *Section) GetQuestion(questionID string) *Question {
	for _, question := range s.Questions {
		if question.ID == questionID {
			return question
		}
	}
	return nil
}

// NextQuestionID возвращает идентификатор следующего вопроса секции,
// если редактируемый вопрос не последний.
func (s *Section) NextQuestionID(questionID string) (string, bool) {
	for i, question := range s.Questions {
		if question.ID == questionID && i+1 < len(s.Questions) {
			return s.Questions[i+1].ID, true
		}
	}
	return "", false
}

// HasAtLeastOneRequiredQuestion - есть ли в секции обязательные вопросы.
func (s *Section) HasAtLeastOneRequiredQuestion() bool {
	for _, question := range s.Questions {
		if !question.Optional {
			return true
		}
	}
	return false
}

// GetData извлекает из формы данные всех вопросов секции.
func (s *Section) GetData(form url.Values) map[string]interface{} {
	data := make(map[string]interface{})
	for _, question := range s.Questions {
		for key, value := range question.GetData(form) {
			data[key] = value
		}
	}
	return data
}

// QuestionIDs возвращает идентификаторы вопросов секции; параметр
// page_questions при сохранении через Data API.
func (s *Section) QuestionIDs() []string {
	ids := make([]string, 0, len(s.Questions))
	for _, question := range s.Questions {
		ids = append(ids, question.ID)
	}
	return ids
}

// UnformatData приводит сохранённые ответы к виду, который ожидает форма
// редактирования; используется при повторном показе формы с ошибками.
func (s *Section) UnformatData(data map[string]interface{}) map[string]interface{} {
	unformatted := make(map[string]interface{}, len(data))
	for key, value := range data {
		question := s.GetQuestion(key)
		if question == nil {
			unformatted[key] = value
			continue
		}
		for fieldKey, fieldValue := range question.UnformatValue(value) {
			unformatted[fieldKey] = fieldValue
		}
	}
	return unformatted
}

// ErrorMessages сопоставляет полям формы сообщения по кодам ошибок Data API.
func (s *Section) ErrorMessages(apiErrors map[string]string) map[string]string {
	messages := make(map[string]string, len(apiErrors))
	for field, code := range apiErrors {
		if question := s.GetQuestion(field); question != nil {
			messages[field] = question.ErrorMessage(code)
		} else {
			messages[field] = code
		}
	}
	return messages
}
