package content

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type QuestionKind int // Тип вопроса; закрытый набор, разбирается при загрузке

const (
	KindText QuestionKind = iota
	KindTextarea
	KindNumber
	KindList
	KindRadios
	KindCheckboxes
	KindBoolean
	KindBooleanList
	KindDate
	KindPricing
)

var kindNames = map[QuestionKind]string{
	KindText:        "text",
	KindTextarea:    "textarea",
	KindNumber:      "number",
	KindList:        "list",
	KindRadios:      "radios",
	KindCheckboxes:  "checkboxes",
	KindBoolean:     "boolean",
	KindBooleanList: "boolean_list",
	KindDate:        "date",
	KindPricing:     "pricing",
}

// ParseQuestionKind разбирает тип вопроса из файла контента.
// Неизвестный тип - фатальная ошибка загрузки, а не ошибка запроса.
func ParseQuestionKind(name string) (QuestionKind, error) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown question kind %q", name)
}

func (k QuestionKind) String() string {
	return kindNames[k]
}

// Validation - правило валидации вопроса с сообщением для пользователя.
type Validation struct {
	Name    string `yaml:"name"`
	Message string `yaml:"message"`
}

// QuestionOption - вариант ответа для radios/checkboxes/boolean_list.
type QuestionOption struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Question - определение одного поля формы из файлов контента.
type Question struct {
	ID          string
	Kind        QuestionKind
	Label       string
	Hint        string
	Optional    bool
	Lots        []string // пустой список - вопрос применим ко всем лотам
	Validations []Validation
	Options     []QuestionOption
	Fields      []string // дополнительные поля составных вопросов (pricing)
	MaxItems    int      // ограничение числа элементов boolean_list
}

// AppliesToLot проверяет применимость вопроса к лоту.
func (q *Question) AppliesToLot(lotSlug string) bool {
	if len(q.Lots) == 0 {
		return true
	}
	for _, slug := range q.Lots {
		if slug == lotSlug {
			return true
		}
	}
	return false
}

// FormFields возвращает имена input-полей, которые вопрос читает из формы.
func (q *Question) FormFields() []string {
	switch q.Kind {
	case KindDate:
		return []string{q.ID + "-day", q.ID + "-month", q.ID + "-year"}
	case KindPricing:
		return q.Fields
	default:
		return []string{q.ID}
	}
}

// GetData извлекает из отправленной формы только поля этого вопроса,
// приводя их к типу ответа. Путь записи, обратный Summary.
func (q *Question) GetData(form url.Values) map[string]interface{} {
	data := make(map[string]interface{})

	switch q.Kind {
	case KindText, KindTextarea, KindRadios:
		if form.Has(q.ID) {
			data[q.ID] = stringOrNil(form.Get(q.ID))
		}
	case KindNumber:
		if form.Has(q.ID) {
			data[q.ID] = numberOrString(form.Get(q.ID))
		}
	case KindList, KindCheckboxes:
		// Отсутствие всех значений означает, что ответ очищен.
		values := make([]string, 0, len(form[q.ID]))
		for _, value := range form[q.ID] {
			if strings.TrimSpace(value) != "" {
				values = append(values, strings.TrimSpace(value))
			}
		}
		if len(values) > 0 {
			data[q.ID] = values
		} else {
			data[q.ID] = nil
		}
	case KindBoolean:
		data[q.ID] = boolOrNil(form.Get(q.ID))
	case KindBooleanList:
		data[q.ID] = q.booleanListData(form)
	case KindDate:
		data[q.ID] = q.dateData(form)
	case KindPricing:
		for _, field := range q.Fields {
			if form.Has(field) {
				data[field] = stringOrNil(form.Get(field))
			}
		}
	}
	return data
}

// booleanListData собирает упорядоченный список булевых ответов
// из индексированных полей id-0, id-1, ...
func (q *Question) booleanListData(form url.Values) interface{} {
	var values []interface{}
	for i := 0; ; i++ {
		field := fmt.Sprintf("%s-%d", q.ID, i)
		if !form.Has(field) {
			break
		}
		values = append(values, boolOrNil(form.Get(field)))
	}
	if values == nil {
		return nil
	}
	return values
}

// dateData склеивает поля день/месяц/год в строку YYYY-MM-DD.
// Корректность календарной даты проверяет Data API.
func (q *Question) dateData(form url.Values) interface{} {
	day := strings.TrimSpace(form.Get(q.ID + "-day"))
	month := strings.TrimSpace(form.Get(q.ID + "-month"))
	year := strings.TrimSpace(form.Get(q.ID + "-year"))
	if day == "" && month == "" && year == "" {
		return nil
	}
	return fmt.Sprintf("%s-%s-%s", year, padDatePart(month), padDatePart(day))
}

// UnformatValue возвращает ответ в форму для повторного отображения.
func (q *Question) UnformatValue(value interface{}) map[string]interface{} {
	data := make(map[string]interface{})
	if q.Kind == KindDate {
		if s, ok := value.(string); ok {
			parts := strings.SplitN(s, "-", 3)
			for len(parts) < 3 {
				parts = append(parts, "")
			}
			data[q.ID+"-year"] = parts[0]
			data[q.ID+"-month"] = strings.TrimPrefix(parts[1], "0")
			data[q.ID+"-day"] = strings.TrimPrefix(parts[2], "0")
			return data
		}
	}
	data[q.ID] = value
	return data
}

// ErrorMessage возвращает сообщение для кода ошибки валидации Data API.
func (q *Question) ErrorMessage(code string) string {
	for _, validation := range q.Validations {
		if validation.Name == code {
			return validation.Message
		}
	}
	return fmt.Sprintf("There was a problem with the answer to this question (%s)", code)
}

func stringOrNil(value string) interface{} {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return trimmed
}

// numberOrString отдаёт число, если строка разбирается; иначе сырую строку,
// чтобы Data API вернул осмысленную ошибку валидации.
func numberOrString(value string) interface{} {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if number, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return number
	}
	return trimmed
}

func boolOrNil(value string) interface{} {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes":
		return true
	case "false", "no":
		return false
	default:
		return nil
	}
}

func padDatePart(part string) string {
	if len(part) == 1 {
		return "0" + part
	}
	return part
}
