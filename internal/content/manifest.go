package content

import (
	"github.com/senyabanana/briefs-frontend/internal/models"
)

// Manifest - упорядоченный набор секций одного сценария (edit_brief,
// display_brief, award_brief, clarification_question). После загрузки
// не изменяется; привязка ответов делается поверх, в Summary.
type Manifest struct {
	Name          string
	FrameworkSlug string
	Sections      []*Section
}

// Filter возвращает манифест только с секциями и вопросами лота.
// Пустой lotSlug не фильтрует ничего. Пустой результат означает,
// что для лота контент не определён; вызывающий обязан вернуть 404.
func (m *Manifest) Filter(lotSlug string) *Manifest {
	if lotSlug == "" {
		return m
	}
	filtered := &Manifest{Name: m.Name, FrameworkSlug: m.FrameworkSlug}
	for _, section := range m.Sections {
		if section.AppliesToLot(lotSlug) {
			filtered.Sections = append(filtered.Sections, section.filterForLot(lotSlug))
		}
	}
	return filtered
}

// IsEmpty - не осталось ни одной секции после фильтрации.
func (m *Manifest) IsEmpty() bool {
	return len(m.Sections) == 0
}

// GetSection возвращает секцию по slug, либо nil; nil означает 404.
func (m *Manifest) GetSection(slug string) *Section {
	for _, section := range m.Sections {
		if section.Slug == slug {
			return section
		}
	}
	return nil
}

// GetQuestion ищет вопрос по идентификатору во всех секциях.
func (m *Manifest) GetQuestion(questionID string) *Question {
	for _, section := range m.Sections {
		if question := section.GetQuestion(questionID); question != nil {
			return question
		}
	}
	return nil
}

// GetNextEditableSectionSlug возвращает slug первой редактируемой секции.
func (m *Manifest) GetNextEditableSectionSlug() string {
	for _, section := range m.Sections {
		if section.Editable {
			return section.Slug
		}
	}
	return ""
}

// Summary привязывает ответы брифа к вопросам манифеста.
func (m *Manifest) Summary(brief *models.Brief) SummarySections {
	sections := make(SummarySections, 0, len(m.Sections))
	for _, section := range m.Sections {
		summarySection := SummarySection{Section: section}
		for _, question := range section.Questions {
			summarySection.Questions = append(summarySection.Questions, SummaryQuestion{
				Question: question,
				Value:    brief.Value(question.ID),
			})
		}
		sections = append(sections, summarySection)
	}
	return sections
}
