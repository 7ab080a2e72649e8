package models

type FrameworkStatus string // Статус итерации фреймворка

const (
	OpenFramework    FrameworkStatus = "open"
	LiveFramework    FrameworkStatus = "live"
	ExpiredFramework FrameworkStatus = "expired"
)

// Framework представляет итерацию закупочного фреймворка.
type Framework struct {
	Slug   string          `json:"slug"`
	Name   string          `json:"name"`
	Family string          `json:"framework"`
	Status FrameworkStatus `json:"status"`
	Lots   []Lot           `json:"lots"`
}

// Lot - отдельный лот фреймворка; брифы разрешены не во всех лотах.
type Lot struct {
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	AllowsBrief     bool   `json:"allowsBrief"`
	OneServiceLimit bool   `json:"oneServiceLimit"`
}

// GetLot возвращает лот по slug, либо nil.
func (f *Framework) GetLot(lotSlug string) *Lot {
	for i := range f.Lots {
		if f.Lots[i].Slug == lotSlug {
			return &f.Lots[i]
		}
	}
	return nil
}

// HasStatus проверяет вхождение статуса фреймворка в список.
func (f *Framework) HasStatus(statuses ...FrameworkStatus) bool {
	for _, status := range statuses {
		if f.Status == status {
			return true
		}
	}
	return false
}
