package listing

import (
	"strings"
	"time"

	"hackhub/models"
)

const (
	AllStates    = "All States"
	AllDistricts = "All Districts"
	AllColleges  = "All Colleges"
	AllStatuses  = "All Statuses"
	AllTags      = "All Tags"
)

// Criteria - набор фильтров каталога. Пустая строка равнозначна
// соответствующему значению "All ...".
type Criteria struct {
	State     string
	District  string
	College   string
	Status    string
	Tag       string
	StartDate time.Time
	EndDate   time.Time
}

// DefaultCriteria возвращает фильтр, пропускающий все хакатоны
func DefaultCriteria() Criteria {
	return Criteria{
		State:    AllStates,
		District: AllDistricts,
		College:  AllColleges,
		Status:   AllStatuses,
		Tag:      AllTags,
	}
}

// Normalize сбрасывает район, если он не относится к выбранному штату.
func (c Criteria) Normalize() Criteria {
	if isAll(c.District, AllDistricts) {
		c.District = AllDistricts
		return c
	}
	if !ValidDistrict(c.State, c.District) {
		c.District = AllDistricts
	}
	return c
}

func (c Criteria) hasDateRange() bool {
	return !c.StartDate.IsZero() && !c.EndDate.IsZero()
}

// Match проверяет один хакатон на соответствие всем фильтрам.
// Статус сравнивается с вычисленным на момент now, а не с сохраненным.
func (c Criteria) Match(h *models.Hackathon, now time.Time) bool {
	if !isAll(c.State, AllStates) && h.State != c.State {
		return false
	}
	if !isAll(c.District, AllDistricts) && h.District != c.District {
		return false
	}
	if !isAll(c.College, AllColleges) && h.College != c.College {
		return false
	}
	if !isAll(c.Status, AllStatuses) {
		current := DeriveStatus(h.StartDate, h.EndDate, now)
		if string(current) != strings.ToLower(c.Status) {
			return false
		}
	}
	if !isAll(c.Tag, AllTags) && !h.HasTag(c.Tag) {
		return false
	}
	if c.hasDateRange() && !overlaps(h, c.StartDate, c.EndDate) {
		return false
	}
	return true
}

// Filter возвращает хакатоны, подходящие под критерии, в исходном порядке.
func Filter(items []models.Hackathon, c Criteria, now time.Time) []models.Hackathon {
	out := make([]models.Hackathon, 0, len(items))
	for i := range items {
		if c.Match(&items[i], now) {
			out = append(out, items[i])
		}
	}
	return out
}

// Search - регистронезависимый поиск подстроки по названию, описанию,
// колледжу, штату, району и тегам. Пустой запрос ничего не отсекает.
func Search(items []models.Hackathon, term string) []models.Hackathon {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	out := make([]models.Hackathon, 0, len(items))
	for i := range items {
		if containsTerm(&items[i], term) {
			out = append(out, items[i])
		}
	}
	return out
}

// Apply - структурные фильтры, затем текстовый поиск
func Apply(items []models.Hackathon, c Criteria, term string, now time.Time) []models.Hackathon {
	return Search(Filter(items, c, now), term)
}

func containsTerm(h *models.Hackathon, term string) bool {
	fields := []string{h.Title, h.Description, h.College, h.State, h.District}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	for _, t := range h.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// overlaps: одна из границ хакатона внутри интервала фильтра,
// либо хакатон строго накрывает интервал фильтра.
func overlaps(h *models.Hackathon, from, to time.Time) bool {
	fs := startOfDay(from)
	fe := endOfDay(to)
	return within(h.StartDate, fs, fe) ||
		within(h.EndDate, fs, fe) ||
		(h.StartDate.Before(fs) && h.EndDate.After(fe))
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func isAll(v, sentinel string) bool {
	return v == "" || v == sentinel
}
