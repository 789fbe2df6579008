package listing

import (
	"time"

	"hackhub/models"
)

// DeriveStatus вычисляет текущий статус по датам проведения.
// Начало берется с начала дня startDate, конец с конца дня endDate,
// оба в часовом поясе now.
func DeriveStatus(startDate, endDate, now time.Time) models.Status {
	start := startOfDay(startDate.In(now.Location()))
	end := endOfDay(endDate.In(now.Location()))

	switch {
	case now.Before(start):
		return models.StatusUpcoming
	case now.After(end):
		return models.StatusCompleted
	default:
		return models.StatusOngoing
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
