package listing

import (
	"math"
	"time"

	"hackhub/models"
)

// RegistrationOpen - регистрация еще не закрыта
func RegistrationOpen(h *models.Hackathon, now time.Time) bool {
	return !h.RegistrationDeadline.Before(now)
}

// DaysUntilDeadline возвращает число полных дней до дедлайна регистрации,
// для прошедшего дедлайна -1.
func DaysUntilDeadline(h *models.Hackathon, now time.Time) int {
	if !RegistrationOpen(h, now) {
		return -1
	}
	return int(math.Floor(h.RegistrationDeadline.Sub(now).Hours() / 24))
}
