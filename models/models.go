package models

import (
	"errors"
	"time"
)

// Статус хакатона
type Status string

const (
	StatusPending   Status = "pending"
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUpcoming, StatusOngoing, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Public сообщает, может ли хакатон с таким статусом быть в публичной выдаче
func (s Status) Public() bool {
	return s == StatusUpcoming || s == StatusOngoing || s == StatusCompleted
}

var (
	ErrNotFound          = errors.New("hackathon not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Размер команды
type TeamSize struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Сущность Хакатона
type Hackathon struct {
	ID                   string    `json:"_id"`
	Title                string    `json:"title"`
	College              string    `json:"college"`
	State                string    `json:"state"`
	District             string    `json:"district"`
	StartDate            time.Time `json:"startDate"`
	EndDate              time.Time `json:"endDate"`
	RegistrationDeadline time.Time `json:"registrationDeadline"`
	Description          string    `json:"description"`
	Eligibility          string    `json:"eligibility"`
	Prizes               string    `json:"prizes"`
	TeamSize             TeamSize  `json:"teamSize"`
	Tags                 []string  `json:"tags"`
	Website              string    `json:"website,omitempty"`
	Image                string    `json:"image"`
	ContactName          string    `json:"contactName"`
	ContactEmail         string    `json:"contactEmail"`
	ContactPhone         string    `json:"contactPhone"`
	IsVerified           bool      `json:"isVerified"`
	Status               Status    `json:"status"`
	CreatedAt            time.Time `json:"createdAt"`
}

// HasTag проверяет наличие тега (точное совпадение)
func (h *Hackathon) HasTag(tag string) bool {
	for _, t := range h.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
