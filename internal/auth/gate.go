package auth

import (
	"strings"
)

// Verifier - внешний сервис проверки учетных данных
type Verifier interface {
	Verify(raw string) (Session, error)
}

// Gate пропускает только запросы с действующим токеном администратора
type Gate struct {
	verifier Verifier
}

func NewGate(v Verifier) *Gate {
	return &Gate{verifier: v}
}

// Authorize разбирает заголовок Authorization.
// Нет или неверный токен - ErrUnauthorized, роль не admin - ErrForbidden.
func (g *Gate) Authorize(header string) (Session, error) {
	header = strings.TrimSpace(header)
	if !strings.HasPrefix(header, "Bearer ") {
		return Session{}, ErrUnauthorized
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" {
		return Session{}, ErrUnauthorized
	}

	s, err := g.verifier.Verify(raw)
	if err != nil {
		return Session{}, ErrUnauthorized
	}
	if !s.IsAdmin() {
		return s, ErrForbidden
	}
	return s, nil
}
