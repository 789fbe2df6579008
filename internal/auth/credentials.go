package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credentials - учетная запись администратора из конфигурации
type Credentials struct {
	Email        string
	PasswordHash string
}

// Login проверяет email и пароль и выпускает токен с ролью
type Login struct {
	admin  Credentials
	tokens *Tokens
}

func NewLogin(admin Credentials, tokens *Tokens) *Login {
	return &Login{admin: admin, tokens: tokens}
}

// Authenticate возвращает подписанный токен и роль
func (l *Login) Authenticate(email, password string) (string, string, error) {
	if l.admin.Email == "" || l.admin.PasswordHash == "" {
		return "", "", ErrUnauthorized
	}
	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(email))),
		[]byte(strings.ToLower(l.admin.Email)),
	) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(l.admin.PasswordHash), []byte(password))
	if !emailOK || passErr != nil {
		return "", "", ErrUnauthorized
	}

	token, err := l.tokens.Sign(Session{UserID: "admin", Email: l.admin.Email, Role: RoleAdmin})
	if err != nil {
		return "", "", err
	}
	return token, RoleAdmin, nil
}
