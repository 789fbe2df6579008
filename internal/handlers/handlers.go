package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"hackhub/internal/auth"
	"hackhub/internal/moderation"
	"hackhub/models"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Handler связывает HTTP-слой с модерацией и хранилищем
type Handler struct {
	Store      StorageInterface
	Moderation *moderation.Service
	Gate       *auth.Gate
	Login      *auth.Login
	Clock      clockwork.Clock
}

// NewHandler создает новый Handler
func NewHandler(store StorageInterface, svc *moderation.Service, gate *auth.Gate, login *auth.Login, clock clockwork.Clock) *Handler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Handler{Store: store, Moderation: svc, Gate: gate, Login: login, Clock: clock}
}

// PingHandler отвечает "ok" для проверки сервера
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// ReadyHandler проверяет доступность БД
func (h *Handler) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("readiness check failed")
		writeMessage(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError переводит ошибку в HTTP-ответ, внутренние детали только в лог
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *moderation.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: ve.Fields})
	case errors.Is(err, models.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Hackathon not found")
	case errors.Is(err, models.ErrInvalidTransition):
		writeMessage(w, http.StatusConflict, "Hackathon is not pending review")
	case errors.Is(err, auth.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, auth.ErrTokenExpired):
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
