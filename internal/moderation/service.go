package moderation

import (
	"context"
	"errors"
	"fmt"

	"hackhub/internal/auth"
	"hackhub/internal/metrics"
	"hackhub/models"

	"github.com/rs/zerolog/log"
)

// Store - операции хранилища, нужные модерации
type Store interface {
	CreateHackathon(ctx context.Context, h *models.Hackathon) error
	GetHackathon(ctx context.Context, id string) (*models.Hackathon, error)
	GetPublicHackathons(ctx context.Context) ([]models.Hackathon, error)
	GetHackathonsByStatus(ctx context.Context, status models.Status) ([]models.Hackathon, error)
	UpdateModeration(ctx context.Context, id string, from, to models.Status, verified bool) (*models.Hackathon, error)
}

// PublicCache кэширует публичный список. Ошибки кэша не прерывают запрос.
type PublicCache interface {
	GetPublic(ctx context.Context) ([]models.Hackathon, bool, error)
	SetPublic(ctx context.Context, hs []models.Hackathon) error
	Invalidate(ctx context.Context) error
}

type Service struct {
	store Store
	cache PublicCache
}

func NewService(store Store, cache PublicCache) *Service {
	return &Service{store: store, cache: cache}
}

// Submit проверяет заявку и создает хакатон в статусе pending
func (s *Service) Submit(ctx context.Context, sub Submission) (*models.Hackathon, error) {
	h, err := sub.Build()
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateHackathon(ctx, &h); err != nil {
		return nil, err
	}
	metrics.RecordSubmission()
	log.Info().Str("hackathon_id", h.ID).Str("title", h.Title).Msg("hackathon submitted")
	return &h, nil
}

// ListPublic - проверенные хакатоны в статусах upcoming/ongoing/completed
func (s *Service) ListPublic(ctx context.Context) ([]models.Hackathon, error) {
	if s.cache != nil {
		hs, ok, err := s.cache.GetPublic(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("public cache read failed")
		} else if ok {
			return hs, nil
		}
	}

	hs, err := s.store.GetPublicHackathons(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPublic(ctx, hs); err != nil {
			log.Warn().Err(err).Msg("public cache write failed")
		}
	}
	return hs, nil
}

// ListPending - заявки, ожидающие модерации
func (s *Service) ListPending(ctx context.Context) ([]models.Hackathon, error) {
	return s.store.GetHackathonsByStatus(ctx, models.StatusPending)
}

// GetByID возвращает только проверенный хакатон, остальные не раскрываются
func (s *Service) GetByID(ctx context.Context, id string) (*models.Hackathon, error) {
	h, err := s.store.GetHackathon(ctx, id)
	if err != nil {
		return nil, err
	}
	if !h.IsVerified {
		return nil, models.ErrNotFound
	}
	return h, nil
}

// Approve: pending -> upcoming, хакатон становится проверенным
func (s *Service) Approve(ctx context.Context, id string) (*models.Hackathon, error) {
	return s.decide(ctx, id, models.StatusUpcoming, true, "approved")
}

// Reject: pending -> rejected
func (s *Service) Reject(ctx context.Context, id string) (*models.Hackathon, error) {
	return s.decide(ctx, id, models.StatusRejected, false, "rejected")
}

func (s *Service) decide(ctx context.Context, id string, to models.Status, verified bool, decision string) (*models.Hackathon, error) {
	h, err := s.store.UpdateModeration(ctx, id, models.StatusPending, to, verified)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrInvalidTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("%s hackathon %s: %w", decision, id, err)
	}

	s.invalidate(ctx)
	metrics.RecordDecision(decision)
	ev := log.Info().Str("hackathon_id", id).Str("decision", decision)
	if sess, ok := auth.FromContext(ctx); ok {
		ev = ev.Str("moderator_id", sess.UserID)
	}
	ev.Msg("hackathon moderated")
	return h, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("public cache invalidate failed")
	}
}
