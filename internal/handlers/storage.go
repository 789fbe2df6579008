package handlers

import (
	"context"

	"hackhub/internal/moderation"
)

// StorageInterface - то, что обработчикам нужно от хранилища помимо модерации
type StorageInterface interface {
	moderation.Store

	Ping(ctx context.Context) error
	GetPublicColleges(ctx context.Context) ([]string, error)
	GetPublicTags(ctx context.Context) ([]string, error)
}
