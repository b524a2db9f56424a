package repository

import (
	"context"

	"bloglist/internal/domain"
)

// BlogRepository exposes persistence operations for Blog aggregates.
type BlogRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, blog *domain.Blog) error
	Get(ctx context.Context, id string) (*domain.Blog, error)
	List(ctx context.Context) ([]domain.Blog, error)
	Update(ctx context.Context, id string, patch domain.BlogPatch) error
	Delete(ctx context.Context, id string) error
}
