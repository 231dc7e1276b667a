package repository

import (
	"context"

	"bloglist/internal/domain"
)

// BlogRepository exposes persistence operations for blog posts.
// Reads resolve the owning user into Blog.Owner.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) error
	Get(ctx context.Context, id string) (*domain.Blog, error)
	List(ctx context.Context) ([]domain.Blog, error)
	Update(ctx context.Context, id string, update domain.BlogUpdate) (*domain.Blog, error)
	// Delete removes the blog and the owner's reference to it.
	Delete(ctx context.Context, id string) error
}
