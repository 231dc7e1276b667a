package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bloglist/internal/domain"
	"bloglist/internal/repository"
)

// BlogInput is the payload of a new blog. Title and URL are required.
type BlogInput struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
}

// BlogService coordinates blog operations and enforces ownership.
type BlogService interface {
	List(ctx context.Context) ([]domain.Blog, error)
	Get(ctx context.Context, id string) (*domain.Blog, error)
	Create(ctx context.Context, actorID string, in BlogInput) (*domain.Blog, error)
	// Update applies the change without any ownership check.
	Update(ctx context.Context, id string, update domain.BlogUpdate) (*domain.Blog, error)
	// UpdateOwned applies the change only when actorID owns the blog.
	UpdateOwned(ctx context.Context, actorID, id string, update domain.BlogUpdate) (*domain.Blog, error)
	Delete(ctx context.Context, actorID, id string) error
}

type blogService struct {
	blogs repository.BlogRepository
	users repository.UserRepository
}

func NewBlogService(blogs repository.BlogRepository, users repository.UserRepository) BlogService {
	return &blogService{
		blogs: blogs,
		users: users,
	}
}

func (s *blogService) List(ctx context.Context) ([]domain.Blog, error) {
	return s.blogs.List(ctx)
}

func (s *blogService) Get(ctx context.Context, id string) (*domain.Blog, error) {
	return s.blogs.Get(ctx, id)
}

func (s *blogService) Create(ctx context.Context, actorID string, in BlogInput) (*domain.Blog, error) {
	if blank(in.Title) || blank(in.URL) {
		return nil, &ValidationError{Message: "some fields are undefined"}
	}
	likes := 0
	if in.Likes != nil {
		likes = *in.Likes
	}
	if likes < 0 {
		return nil, errNegativeLikes
	}

	user, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrMalformedID) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	blog := &domain.Blog{
		Title:  *in.Title,
		URL:    *in.URL,
		Likes:  likes,
		UserID: user.ID,
	}
	if in.Author != nil {
		blog.Author = *in.Author
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}

	if err := s.users.AppendBlogReference(ctx, user.ID, blog.ID); err != nil {
		// the post must not outlive a failed reference append
		if delErr := s.blogs.Delete(context.WithoutCancel(ctx), blog.ID); delErr != nil {
			return nil, errors.Join(
				fmt.Errorf("append blog reference: %w", err),
				fmt.Errorf("remove orphaned blog %s: %w", blog.ID, delErr),
			)
		}
		return nil, fmt.Errorf("append blog reference: %w", err)
	}

	blog.Owner = &domain.Owner{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
	}
	return blog, nil
}

func (s *blogService) Update(ctx context.Context, id string, update domain.BlogUpdate) (*domain.Blog, error) {
	if err := validateUpdate(update); err != nil {
		return nil, err
	}
	if update.Empty() {
		return s.blogs.Get(ctx, id)
	}
	return s.blogs.Update(ctx, id, update)
}

func (s *blogService) UpdateOwned(ctx context.Context, actorID, id string, update domain.BlogUpdate) (*domain.Blog, error) {
	if err := validateUpdate(update); err != nil {
		return nil, err
	}
	blog, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if update.Empty() {
		return blog, nil
	}
	return s.blogs.Update(ctx, id, update)
}

func (s *blogService) Delete(ctx context.Context, actorID, id string) error {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return err
	}
	return s.blogs.Delete(ctx, id)
}

func (s *blogService) owned(ctx context.Context, actorID, id string) (*domain.Blog, error) {
	blog, err := s.blogs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog.UserID != actorID {
		return nil, ErrOwnershipMismatch
	}
	return blog, nil
}

var errNegativeLikes = &ValidationError{Message: "likes must be zero or more"}

func validateUpdate(update domain.BlogUpdate) error {
	if (update.Title != nil && blank(update.Title)) || (update.URL != nil && blank(update.URL)) {
		return &ValidationError{Message: "title and url must not be empty"}
	}
	if update.Likes != nil && *update.Likes < 0 {
		return errNegativeLikes
	}
	return nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
