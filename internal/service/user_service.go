package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"bloglist/internal/domain"
	"bloglist/internal/repository"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 3

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// RegisterInput carries the registration payload. A nil Adult defaults to true.
type RegisterInput struct {
	Username string
	Name     string
	Password string
	Adult    *bool
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type userService struct {
	users      repository.UserRepository
	blogs      repository.BlogRepository
	bcryptCost int
}

func NewUserService(users repository.UserRepository, blogs repository.BlogRepository, bcryptCost int) UserService {
	return &userService{
		users:      users,
		blogs:      blogs,
		bcryptCost: bcryptCost,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)

	if len(in.Password) < MinPasswordLength {
		return nil, &ValidationError{Message: fmt.Sprintf("password must be atleast %d characters", MinPasswordLength)}
	}
	if username == "" {
		return nil, &ValidationError{Message: "username is required"}
	}

	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, errUsernameTaken
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	adult := true
	if in.Adult != nil {
		adult = *in.Adult
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: string(hash),
		Adult:        adult,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, errUsernameTaken
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// List returns every user with the referenced blogs resolved in reference order.
func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Blog, len(blogs))
	for _, blog := range blogs {
		byID[blog.ID] = blog
	}

	out := make([]domain.User, len(users))
	for i := range users {
		user := sanitizeUser(&users[i])
		user.Blogs = make([]domain.Blog, 0, len(user.BlogIDs))
		for _, id := range user.BlogIDs {
			if blog, ok := byID[id]; ok {
				user.Blogs = append(user.Blogs, blog)
			}
		}
		out[i] = *user
	}
	return out, nil
}

var errUsernameTaken = &ValidationError{Message: "username must be unique"}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		Adult:     user.Adult,
		BlogIDs:   append([]string(nil), user.BlogIDs...),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
