package service

import (
	"context"
	"fmt"
	"strconv"

	"bloglist/internal/domain"
	"bloglist/internal/repository"
)

// -------- test fakes --------

type fakeUsersRepo struct {
	repository.UserRepository
	byID      map[string]*domain.User
	order     []string
	seq       int
	appendErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*domain.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *domain.User) error {
	for _, u := range f.byID {
		if u.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
	}
	f.seq++
	user.ID = "u" + strconv.Itoa(f.seq)
	stored := *user
	f.byID[user.ID] = &stored
	f.order = append(f.order, user.ID)
	return nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *f.byID[id])
	}
	return out, nil
}

func (f *fakeUsersRepo) AppendBlogReference(ctx context.Context, userID, blogID string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.BlogIDs = append(u.BlogIDs, blogID)
	return nil
}

type fakeBlogsRepo struct {
	repository.BlogRepository
	byID      map[string]*domain.Blog
	order     []string
	seq       int
	deleted   []string
	createErr error
	deleteErr error
}

func newFakeBlogsRepo() *fakeBlogsRepo {
	return &fakeBlogsRepo{byID: map[string]*domain.Blog{}}
}

func (f *fakeBlogsRepo) Create(ctx context.Context, blog *domain.Blog) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	blog.ID = "b" + strconv.Itoa(f.seq)
	stored := *blog
	f.byID[blog.ID] = &stored
	f.order = append(f.order, blog.ID)
	return nil
}

func (f *fakeBlogsRepo) Get(ctx context.Context, id string) (*domain.Blog, error) {
	if id == "malformed" {
		return nil, domain.ErrMalformedID
	}
	b, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("blog %s: %w", id, domain.ErrNotFound)
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBlogsRepo) List(ctx context.Context) ([]domain.Blog, error) {
	out := make([]domain.Blog, 0, len(f.order))
	for _, id := range f.order {
		if b, ok := f.byID[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBlogsRepo) Update(ctx context.Context, id string, update domain.BlogUpdate) (*domain.Blog, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if update.Title != nil {
		b.Title = *update.Title
	}
	if update.Author != nil {
		b.Author = *update.Author
	}
	if update.URL != nil {
		b.URL = *update.URL
	}
	if update.Likes != nil {
		b.Likes = *update.Likes
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBlogsRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func ptr[T any](v T) *T { return &v }
