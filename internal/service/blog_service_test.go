package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloglist/internal/domain"
)

func newBlogFixture(t *testing.T) (BlogService, *fakeBlogsRepo, *fakeUsersRepo, *domain.User) {
	t.Helper()
	users := newFakeUsersRepo()
	blogs := newFakeBlogsRepo()
	owner := &domain.User{Username: "mluukkai", Name: "Matti Luukkainen"}
	require.NoError(t, users.Create(context.Background(), owner))
	return NewBlogService(blogs, users), blogs, users, owner
}

func TestCreate_DefaultsLikesAndRecordsReference(t *testing.T) {
	svc, blogs, users, owner := newBlogFixture(t)

	blog, err := svc.Create(context.Background(), owner.ID, BlogInput{
		Title: ptr("Scrum Wars"),
		URL:   ptr("http://x"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, blog.Likes)
	assert.Equal(t, owner.ID, blog.UserID)
	require.NotNil(t, blog.Owner)
	assert.Equal(t, "mluukkai", blog.Owner.Username)
	assert.Equal(t, "Matti Luukkainen", blog.Owner.Name)

	assert.Len(t, blogs.byID, 1)
	assert.Equal(t, []string{blog.ID}, users.byID[owner.ID].BlogIDs)
}

func TestCreate_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		in   BlogInput
	}{
		{"no title", BlogInput{URL: ptr("http://x")}},
		{"no url", BlogInput{Title: ptr("t")}},
		{"blank title", BlogInput{Title: ptr("  "), URL: ptr("http://x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, blogs, _, owner := newBlogFixture(t)

			_, err := svc.Create(context.Background(), owner.ID, tt.in)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "some fields are undefined", vErr.Message)
			assert.Empty(t, blogs.byID)
		})
	}
}

func TestCreate_NegativeLikes(t *testing.T) {
	svc, _, _, owner := newBlogFixture(t)

	_, err := svc.Create(context.Background(), owner.ID, BlogInput{Title: ptr("t"), URL: ptr("u"), Likes: ptr(-1)})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestCreate_UnknownUser(t *testing.T) {
	svc, blogs, _, _ := newBlogFixture(t)

	_, err := svc.Create(context.Background(), "ghost", BlogInput{Title: ptr("t"), URL: ptr("u")})
	require.ErrorIs(t, err, ErrUnknownUser)
	assert.Empty(t, blogs.byID)
}

func TestCreate_UserLookupFailure(t *testing.T) {
	svc, _, users, owner := newBlogFixture(t)
	users.getErr = errors.New("db down")

	_, err := svc.Create(context.Background(), owner.ID, BlogInput{Title: ptr("t"), URL: ptr("u")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownUser)
}

func TestCreate_FailedReferenceRemovesBlog(t *testing.T) {
	svc, blogs, users, owner := newBlogFixture(t)
	users.appendErr = errors.New("write conflict")

	_, err := svc.Create(context.Background(), owner.ID, BlogInput{Title: ptr("t"), URL: ptr("u")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write conflict")
	assert.Empty(t, blogs.byID)
	assert.Len(t, blogs.deleted, 1)
}

func TestCreate_FailedCompensationReportsBoth(t *testing.T) {
	svc, blogs, users, owner := newBlogFixture(t)
	users.appendErr = errors.New("write conflict")
	blogs.deleteErr = errors.New("connection reset")

	_, err := svc.Create(context.Background(), owner.ID, BlogInput{Title: ptr("t"), URL: ptr("u")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write conflict")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestDelete_ByOwner(t *testing.T) {
	svc, blogs, _, owner := newBlogFixture(t)
	blog, err := svc.Create(context.Background(), owner.ID, BlogInput{Title: ptr("t"), URL: ptr("u")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), owner.ID, blog.ID))
	assert.Empty(t, blogs.byID)
}

func TestDelete_OwnershipMismatch(t *testing.T) {
	svc, blogs, users, owner := newBlogFixture(t)
	blog, err := svc.Create(context.Background(), owner.ID, BlogInput{Title: ptr("t"), URL: ptr("u")})
	require.NoError(t, err)

	other := &domain.User{Username: "hellas"}
	require.NoError(t, users.Create(context.Background(), other))

	err = svc.Delete(context.Background(), other.ID, blog.ID)
	require.ErrorIs(t, err, ErrOwnershipMismatch)
	assert.Len(t, blogs.byID, 1)
}

func TestDelete_LookupErrors(t *testing.T) {
	svc, _, _, owner := newBlogFixture(t)

	require.ErrorIs(t, svc.Delete(context.Background(), owner.ID, "malformed"), domain.ErrMalformedID)
	require.ErrorIs(t, svc.Delete(context.Background(), owner.ID, "b404"), domain.ErrNotFound)
}

func TestUpdate_NoOwnershipCheck(t *testing.T) {
	svc, _, users, owner := newBlogFixture(t)
	blog, err := svc.Create(context.Background(), owner.ID, BlogInput{Title: ptr("t"), URL: ptr("u"), Likes: ptr(3)})
	require.NoError(t, err)

	other := &domain.User{Username: "stranger"}
	require.NoError(t, users.Create(context.Background(), other))

	updated, err := svc.Update(context.Background(), blog.ID, domain.BlogUpdate{Likes: ptr(10)})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Likes)
	assert.Equal(t, "t", updated.Title)

	_, err = svc.UpdateOwned(context.Background(), other.ID, blog.ID, domain.BlogUpdate{Likes: ptr(11)})
	require.ErrorIs(t, err, ErrOwnershipMismatch)

	updated, err = svc.UpdateOwned(context.Background(), owner.ID, blog.ID, domain.BlogUpdate{Likes: ptr(12)})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Likes)
}

func TestUpdate_Validation(t *testing.T) {
	svc, _, _, owner := newBlogFixture(t)
	blog, err := svc.Create(context.Background(), owner.ID, BlogInput{Title: ptr("t"), URL: ptr("u")})
	require.NoError(t, err)

	var vErr *ValidationError
	_, err = svc.Update(context.Background(), blog.ID, domain.BlogUpdate{Title: ptr("")})
	require.ErrorAs(t, err, &vErr)

	_, err = svc.Update(context.Background(), blog.ID, domain.BlogUpdate{Likes: ptr(-5)})
	require.ErrorAs(t, err, &vErr)

	_, err = svc.Update(context.Background(), "b404", domain.BlogUpdate{Likes: ptr(1)})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_EmptyUpdateReturnsCurrent(t *testing.T) {
	svc, blogs, _, owner := newBlogFixture(t)
	blog, err := svc.Create(context.Background(), owner.ID, BlogInput{Title: ptr("t"), URL: ptr("u"), Likes: ptr(2)})
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), blog.ID, domain.BlogUpdate{})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Likes)

	_, err = svc.Update(context.Background(), "malformed", domain.BlogUpdate{})
	require.ErrorIs(t, err, domain.ErrMalformedID)

	got, err = svc.UpdateOwned(context.Background(), owner.ID, blog.ID, domain.BlogUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
	assert.Len(t, blogs.byID, 1)
}
