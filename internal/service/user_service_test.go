package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bloglist/internal/domain"
)

func newUserFixture() (UserService, *fakeUsersRepo, *fakeBlogsRepo) {
	users := newFakeUsersRepo()
	blogs := newFakeBlogsRepo()
	return NewUserService(users, blogs, bcrypt.MinCost), users, blogs
}

func TestRegister_Success(t *testing.T) {
	svc, users, _ := newUserFixture()

	user, err := svc.Register(context.Background(), RegisterInput{Username: "mluukkai", Name: "Matti Luukkainen", Password: "salainen"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "mluukkai", user.Username)
	assert.True(t, user.Adult)
	assert.Empty(t, user.PasswordHash)

	stored := users.byID[user.ID]
	require.NotNil(t, stored)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("salainen")))
}

func TestRegister_ExplicitAdultFalse(t *testing.T) {
	svc, _, _ := newUserFixture()

	user, err := svc.Register(context.Background(), RegisterInput{Username: "kid", Password: "secret", Adult: ptr(false)})
	require.NoError(t, err)
	assert.False(t, user.Adult)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc, users, _ := newUserFixture()

	_, err := svc.Register(context.Background(), RegisterInput{Username: "rob", Password: "ab"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password must be atleast 3 characters", vErr.Message)
	assert.Empty(t, users.byID)
}

func TestRegister_MissingUsername(t *testing.T) {
	svc, users, _ := newUserFixture()

	_, err := svc.Register(context.Background(), RegisterInput{Username: "  ", Password: "secret"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username is required", vErr.Message)
	assert.Empty(t, users.byID)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, users, _ := newUserFixture()

	_, err := svc.Register(context.Background(), RegisterInput{Username: "root", Password: "sekret"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Username: "root", Password: "another"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username must be unique", vErr.Message)
	assert.Len(t, users.byID, 1)
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newUserFixture()
	registered, err := svc.Register(context.Background(), RegisterInput{Username: "root", Password: "sekret"})
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "root", "sekret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Authenticate(context.Background(), "root", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody", "sekret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestList_ResolvesBlogsInReferenceOrder(t *testing.T) {
	svc, users, blogs := newUserFixture()
	ctx := context.Background()

	author, err := svc.Register(ctx, RegisterInput{Username: "author", Password: "secret"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Username: "reader", Password: "secret"})
	require.NoError(t, err)

	first := &domain.Blog{Title: "first", URL: "u1", UserID: author.ID}
	second := &domain.Blog{Title: "second", URL: "u2", UserID: author.ID}
	require.NoError(t, blogs.Create(ctx, first))
	require.NoError(t, blogs.Create(ctx, second))
	// references recorded out of creation order
	require.NoError(t, users.AppendBlogReference(ctx, author.ID, second.ID))
	require.NoError(t, users.AppendBlogReference(ctx, author.ID, first.ID))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "author", list[0].Username)
	require.Len(t, list[0].Blogs, 2)
	assert.Equal(t, "second", list[0].Blogs[0].Title)
	assert.Equal(t, "first", list[0].Blogs[1].Title)
	assert.Empty(t, list[0].PasswordHash)

	assert.Equal(t, "reader", list[1].Username)
	assert.Empty(t, list[1].Blogs)
}
