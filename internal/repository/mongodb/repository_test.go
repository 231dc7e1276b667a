package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bloglist/internal/domain"
)

func TestBlogDocument_ToDomainResolvesOwner(t *testing.T) {
	userID := primitive.NewObjectID()
	doc := blogDocument{
		ID:    primitive.NewObjectID(),
		Title: "Canonical string reduction",
		URL:   "http://www.cs.utexas.edu/~EWD/transcriptions/EWD08xx/EWD808.html",
		Likes: 12,
		User:  userID,
		Owner: []userDocument{{ID: userID, Username: "root", Name: "Superuser"}},
	}

	blog := doc.toDomain()
	assert.Equal(t, doc.ID.Hex(), blog.ID)
	assert.Equal(t, userID.Hex(), blog.UserID)
	assert.Equal(t, 12, blog.Likes)
	require.NotNil(t, blog.Owner)
	assert.Equal(t, "root", blog.Owner.Username)
	assert.Equal(t, "Superuser", blog.Owner.Name)
}

func TestBlogDocument_ToDomainWithoutOwner(t *testing.T) {
	blog := blogDocument{ID: primitive.NewObjectID(), User: primitive.NewObjectID()}.toDomain()
	assert.Nil(t, blog.Owner)
}

func TestUserDocument_ToDomainKeepsBlogOrder(t *testing.T) {
	first, second := primitive.NewObjectID(), primitive.NewObjectID()
	user := userDocument{ID: primitive.NewObjectID(), Username: "u", Blogs: []primitive.ObjectID{first, second}}.toDomain()
	assert.Equal(t, []string{first.Hex(), second.Hex()}, user.BlogIDs)
}

// Identifier checks run before any collection is touched.
func TestRepositories_MalformedIDs(t *testing.T) {
	ctx := context.Background()
	users := &UserRepository{}
	blogs := &BlogRepository{}

	_, err := users.GetByID(ctx, "5a3d5da59070081a82a3445")
	require.ErrorIs(t, err, domain.ErrMalformedID)

	err = users.AppendBlogReference(ctx, "bad", primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, domain.ErrMalformedID)

	_, err = blogs.Get(ctx, "bad")
	require.ErrorIs(t, err, domain.ErrMalformedID)

	_, err = blogs.Update(ctx, "bad", domain.BlogUpdate{})
	require.ErrorIs(t, err, domain.ErrMalformedID)

	require.ErrorIs(t, blogs.Delete(ctx, "bad"), domain.ErrMalformedID)

	err = blogs.Create(ctx, &domain.Blog{Title: "t", URL: "u", UserID: "bad"})
	require.ErrorIs(t, err, domain.ErrMalformedID)
}
