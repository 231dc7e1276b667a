package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bloglist/internal/domain"
	"bloglist/internal/repository"
)

type blogDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Title     string             `bson:"title"`
	Author    string             `bson:"author"`
	URL       string             `bson:"url"`
	Likes     int                `bson:"likes"`
	User      primitive.ObjectID `bson:"user"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
	// Owner is filled by the $lookup stage and never stored.
	Owner []userDocument `bson:"owner,omitempty"`
}

func (d blogDocument) toDomain() domain.Blog {
	blog := domain.Blog{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Author:    d.Author,
		URL:       d.URL,
		Likes:     d.Likes,
		UserID:    d.User.Hex(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if len(d.Owner) > 0 {
		blog.Owner = &domain.Owner{
			ID:       d.Owner[0].ID.Hex(),
			Username: d.Owner[0].Username,
			Name:     d.Owner[0].Name,
		}
	}
	return blog
}

type BlogRepository struct {
	blogs *mongo.Collection
	users *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) repository.BlogRepository {
	return &BlogRepository{
		blogs: db.Collection(blogsCollection),
		users: db.Collection(usersCollection),
	}
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	uid, err := parseID("user", blog.UserID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	doc := blogDocument{
		ID:        primitive.NewObjectID(),
		Title:     blog.Title,
		Author:    blog.Author,
		URL:       blog.URL,
		Likes:     blog.Likes,
		User:      uid,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.blogs.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}

	blog.ID = doc.ID.Hex()
	blog.CreatedAt = now
	blog.UpdatedAt = now
	return nil
}

func (r *BlogRepository) Get(ctx context.Context, id string) (*domain.Blog, error) {
	oid, err := parseID("blog", id)
	if err != nil {
		return nil, err
	}
	blogs, err := r.aggregate(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	if len(blogs) == 0 {
		return nil, fmt.Errorf("blog %s: %w", id, domain.ErrNotFound)
	}
	return &blogs[0], nil
}

func (r *BlogRepository) List(ctx context.Context) ([]domain.Blog, error) {
	return r.aggregate(ctx, bson.M{})
}

func (r *BlogRepository) Update(ctx context.Context, id string, update domain.BlogUpdate) (*domain.Blog, error) {
	oid, err := parseID("blog", id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Author != nil {
		set["author"] = *update.Author
	}
	if update.URL != nil {
		set["url"] = *update.URL
	}
	if update.Likes != nil {
		set["likes"] = *update.Likes
	}

	res, err := r.blogs.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("blog %s: %w", id, domain.ErrNotFound)
	}
	return r.Get(ctx, id)
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID("blog", id)
	if err != nil {
		return err
	}

	var deleted blogDocument
	if err := r.blogs.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&deleted); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("blog %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("delete blog: %w", err)
	}

	if _, err := r.users.UpdateOne(ctx,
		bson.M{"_id": deleted.User},
		bson.M{"$pull": bson.M{"blogs": oid}},
	); err != nil {
		return fmt.Errorf("drop blog reference: %w", err)
	}
	return nil
}

func (r *BlogRepository) aggregate(ctx context.Context, match bson.M) ([]domain.Blog, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
	}

	cursor, err := r.blogs.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate blogs: %w", err)
	}
	var docs []blogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}

	blogs := make([]domain.Blog, len(docs))
	for i := range docs {
		blogs[i] = docs[i].toDomain()
	}
	return blogs, nil
}
