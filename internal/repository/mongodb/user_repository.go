package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bloglist/internal/domain"
	"bloglist/internal/repository"
)

type userDocument struct {
	ID           primitive.ObjectID   `bson:"_id"`
	Username     string               `bson:"username"`
	Name         string               `bson:"name"`
	PasswordHash string               `bson:"passwordHash"`
	Adult        bool                 `bson:"adult"`
	Blogs        []primitive.ObjectID `bson:"blogs"`
	CreatedAt    time.Time            `bson:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt"`
}

func (d userDocument) toDomain() domain.User {
	user := domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Adult:        d.Adult,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	for _, id := range d.Blogs {
		user.BlogIDs = append(user.BlogIDs, id.Hex())
	}
	return user
}

type UserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &UserRepository{users: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Username:     user.Username,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Adult:        user.Adult,
		Blogs:        []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert user %q: %w", user.Username, domain.ErrDuplicateUsername)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.ID = doc.ID.Hex()
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := parseID("user", id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.users.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]domain.User, len(docs))
	for i := range docs {
		users[i] = docs[i].toDomain()
	}
	return users, nil
}

func (r *UserRepository) AppendBlogReference(ctx context.Context, userID, blogID string) error {
	uid, err := parseID("user", userID)
	if err != nil {
		return err
	}
	bid, err := parseID("blog", blogID)
	if err != nil {
		return err
	}

	res, err := r.users.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{
			"$push": bson.M{"blogs": bid},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("append blog reference: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	user := doc.toDomain()
	return &user, nil
}
