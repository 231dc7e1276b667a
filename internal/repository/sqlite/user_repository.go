package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bloglist/internal/domain"
	"bloglist/internal/repository"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, username, name, password_hash, adult, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.Name,
		user.PasswordHash,
		user.Adult,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("insert user %q: %w", user.Username, domain.ErrDuplicateUsername)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("user id %q: %w", id, domain.ErrMalformedID)
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, name, password_hash, adult, created_at, updated_at
FROM users
WHERE id = ?`,
		id,
	)
	return r.loadUser(ctx, row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, name, password_hash, adult, created_at, updated_at
FROM users
WHERE username = ?`,
		username,
	)
	return r.loadUser(ctx, row)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, username, name, password_hash, adult, created_at, updated_at
FROM users
ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	refs, err := r.blogReferences(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].BlogIDs = refs[users[i].ID]
	}
	return users, nil
}

func (r *UserRepository) AppendBlogReference(ctx context.Context, userID, blogID string) error {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO user_blogs (user_id, blog_id)
SELECT id, ? FROM users WHERE id = ?`,
		blogID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("append blog reference: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("append blog reference rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE users SET updated_at=? WHERE id=?`, time.Now().UTC(), userID); err != nil {
		return fmt.Errorf("touch user: %w", err)
	}
	return nil
}

func (r *UserRepository) loadUser(ctx context.Context, row *sql.Row) (*domain.User, error) {
	user, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	refs, err := r.blogReferences(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.BlogIDs = refs[user.ID]
	return user, nil
}

// blogReferences returns blog ids per user in append order; an empty userID loads every user.
func (r *UserRepository) blogReferences(ctx context.Context, userID string) (map[string][]string, error) {
	query := `SELECT user_id, blog_id FROM user_blogs ORDER BY seq ASC`
	var args []any
	if userID != "" {
		query = `SELECT user_id, blog_id FROM user_blogs WHERE user_id = ? ORDER BY seq ASC`
		args = append(args, userID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query blog references: %w", err)
	}
	defer rows.Close()

	refs := make(map[string][]string)
	for rows.Next() {
		var owner, blogID string
		if err := rows.Scan(&owner, &blogID); err != nil {
			return nil, fmt.Errorf("scan blog reference: %w", err)
		}
		refs[owner] = append(refs[owner], blogID)
	}
	return refs, rows.Err()
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.PasswordHash,
		&user.Adult,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
