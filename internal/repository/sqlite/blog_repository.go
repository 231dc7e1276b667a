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

const selectBlogs = `
SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, b.updated_at, u.username, u.name
FROM blogs b
LEFT JOIN users u ON u.id = b.user_id`

type BlogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) repository.BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	now := time.Now().UTC()
	blog.ID = uuid.NewString()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO blogs (id, title, author, url, likes, user_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		blog.ID,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		blog.UserID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}
	return nil
}

func (r *BlogRepository) Get(ctx context.Context, id string) (*domain.Blog, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, selectBlogs+`
WHERE b.id = ?`, id)
	return scanBlog(row)
}

func (r *BlogRepository) List(ctx context.Context) ([]domain.Blog, error) {
	rows, err := r.db.QueryContext(ctx, selectBlogs+`
ORDER BY b.created_at ASC, b.rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("query blogs: %w", err)
	}
	defer rows.Close()

	var blogs []domain.Blog
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}
	return blogs, rows.Err()
}

func (r *BlogRepository) Update(ctx context.Context, id string, update domain.BlogUpdate) (*domain.Blog, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	sets := []string{"updated_at=?"}
	args := []any{time.Now().UTC()}
	if update.Title != nil {
		sets = append(sets, "title=?")
		args = append(args, *update.Title)
	}
	if update.Author != nil {
		sets = append(sets, "author=?")
		args = append(args, *update.Author)
	}
	if update.URL != nil {
		sets = append(sets, "url=?")
		args = append(args, *update.URL)
	}
	if update.Likes != nil {
		sets = append(sets, "likes=?")
		args = append(args, *update.Likes)
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, `UPDATE blogs SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update blog rows: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("blog %s: %w", id, domain.ErrNotFound)
	}
	return r.Get(ctx, id)
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	// user_blogs rows go with the blog through ON DELETE CASCADE
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete blog rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("blog %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("blog id %q: %w", id, domain.ErrMalformedID)
	}
	return nil
}

func scanBlog(row interface {
	Scan(dest ...any) error
}) (*domain.Blog, error) {
	var (
		blog     domain.Blog
		username sql.NullString
		name     sql.NullString
	)
	if err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Author,
		&blog.URL,
		&blog.Likes,
		&blog.UserID,
		&blog.CreatedAt,
		&blog.UpdatedAt,
		&username,
		&name,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("blog: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scan blog: %w", err)
	}
	if username.Valid {
		blog.Owner = &domain.Owner{
			ID:       blog.UserID,
			Username: username.String,
			Name:     name.String,
		}
	}
	return &blog, nil
}
