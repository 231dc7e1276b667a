package domain

import "time"

// User represents an account that can author blog posts.
type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string
	Adult        bool
	// BlogIDs lists the identities of the posts this user authored, oldest first.
	BlogIDs   []string
	Blogs     []Blog
	CreatedAt time.Time
	UpdatedAt time.Time
}
