package domain

import "time"

// Blog is a blog post owned by the user that created it.
type Blog struct {
	ID        string
	Title     string
	Author    string
	URL       string
	Likes     int
	UserID    string
	Owner     *Owner
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Owner is the public projection of the user a blog belongs to.
type Owner struct {
	ID       string
	Username string
	Name     string
}

// BlogUpdate carries a partial replacement; nil fields are left untouched.
type BlogUpdate struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
}

// Empty reports whether the update would not change anything.
func (u BlogUpdate) Empty() bool {
	return u.Title == nil && u.Author == nil && u.URL == nil && u.Likes == nil
}
