package http

import (
	"time"

	"bloglist/internal/domain"
	"bloglist/internal/stats"
	"bloglist/internal/storage"
)

type OwnerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type BlogResponse struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Author string         `json:"author"`
	URL    string         `json:"url"`
	Likes  int            `json:"likes"`
	User   *OwnerResponse `json:"user,omitempty"`
}

// UserBlogResponse is a blog as listed under its owner.
type UserBlogResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

type UserResponse struct {
	ID       string             `json:"id"`
	Username string             `json:"username"`
	Name     string             `json:"name"`
	Adult    bool               `json:"adult"`
	Blogs    []UserBlogResponse `json:"blogs"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type FavoriteBlogResponse struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type AuthorResponse struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type StatsResponse struct {
	TotalLikes   int                   `json:"totalLikes"`
	FavoriteBlog *FavoriteBlogResponse `json:"favoriteBlog"`
	MostBlogs    *AuthorResponse       `json:"mostBlogs"`
}

type SnapshotResponse struct {
	Location string `json:"location"`
	Key      string `json:"key"`
	URL      string `json:"url,omitempty"`
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func blogToResponse(blog domain.Blog) BlogResponse {
	resp := BlogResponse{
		ID:     blog.ID,
		Title:  blog.Title,
		Author: blog.Author,
		URL:    blog.URL,
		Likes:  blog.Likes,
	}
	if blog.Owner != nil {
		resp.User = &OwnerResponse{
			ID:       blog.Owner.ID,
			Username: blog.Owner.Username,
			Name:     blog.Owner.Name,
		}
	}
	return resp
}

func userToResponse(user domain.User) UserResponse {
	resp := UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Adult:    user.Adult,
		Blogs:    make([]UserBlogResponse, len(user.Blogs)),
	}
	for i, blog := range user.Blogs {
		resp.Blogs[i] = UserBlogResponse{
			ID:     blog.ID,
			Title:  blog.Title,
			Author: blog.Author,
			URL:    blog.URL,
			Likes:  blog.Likes,
		}
	}
	return resp
}

func statsToResponse(summary stats.Summary) StatsResponse {
	resp := StatsResponse{TotalLikes: summary.TotalLikes}
	if summary.Favorite != nil {
		resp.FavoriteBlog = &FavoriteBlogResponse{
			Title:  summary.Favorite.Title,
			Author: summary.Favorite.Author,
			Likes:  summary.Favorite.Likes,
		}
	}
	if summary.MostBlogs != nil {
		resp.MostBlogs = &AuthorResponse{
			Author: summary.MostBlogs.Author,
			Blogs:  summary.MostBlogs.Blogs,
		}
	}
	return resp
}

func objectToResponse(obj storage.ObjectInfo) StorageObjectResponse {
	resp := StorageObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}
