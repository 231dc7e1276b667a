// Package stats computes aggregate figures over a list of blogs.
package stats

import "bloglist/internal/domain"

// AuthorCount is the number of blogs written by one author.
type AuthorCount struct {
	Author string
	Blogs  int
}

// Summary bundles every statistic for one blog list.
type Summary struct {
	TotalLikes int
	Favorite   *domain.Blog
	MostBlogs  *AuthorCount
}

func Summarize(blogs []domain.Blog) Summary {
	summary := Summary{TotalLikes: TotalLikes(blogs)}
	if favorite, ok := FavoriteBlog(blogs); ok {
		summary.Favorite = &favorite
	}
	if most, ok := MostBlogs(blogs); ok {
		summary.MostBlogs = &most
	}
	return summary
}

func TotalLikes(blogs []domain.Blog) int {
	total := 0
	for _, blog := range blogs {
		total += blog.Likes
	}
	return total
}

// FavoriteBlog returns the first blog with the highest like count.
// Blogs without likes never qualify.
func FavoriteBlog(blogs []domain.Blog) (domain.Blog, bool) {
	var (
		favorite domain.Blog
		found    bool
		max      int
	)
	for _, blog := range blogs {
		if blog.Likes > max {
			favorite = blog
			max = blog.Likes
			found = true
		}
	}
	return favorite, found
}

// MostBlogs returns the author with the most blogs. On a tie the author that
// reached the count first, in list order, wins. Blogs without an author are ignored.
func MostBlogs(blogs []domain.Blog) (AuthorCount, bool) {
	counts := make(map[string]int)
	var order []string
	for _, blog := range blogs {
		if blog.Author == "" {
			continue
		}
		if _, seen := counts[blog.Author]; !seen {
			order = append(order, blog.Author)
		}
		counts[blog.Author]++
	}

	var (
		most  AuthorCount
		found bool
	)
	for _, author := range order {
		if counts[author] > most.Blogs {
			most = AuthorCount{Author: author, Blogs: counts[author]}
			found = true
		}
	}
	return most, found
}
