package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"bloglist/internal/domain"
	"bloglist/internal/service"
)

type blogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// bindOptionalJSON treats an empty body as an empty object.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformatted request body"})
		return false
	}
	return true
}

func (h *Handler) listBlogs(c *gin.Context) {
	blogs, err := h.blogs.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]BlogResponse, len(blogs))
	for i := range blogs {
		resp[i] = blogToResponse(blogs[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getBlog(c *gin.Context) {
	blog, err := h.blogs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogToResponse(*blog))
}

func (h *Handler) createBlog(c *gin.Context) {
	claims, ok := h.authenticate(c)
	if !ok {
		return
	}

	var req blogRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	blog, err := h.blogs.Create(c.Request.Context(), claims.UserID, service.BlogInput{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogToResponse(*blog))
}

func (h *Handler) updateBlog(c *gin.Context) {
	var actorID string
	if h.ownerUpdatesOnly {
		claims, ok := h.authenticate(c)
		if !ok {
			return
		}
		actorID = claims.UserID
	}

	var req blogRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	update := domain.BlogUpdate{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	}

	var (
		blog *domain.Blog
		err  error
	)
	if h.ownerUpdatesOnly {
		blog, err = h.blogs.UpdateOwned(c.Request.Context(), actorID, c.Param("id"), update)
	} else {
		blog, err = h.blogs.Update(c.Request.Context(), c.Param("id"), update)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogToResponse(*blog))
}

func (h *Handler) deleteBlog(c *gin.Context) {
	claims, ok := h.authenticate(c)
	if !ok {
		return
	}

	if err := h.blogs.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
