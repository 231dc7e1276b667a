package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bloglist/internal/stats"
)

func (h *Handler) stats(c *gin.Context) {
	blogs, err := h.blogs.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, statsToResponse(stats.Summarize(blogs)))
}
