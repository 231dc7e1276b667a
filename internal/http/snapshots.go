package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bloglist/internal/storage"
)

const snapshotURLExpiry = 15 * time.Minute

func (h *Handler) storageConfigured(c *gin.Context) bool {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service not configured"})
		return false
	}
	return true
}

func (h *Handler) listSnapshots(c *gin.Context) {
	if !h.storageConfigured(c) {
		return
	}

	objects, err := h.storage.ListObjects(c.Request.Context(), h.bucket, storage.SnapshotPrefix(h.keyPrefix))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]StorageObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, resp)
}

// createSnapshot uploads the current blog list, shaped as GET /api/blogs returns it.
func (h *Handler) createSnapshot(c *gin.Context) {
	if !h.storageConfigured(c) {
		return
	}
	claims, ok := h.authenticate(c)
	if !ok {
		return
	}

	blogs, err := h.blogs.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	shaped := make([]BlogResponse, len(blogs))
	for i := range blogs {
		shaped[i] = blogToResponse(blogs[i])
	}
	body, err := json.Marshal(shaped)
	if err != nil {
		h.respondError(c, fmt.Errorf("encode snapshot: %w", err))
		return
	}

	key := storage.SnapshotKey(h.keyPrefix, time.Now())
	location, err := h.storage.Upload(c.Request.Context(), bytes.NewReader(body), storage.UploadOptions{
		Bucket:      h.bucket,
		Key:         key,
		ContentType: "application/json",
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.WithField("user", claims.UserID).Infof("stored snapshot of %d blogs at %s", len(blogs), location)

	resp := SnapshotResponse{Location: location, Key: key}
	url, err := h.storage.GetObjectURL(c.Request.Context(), h.bucket, key, snapshotURLExpiry)
	if err != nil {
		h.logger.WithError(err).Warn("presign snapshot url")
	} else {
		resp.URL = url
	}
	c.JSON(http.StatusOK, resp)
}
