package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bloglist/internal/auth"
	"bloglist/internal/domain"
	"bloglist/internal/service"
	"bloglist/internal/storage"
)

const (
	tokenKey = "token"

	errSomethingWentWrong = "something went wrong..."
	errTokenMissing       = "token missing or invalid"
)

// Config carries the handler dependencies.
type Config struct {
	Blogs   service.BlogService
	Users   service.UserService
	Tokens  *auth.TokenManager
	Storage storage.Service
	Bucket  string
	// KeyPrefix is the object key prefix snapshots are written under.
	KeyPrefix string
	// OwnerUpdatesOnly restricts PUT /api/blogs/:id to the blog's owner.
	OwnerUpdatesOnly bool
	Logger           *logrus.Logger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	blogs            service.BlogService
	users            service.UserService
	tokens           *auth.TokenManager
	storage          storage.Service
	bucket           string
	keyPrefix        string
	ownerUpdatesOnly bool
	logger           *logrus.Logger
}

func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		blogs:            cfg.Blogs,
		users:            cfg.Users,
		tokens:           cfg.Tokens,
		storage:          cfg.Storage,
		bucket:           cfg.Bucket,
		keyPrefix:        cfg.KeyPrefix,
		ownerUpdatesOnly: cfg.OwnerUpdatesOnly,
		logger:           logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger), corsMiddleware(), tokenExtractor())

	api := router.Group("/api")
	{
		api.GET("/blogs", h.listBlogs)
		api.POST("/blogs", h.createBlog)
		api.GET("/blogs/:id", h.getBlog)
		api.PUT("/blogs/:id", h.updateBlog)
		api.DELETE("/blogs/:id", h.deleteBlog)

		api.GET("/users", h.listUsers)
		api.POST("/users", h.createUser)
		api.POST("/login", h.login)

		api.GET("/stats", h.stats)

		api.GET("/snapshots", h.listSnapshots)
		api.POST("/snapshots", h.createSnapshot)

		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown endpoint"})
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// tokenExtractor stores the bearer token, if any, for the handlers to verify.
func tokenExtractor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := auth.BearerToken(c.GetHeader("Authorization")); token != "" {
			c.Set(tokenKey, token)
		}
		c.Next()
	}
}

// requestLogger never logs bodies: they carry passwords and tokens.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}

// authenticate verifies the request token and writes a 401 when it does not hold.
func (h *Handler) authenticate(c *gin.Context) (*auth.Claims, bool) {
	claims, err := h.tokens.Verify(c.GetString(tokenKey))
	if err != nil {
		h.logger.WithError(err).Debug("rejected token")
		c.JSON(http.StatusUnauthorized, gin.H{"error": errTokenMissing})
		return nil, false
	}
	return claims, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	case errors.Is(err, domain.ErrMalformedID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformatted id"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "blog not found"})
	case errors.Is(err, service.ErrOwnershipMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrOwnershipMismatch.Error()})
	case errors.Is(err, service.ErrUnknownUser),
		errors.Is(err, auth.ErrTokenMissing),
		errors.Is(err, auth.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errTokenMissing})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidCredentials.Error()})
	default:
		h.logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": errSomethingWentWrong})
	}
}
