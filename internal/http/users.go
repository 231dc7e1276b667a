package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bloglist/internal/service"
)

type createUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Adult    *bool  `json:"adult"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
		Adult:    req.Adult,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	})
}
