package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shiptix/internal/http/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	name := req.Username
	if name == "" {
		name = req.Email
	}

	token, user, err := h.auth(middleware.GetRequestID(c)).Login(c.Request.Context(), name, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GET /api/auth/me
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}
