package api

import (
	"errors"

	"github.com/rogtrack/rog-api/internal/http/response"
	"github.com/rogtrack/rog-api/internal/logger"
	"github.com/rogtrack/rog-api/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates and issues a token. Failures return a single generic
// message so callers cannot probe for valid usernames.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username and password are required")
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "authentication failed")
			return
		}
		logger.Errorw("api_login_failed", "username", req.Username, "error", err)
		response.Error(c, response.CodeInternal, "authentication failed")
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}
