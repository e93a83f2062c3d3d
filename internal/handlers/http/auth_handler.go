package http

import (
	"net/http"
	"strings"

	"castdeck/internal/core/services"
	"castdeck/pkg/errors"
	"castdeck/pkg/validation"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/auth")
	{
		api.POST("/token", h.IssueToken)
	}
}

type TokenRequest struct {
	ClientName string `json:"client_name" binding:"required,min=1,max=100"`
}

// IssueToken hands the panel UI a bearer token for the local API. There
// are no accounts; the client name only shows up in logs.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	req.ClientName = strings.TrimSpace(req.ClientName)
	if err := validation.ValidateNonEmptyString(req.ClientName, "client_name"); err != nil {
		c.Error(errors.NewInvalidInputError(err.Error()))
		return
	}

	token, err := h.authService.GenerateToken(req.ClientName)
	if err != nil {
		c.Error(errors.NewInternalError("failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
	})
}
