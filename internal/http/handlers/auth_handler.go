package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ed9408/minerva-api/internal/services"
	"github.com/ed9408/minerva-api/internal/utils"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*services.TokenResponse, error)
}

type AuthHandler struct {
	auth AuthService
}

// LoginRequest is form-encoded: the login endpoint follows the OAuth2
// password flow field names.
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
