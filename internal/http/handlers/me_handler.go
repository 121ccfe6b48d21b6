package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ed9408/minerva-api/internal/http/middleware"
	"github.com/ed9408/minerva-api/internal/services"
	"github.com/ed9408/minerva-api/internal/utils"
)

// MeHandler serves the current-user routes. The principal comes from the
// authentication middleware, never from the request.
type MeHandler struct {
	users UserService
}

func NewMeHandler(users UserService) *MeHandler {
	return &MeHandler{users: users}
}

func (h *MeHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.ErrInvalidCredentials())
		return
	}

	utils.RespondOK(c, userToResponse(user))
}

func (h *MeHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.ErrInvalidCredentials())
		return
	}

	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.users.Update(c.Request.Context(), user.ID, services.UserUpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, userToResponse(updated))
}

func (h *MeHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.ErrInvalidCredentials())
		return
	}

	if err := h.users.Delete(c.Request.Context(), user.ID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondNoContent(c)
}
