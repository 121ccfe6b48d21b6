package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ed9408/minerva-api/internal/http/middleware"
	"github.com/ed9408/minerva-api/internal/models"
	"github.com/ed9408/minerva-api/internal/repo"
	"github.com/ed9408/minerva-api/internal/utils"
)

type TaskService interface {
	Create(ctx context.Context, ownerID int64, title string, description *string) (*models.Task, error)
	List(ctx context.Context, ownerID int64) ([]models.Task, error)
	Get(ctx context.Context, ownerID, taskID int64) (*models.Task, error)
	Update(ctx context.Context, ownerID, taskID int64, update repo.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, ownerID, taskID int64) error
}

type TaskHandler struct {
	tasks TaskService
}

// TaskCreateRequest deliberately has no owner field; the owner is always the
// authenticated principal.
type TaskCreateRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

type TaskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	UserID      int64   `json:"user_id"`
}

func NewTaskHandler(tasks TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.ErrInvalidCredentials())
		return
	}

	var req TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), user.ID, req.Title, req.Description)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondCreated(c, taskToResponse(task))
}

func (h *TaskHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.ErrInvalidCredentials())
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), user.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	data := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		data = append(data, taskToResponse(&tasks[i]))
	}

	utils.RespondOK(c, data)
}

func (h *TaskHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.ErrInvalidCredentials())
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, taskToResponse(task))
}

func (h *TaskHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.ErrInvalidCredentials())
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), user.ID, id, repo.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, taskToResponse(task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.ErrInvalidCredentials())
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), user.ID, id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondNoContent(c)
}

func taskToResponse(task *models.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		UserID:      task.UserID,
	}
}
