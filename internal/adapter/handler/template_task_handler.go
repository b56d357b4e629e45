package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leondli/centriq/internal/usecase/task"
	"github.com/leondli/centriq/pkg/response"
)

// TemplateTaskHandler handles template task requests
type TemplateTaskHandler struct {
	taskUseCase task.UseCase
}

// NewTemplateTaskHandler creates a new template task handler
func NewTemplateTaskHandler(taskUseCase task.UseCase) *TemplateTaskHandler {
	return &TemplateTaskHandler{taskUseCase: taskUseCase}
}

// List godoc
// @Summary List active template tasks
// @Tags template-tasks
// @Produce json
// @Success 200 {array} entity.TemplateTaskResponse
// @Router /api/v1/tasks/template/list [get]
func (h *TemplateTaskHandler) List(c *gin.Context) {
	tasks, err := h.taskUseCase.ListTemplates(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, tasks)
}

// GetByID godoc
// @Summary Get a template task
// @Tags template-tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} entity.TemplateTaskResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/tasks/template/{id} [get]
func (h *TemplateTaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	t, err := h.taskUseCase.GetTemplate(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, t)
}

// Create godoc
// @Summary Create a template task
// @Tags template-tasks
// @Accept json
// @Produce json
// @Param request body task.CreateTemplateInput true "Template task input"
// @Success 201 {object} entity.TemplateTaskResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/tasks/template [post]
func (h *TemplateTaskHandler) Create(c *gin.Context) {
	var input task.CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	t, err := h.taskUseCase.CreateTemplate(c.Request.Context(), &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, t)
}

// Update godoc
// @Summary Update a template task and its tags
// @Tags template-tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body task.UpdateTemplateInput true "Fields to change"
// @Success 200 {object} entity.TemplateTaskResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/tasks/template/{id} [patch]
func (h *TemplateTaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	var input task.UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	t, err := h.taskUseCase.UpdateTemplate(c.Request.Context(), id, &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, t)
}

// Link godoc
// @Summary Link a template task to a call
// @Tags template-tasks
// @Produce json
// @Param id path int true "Task ID"
// @Param call_id query int true "Call ID"
// @Success 200 {object} entity.CallTaskResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/tasks/template/{id}/link [post]
func (h *TemplateTaskHandler) Link(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}
	callID, ok := parseCallIDQuery(c)
	if !ok {
		return
	}

	t, err := h.taskUseCase.LinkTemplateToCall(c.Request.Context(), id, callID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, t)
}

// Unlink godoc
// @Summary Unlink a template task from a call
// @Tags template-tasks
// @Param id path int true "Task ID"
// @Param call_id query int true "Call ID"
// @Success 200
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/tasks/template/{id}/unlink [post]
func (h *TemplateTaskHandler) Unlink(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}
	callID, ok := parseCallIDQuery(c)
	if !ok {
		return
	}

	if err := h.taskUseCase.UnlinkFromCall(c.Request.Context(), id, callID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// Delete godoc
// @Summary Deactivate a template task and unlink it from every call
// @Tags template-tasks
// @Param id path int true "Task ID"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/tasks/template/{id} [delete]
func (h *TemplateTaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	if err := h.taskUseCase.Deactivate(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}
