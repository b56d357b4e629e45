package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/leondli/centriq/internal/usecase/task"
	apperrors "github.com/leondli/centriq/pkg/errors"
	"github.com/leondli/centriq/pkg/response"
)

// TaskHandler handles task requests
type TaskHandler struct {
	taskUseCase task.UseCase
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskUseCase task.UseCase) *TaskHandler {
	return &TaskHandler{taskUseCase: taskUseCase}
}

// List godoc
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param include_inactive query bool false "Include deactivated tasks"
// @Success 200 {array} entity.TaskResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	includeInactive, ok := parseIncludeInactive(c)
	if !ok {
		return
	}

	tasks, err := h.taskUseCase.List(c.Request.Context(), includeInactive)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, tasks)
}

// Create godoc
// @Summary Create an ad-hoc task on a call
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body task.CreateAdHocInput true "Ad-hoc task input"
// @Success 201 {object} entity.CallTaskResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var input task.CreateAdHocInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	t, err := h.taskUseCase.CreateAdHoc(c.Request.Context(), &input)
	if err != nil {
		// The call is part of the payload, so a missing one is a bad request
		if apperrors.IsNotFound(err) {
			response.BadRequest(c, apperrors.GetAppError(err).Message)
			return
		}
		handleError(c, err)
		return
	}

	response.Created(c, t)
}

// Update godoc
// @Summary Update a task's status on a call
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body task.UpdateStatusInput true "Status input"
// @Success 200 {object} entity.CallTaskResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	var input task.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	t, err := h.taskUseCase.UpdateWithStatus(c.Request.Context(), id, &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, t)
}

// Delete godoc
// @Summary Deactivate a task and unlink it from every call
// @Tags tasks
// @Param id path int true "Task ID"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
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
