package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/leondli/centriq/internal/usecase/call"
	"github.com/leondli/centriq/internal/usecase/task"
	"github.com/leondli/centriq/pkg/response"
)

// CallHandler handles call requests
type CallHandler struct {
	callUseCase call.UseCase
	taskUseCase task.UseCase
}

// NewCallHandler creates a new call handler
func NewCallHandler(callUseCase call.UseCase, taskUseCase task.UseCase) *CallHandler {
	return &CallHandler{
		callUseCase: callUseCase,
		taskUseCase: taskUseCase,
	}
}

// List godoc
// @Summary List recent calls
// @Tags calls
// @Produce json
// @Param days query int false "Trailing window in days" default(7)
// @Success 200 {array} entity.CallListItemResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/calls [get]
func (h *CallHandler) List(c *gin.Context) {
	days := h.callUseCase.DefaultDays()
	if d := c.Query("days"); d != "" {
		dInt, err := strconv.Atoi(d)
		if err != nil {
			response.BadRequest(c, "days must be an integer")
			return
		}
		days = dInt
	}

	calls, err := h.callUseCase.List(c.Request.Context(), days)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, calls)
}

// Create godoc
// @Summary Create a call
// @Tags calls
// @Accept json
// @Produce json
// @Param request body call.CreateInput true "Call input"
// @Success 201 {object} entity.CallResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/calls [post]
func (h *CallHandler) Create(c *gin.Context) {
	var input call.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.callUseCase.Create(c.Request.Context(), &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, result)
}

// GetByID godoc
// @Summary Get a call with its tags and tasks
// @Tags calls
// @Produce json
// @Param id path int true "Call ID"
// @Success 200 {object} entity.CallResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/calls/{id} [get]
func (h *CallHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "call")
	if !ok {
		return
	}

	result, err := h.callUseCase.GetDetails(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, result)
}

// Update godoc
// @Summary Update a call and optionally replace its tags
// @Tags calls
// @Accept json
// @Produce json
// @Param id path int true "Call ID"
// @Param request body call.UpdateInput true "Fields to change"
// @Success 200 {object} entity.CallResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/calls/{id} [patch]
func (h *CallHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "call")
	if !ok {
		return
	}

	var input call.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.callUseCase.UpdateWithTags(c.Request.Context(), id, &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, result)
}

// ListTasks godoc
// @Summary List the tasks of a call with their status
// @Tags calls
// @Produce json
// @Param id path int true "Call ID"
// @Success 200 {array} entity.CallTaskResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/calls/{id}/tasks [get]
func (h *CallHandler) ListTasks(c *gin.Context) {
	id, ok := parseID(c, "id", "call")
	if !ok {
		return
	}

	tasks, err := h.taskUseCase.ListForCall(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, tasks)
}
