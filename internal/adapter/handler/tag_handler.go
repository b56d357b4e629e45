package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/leondli/centriq/internal/usecase/tag"
	"github.com/leondli/centriq/pkg/response"
)

// TagHandler handles tag requests
type TagHandler struct {
	tagUseCase tag.UseCase
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagUseCase tag.UseCase) *TagHandler {
	return &TagHandler{tagUseCase: tagUseCase}
}

// List godoc
// @Summary List tags
// @Tags tags
// @Produce json
// @Param include_inactive query bool false "Include deactivated tags"
// @Success 200 {array} entity.TagResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/tags [get]
func (h *TagHandler) List(c *gin.Context) {
	includeInactive, ok := parseIncludeInactive(c)
	if !ok {
		return
	}

	tags, err := h.tagUseCase.List(c.Request.Context(), includeInactive)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, tags)
}

// Create godoc
// @Summary Create a new tag
// @Tags tags
// @Accept json
// @Produce json
// @Param request body tag.CreateInput true "Tag input"
// @Success 201 {object} entity.TagResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	var input tag.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	t, err := h.tagUseCase.Create(c.Request.Context(), &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, t)
}

// GetByID godoc
// @Summary Get a tag, active or not
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} entity.TagResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/tags/{id} [get]
func (h *TagHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "tag")
	if !ok {
		return
	}

	t, err := h.tagUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, t)
}

// Update godoc
// @Summary Partially update a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param id path int true "Tag ID"
// @Param request body tag.UpdateInput true "Fields to change"
// @Success 200 {object} entity.TagResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/tags/{id} [patch]
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "tag")
	if !ok {
		return
	}

	var input tag.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	t, err := h.tagUseCase.Update(c.Request.Context(), id, &input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, t)
}

// Delete godoc
// @Summary Deactivate a tag
// @Tags tags
// @Param id path int true "Tag ID"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "tag")
	if !ok {
		return
	}

	if err := h.tagUseCase.Deactivate(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}

// GetSuggestedTasks godoc
// @Summary Get an active tag with its suggested template tasks
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} entity.TagWithSuggestedTasksResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/tags/{id}/suggested-tasks [get]
func (h *TagHandler) GetSuggestedTasks(c *gin.Context) {
	id, ok := parseID(c, "id", "tag")
	if !ok {
		return
	}

	t, err := h.tagUseCase.GetWithSuggestedTasks(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, t)
}
