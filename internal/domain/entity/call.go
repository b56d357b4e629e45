package entity

import (
	"time"

	"github.com/guregu/null/v5"
)

// Call represents a call entity
type Call struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Relations (not stored in the calls table)
	Tags  []Tag  `json:"tags,omitempty"`
	Tasks []Task `json:"tasks,omitempty"`
}

// CallUpdate holds the fields of a partial call update.
// An invalid Description leaves the column untouched; a valid empty one clears it.
type CallUpdate struct {
	Name        *string
	Description null.String
}

// CallListItemResponse is the call shape used by listings (no tasks)
type CallListItemResponse struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Description null.String   `json:"description"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Tags        []TagResponse `json:"tags"`
}

// CallResponse is the full call detail
type CallResponse struct {
	CallListItemResponse
	Tasks []TaskResponse `json:"tasks"`
}

// ToListItemResponse converts Call to CallListItemResponse
func (c *Call) ToListItemResponse() *CallListItemResponse {
	return &CallListItemResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Tags:        TagsToResponse(c.Tags),
	}
}

// ToResponse converts Call to CallResponse
func (c *Call) ToResponse() *CallResponse {
	return &CallResponse{
		CallListItemResponse: *c.ToListItemResponse(),
		Tasks:                TasksToResponse(c.Tasks),
	}
}
