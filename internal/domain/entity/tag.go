package entity

import (
	"time"
)

// TagColor is the index of a tag's display color
type TagColor int

const (
	TagColorGray TagColor = iota
	TagColorBlue
	TagColorGreen
	TagColorOrange
	TagColorPurple
	TagColorCyan
	TagColorRed
)

// MaxTagColor is the highest valid color index
const MaxTagColor = TagColorRed

// IsValid reports whether the color index is known
func (c TagColor) IsValid() bool {
	return c >= TagColorGray && c <= MaxTagColor
}

// Tag represents a tag entity
type Tag struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	ColorID   TagColor  `json:"color_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagUpdate holds the fields of a partial tag update; nil fields are left untouched
type TagUpdate struct {
	Name     *string
	IsActive *bool
	ColorID  *TagColor
}

// IsEmpty reports whether the update carries no field
func (u *TagUpdate) IsEmpty() bool {
	return u.Name == nil && u.IsActive == nil && u.ColorID == nil
}

// TagResponse represents the tag data returned to client
type TagResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	ColorID   TagColor  `json:"color_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts Tag to TagResponse
func (t *Tag) ToResponse() *TagResponse {
	return &TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		IsActive:  t.IsActive,
		ColorID:   t.ColorID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// TagWithSuggestedTasksResponse is a tag together with the template tasks suggested for it
type TagWithSuggestedTasksResponse struct {
	TagResponse
	SuggestedTasks []TaskResponse `json:"suggested_tasks"`
}

// TagsToResponse converts tags, keeping only active ones.
// Nested tag collections never expose deactivated tags.
func TagsToResponse(tags []Tag) []TagResponse {
	responses := make([]TagResponse, 0, len(tags))
	for i := range tags {
		if !tags[i].IsActive {
			continue
		}
		responses = append(responses, *tags[i].ToResponse())
	}
	return responses
}
