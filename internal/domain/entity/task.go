package entity

import (
	"time"
)

// TaskType represents the kind of task
type TaskType string

const (
	TaskTypeTemplate TaskType = "template"
	TaskTypeAdHoc    TaskType = "ad_hoc"
)

// TaskStatus is the progress of a task on a given call
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// Task represents a task entity
type Task struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Type      TaskType  `json:"type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations (not stored in the tasks table)
	Tags []Tag `json:"tags,omitempty"`
}

// IsTemplate checks if the task is a template task
func (t *Task) IsTemplate() bool {
	return t.Type == TaskTypeTemplate
}

// TaskUpdate holds the fields of a partial task update
type TaskUpdate struct {
	Name     *string
	IsActive *bool
}

// TaskResponse represents the task data returned to client
type TaskResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Type      TaskType  `json:"type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts Task to TaskResponse
func (t *Task) ToResponse() *TaskResponse {
	return &TaskResponse{
		ID:        t.ID,
		Name:      t.Name,
		Type:      t.Type,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// TemplateTaskResponse is a template task with its active suggested tags
type TemplateTaskResponse struct {
	TaskResponse
	Tags []TagResponse `json:"tags"`
}

// ToTemplateResponse converts Task to TemplateTaskResponse
func (t *Task) ToTemplateResponse() *TemplateTaskResponse {
	return &TemplateTaskResponse{
		TaskResponse: *t.ToResponse(),
		Tags:         TagsToResponse(t.Tags),
	}
}

// TasksToResponse converts tasks, keeping only active ones
func TasksToResponse(tasks []Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		if !tasks[i].IsActive {
			continue
		}
		responses = append(responses, *tasks[i].ToResponse())
	}
	return responses
}
