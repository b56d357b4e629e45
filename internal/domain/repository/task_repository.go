package repository

import (
	"context"

	"github.com/leondli/centriq/internal/domain/entity"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task and attaches the given tags
	Create(ctx context.Context, task *entity.Task, tagIDs []uint) error

	// GetByID retrieves a task by ID whatever its active state, with its active tags
	GetByID(ctx context.Context, id uint) (*entity.Task, error)

	// GetActiveByID retrieves an active task by ID, with its active tags
	GetActiveByID(ctx context.Context, id uint) (*entity.Task, error)

	// List lists active tasks, or every task when includeInactive is set
	List(ctx context.Context, includeInactive bool) ([]entity.Task, error)

	// ListActiveTemplates lists active template tasks with their active tags
	ListActiveTemplates(ctx context.Context) ([]entity.Task, error)

	// ListActiveTemplatesByTag lists active template tasks suggested by a tag
	ListActiveTemplatesByTag(ctx context.Context, tagID uint) ([]entity.Task, error)

	// Update applies a partial update
	Update(ctx context.Context, id uint, update *entity.TaskUpdate) error

	// ReplaceTags replaces the task's tag set with exactly tagIDs
	ReplaceTags(ctx context.Context, id uint, tagIDs []uint) error
}
