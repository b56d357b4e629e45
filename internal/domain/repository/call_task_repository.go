package repository

import (
	"context"

	"github.com/leondli/centriq/internal/domain/entity"
)

// CallTaskRepository defines the interface for the call/task join entity
type CallTaskRepository interface {
	// Create links a task to a call; an empty status defaults to open
	Create(ctx context.Context, link *entity.CallTaskLink) error

	// Exists checks if the pair is linked
	Exists(ctx context.Context, callID, taskID uint) (bool, error)

	// UpdateStatus changes the status of an existing link
	UpdateStatus(ctx context.Context, callID, taskID uint, status entity.TaskStatus) error

	// Delete removes a link; removing a missing link is not an error
	Delete(ctx context.Context, callID, taskID uint) error

	// DeleteByTask removes every link of a task
	DeleteByTask(ctx context.Context, taskID uint) error

	// ListByCall lists the active tasks of a call with their link status
	ListByCall(ctx context.Context, callID uint) ([]entity.CallTask, error)
}
