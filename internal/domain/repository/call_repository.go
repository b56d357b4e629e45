package repository

import (
	"context"
	"time"

	"github.com/leondli/centriq/internal/domain/entity"
)

// CallRepository defines the interface for call data access
type CallRepository interface {
	// Create creates a new call and attaches the given tags
	Create(ctx context.Context, call *entity.Call, tagIDs []uint) error

	// GetByID retrieves a call with its active tags and active tasks
	GetByID(ctx context.Context, id uint) (*entity.Call, error)

	// Exists checks if a call exists
	Exists(ctx context.Context, id uint) (bool, error)

	// ListCreatedSince lists calls created at or after since, with their active tags
	ListCreatedSince(ctx context.Context, since time.Time) ([]entity.Call, error)

	// Update applies a partial update and always refreshes updated_at
	Update(ctx context.Context, id uint, update *entity.CallUpdate) error

	// ReplaceTags replaces the call's tag set with exactly tagIDs
	ReplaceTags(ctx context.Context, id uint, tagIDs []uint) error
}
