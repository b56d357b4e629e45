package repository

import (
	"context"

	"github.com/leondli/centriq/internal/domain/entity"
)

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// Create creates a new tag
	Create(ctx context.Context, tag *entity.Tag) error

	// GetByID retrieves a tag by ID whatever its active state
	GetByID(ctx context.Context, id uint) (*entity.Tag, error)

	// GetActiveByID retrieves an active tag by ID
	GetActiveByID(ctx context.Context, id uint) (*entity.Tag, error)

	// List lists active tags, or every tag when includeInactive is set
	List(ctx context.Context, includeInactive bool) ([]entity.Tag, error)

	// ListActiveByIDs returns the active subset of the given IDs
	ListActiveByIDs(ctx context.Context, ids []uint) ([]entity.Tag, error)

	// Update applies a partial update
	Update(ctx context.Context, id uint, update *entity.TagUpdate) error

	// ExistsByName checks if another tag already uses the name
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
}
