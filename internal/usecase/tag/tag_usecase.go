package tag

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/leondli/centriq/internal/domain/entity"
	"github.com/leondli/centriq/internal/domain/repository"
	"github.com/leondli/centriq/internal/infrastructure/logger"
	apperrors "github.com/leondli/centriq/pkg/errors"
)

// UseCase defines the tag use case interface
type UseCase interface {
	Create(ctx context.Context, input *CreateInput) (*entity.TagResponse, error)
	GetByID(ctx context.Context, id uint) (*entity.TagResponse, error)
	List(ctx context.Context, includeInactive bool) ([]entity.TagResponse, error)
	Update(ctx context.Context, id uint, input *UpdateInput) (*entity.TagResponse, error)
	Deactivate(ctx context.Context, id uint) error
	GetWithSuggestedTasks(ctx context.Context, id uint) (*entity.TagWithSuggestedTasksResponse, error)
}

// CreateInput represents tag creation input
type CreateInput struct {
	Name    string          `json:"name" binding:"required,max=100"`
	ColorID entity.TagColor `json:"color_id" binding:"min=0,max=6"`
}

// UpdateInput represents a partial tag update
type UpdateInput struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=100"`
	IsActive *bool            `json:"is_active"`
	ColorID  *entity.TagColor `json:"color_id" binding:"omitempty,min=0,max=6"`
}

type tagUseCase struct {
	tagRepo  repository.TagRepository
	taskRepo repository.TaskRepository
	log      zerolog.Logger
}

// NewUseCase creates a new tag use case
func NewUseCase(
	tagRepo repository.TagRepository,
	taskRepo repository.TaskRepository,
) UseCase {
	return &tagUseCase{
		tagRepo:  tagRepo,
		taskRepo: taskRepo,
		log:      logger.NewLogger("tag"),
	}
}

func (u *tagUseCase) Create(ctx context.Context, input *CreateInput) (*entity.TagResponse, error) {
	exists, err := u.tagRepo.ExistsByName(ctx, input.Name, 0)
	if err != nil {
		return nil, apperrors.InternalError("failed to check tag", err)
	}
	if exists {
		return nil, apperrors.AlreadyExistsError("tag with this name")
	}

	tag := &entity.Tag{
		Name:    input.Name,
		ColorID: input.ColorID,
	}

	if err := u.tagRepo.Create(ctx, tag); err != nil {
		if apperrors.IsAlreadyExists(err) {
			return nil, apperrors.AlreadyExistsError("tag with this name")
		}
		return nil, apperrors.InternalError("failed to create tag", err)
	}

	u.log.Info().Uint("tag_id", tag.ID).Str("name", tag.Name).Msg("Tag created")
	return tag.ToResponse(), nil
}

func (u *tagUseCase) GetByID(ctx context.Context, id uint) (*entity.TagResponse, error) {
	tag, err := u.tagRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("tag")
		}
		return nil, apperrors.InternalError("failed to get tag", err)
	}
	return tag.ToResponse(), nil
}

func (u *tagUseCase) List(ctx context.Context, includeInactive bool) ([]entity.TagResponse, error) {
	tags, err := u.tagRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, apperrors.InternalError("failed to list tags", err)
	}

	responses := make([]entity.TagResponse, len(tags))
	for i := range tags {
		responses[i] = *tags[i].ToResponse()
	}

	return responses, nil
}

func (u *tagUseCase) Update(ctx context.Context, id uint, input *UpdateInput) (*entity.TagResponse, error) {
	return u.update(ctx, id, &entity.TagUpdate{
		Name:     input.Name,
		IsActive: input.IsActive,
		ColorID:  input.ColorID,
	})
}

func (u *tagUseCase) Deactivate(ctx context.Context, id uint) error {
	inactive := false
	if _, err := u.update(ctx, id, &entity.TagUpdate{IsActive: &inactive}); err != nil {
		return err
	}

	u.log.Info().Uint("tag_id", id).Msg("Tag deactivated")
	return nil
}

func (u *tagUseCase) update(ctx context.Context, id uint, update *entity.TagUpdate) (*entity.TagResponse, error) {
	if _, err := u.tagRepo.GetByID(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("tag")
		}
		return nil, apperrors.InternalError("failed to get tag", err)
	}

	if update.Name != nil {
		exists, err := u.tagRepo.ExistsByName(ctx, *update.Name, id)
		if err != nil {
			return nil, apperrors.InternalError("failed to check tag", err)
		}
		if exists {
			return nil, apperrors.AlreadyExistsError("tag with this name")
		}
	}

	if err := u.tagRepo.Update(ctx, id, update); err != nil {
		switch {
		case apperrors.IsNotFound(err):
			return nil, apperrors.NotFoundError("tag")
		case apperrors.IsAlreadyExists(err):
			return nil, apperrors.AlreadyExistsError("tag with this name")
		}
		return nil, apperrors.InternalError("failed to update tag", err)
	}

	tag, err := u.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.InternalError("failed to get tag", err)
	}
	return tag.ToResponse(), nil
}

func (u *tagUseCase) GetWithSuggestedTasks(ctx context.Context, id uint) (*entity.TagWithSuggestedTasksResponse, error) {
	tag, err := u.tagRepo.GetActiveByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("tag")
		}
		return nil, apperrors.InternalError("failed to get tag", err)
	}

	tasks, err := u.taskRepo.ListActiveTemplatesByTag(ctx, id)
	if err != nil {
		return nil, apperrors.InternalError("failed to list suggested tasks", err)
	}

	return &entity.TagWithSuggestedTasksResponse{
		TagResponse:    *tag.ToResponse(),
		SuggestedTasks: entity.TasksToResponse(tasks),
	}, nil
}
