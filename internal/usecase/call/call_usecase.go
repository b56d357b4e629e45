package call

import (
	"context"
	"time"

	"github.com/guregu/null/v5"
	"github.com/rs/zerolog"

	"github.com/leondli/centriq/internal/domain/entity"
	"github.com/leondli/centriq/internal/domain/repository"
	"github.com/leondli/centriq/internal/infrastructure/config"
	"github.com/leondli/centriq/internal/infrastructure/logger"
	apperrors "github.com/leondli/centriq/pkg/errors"
)

// UseCase defines the call use case interface
type UseCase interface {
	DefaultDays() int
	List(ctx context.Context, days int) ([]entity.CallListItemResponse, error)
	GetDetails(ctx context.Context, id uint) (*entity.CallResponse, error)
	Create(ctx context.Context, input *CreateInput) (*entity.CallResponse, error)
	UpdateWithTags(ctx context.Context, id uint, input *UpdateInput) (*entity.CallResponse, error)
}

// CreateInput represents call creation input
type CreateInput struct {
	Name        string      `json:"name" binding:"required,max=255"`
	Description null.String `json:"description"`
	TagIDs      []uint      `json:"tag_ids"`
}

// UpdateInput represents a call update.
// A non-nil TagIDs replaces the tag set, even when empty.
type UpdateInput struct {
	Name        *string     `json:"name" binding:"omitempty,min=1,max=255"`
	Description null.String `json:"description"`
	TagIDs      *[]uint     `json:"tag_ids"`
}

type callUseCase struct {
	callRepo   repository.CallRepository
	tagRepo    repository.TagRepository
	transactor repository.Transactor
	limits     func() config.CallsConfig
	now        func() time.Time
	log        zerolog.Logger
}

// NewUseCase creates a new call use case.
// limits is read on every listing so reloaded bounds apply immediately.
func NewUseCase(
	callRepo repository.CallRepository,
	tagRepo repository.TagRepository,
	transactor repository.Transactor,
	limits func() config.CallsConfig,
) UseCase {
	return &callUseCase{
		callRepo:   callRepo,
		tagRepo:    tagRepo,
		transactor: transactor,
		limits:     limits,
		now:        time.Now,
		log:        logger.NewLogger("call"),
	}
}

// DefaultDays returns the window used when a listing does not name one
func (u *callUseCase) DefaultDays() int {
	return u.limits().DefaultDays
}

// List returns the calls created in the last days days, newest first.
// A zero or negative days is rejected like any other out-of-range value.
func (u *callUseCase) List(ctx context.Context, days int) ([]entity.CallListItemResponse, error) {
	limits := u.limits()
	if days < limits.MinDays || days > limits.MaxDays {
		return nil, apperrors.InvalidDaysLimitError(days, limits.MinDays, limits.MaxDays)
	}

	since := u.now().UTC().AddDate(0, 0, -days)
	calls, err := u.callRepo.ListCreatedSince(ctx, since)
	if err != nil {
		return nil, apperrors.InternalError("failed to list calls", err)
	}

	responses := make([]entity.CallListItemResponse, len(calls))
	for i := range calls {
		responses[i] = *calls[i].ToListItemResponse()
	}
	return responses, nil
}

func (u *callUseCase) GetDetails(ctx context.Context, id uint) (*entity.CallResponse, error) {
	call, err := u.getCall(ctx, id)
	if err != nil {
		return nil, err
	}
	return call.ToResponse(), nil
}

func (u *callUseCase) Create(ctx context.Context, input *CreateInput) (*entity.CallResponse, error) {
	call := &entity.Call{
		Name:        input.Name,
		Description: normalizeDescription(input.Description),
	}

	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		tagIDs, err := u.activeTagIDs(ctx, input.TagIDs)
		if err != nil {
			return err
		}
		if err := u.callRepo.Create(ctx, call, tagIDs); err != nil {
			return apperrors.InternalError("failed to create call", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Uint("call_id", call.ID).Str("name", call.Name).Int("tags", len(call.Tags)).Msg("Call created")
	return call.ToResponse(), nil
}

func (u *callUseCase) UpdateWithTags(ctx context.Context, id uint, input *UpdateInput) (*entity.CallResponse, error) {
	var call *entity.Call
	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.getCall(ctx, id); err != nil {
			return err
		}

		if input.TagIDs != nil {
			tagIDs, err := u.activeTagIDs(ctx, *input.TagIDs)
			if err != nil {
				return err
			}
			if err := u.callRepo.ReplaceTags(ctx, id, tagIDs); err != nil {
				return apperrors.InternalError("failed to replace call tags", err)
			}
		}

		update := &entity.CallUpdate{
			Name:        input.Name,
			Description: input.Description,
		}
		if err := u.callRepo.Update(ctx, id, update); err != nil {
			if apperrors.IsNotFound(err) {
				return apperrors.NotFoundError("call")
			}
			return apperrors.InternalError("failed to update call", err)
		}

		var err error
		call, err = u.getCall(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Uint("call_id", id).Bool("tags_replaced", input.TagIDs != nil).Msg("Call updated")
	return call.ToResponse(), nil
}

func (u *callUseCase) getCall(ctx context.Context, id uint) (*entity.Call, error) {
	call, err := u.callRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("call")
		}
		return nil, apperrors.InternalError("failed to get call", err)
	}
	return call, nil
}

// activeTagIDs keeps the ids that name an active tag, dropping the rest
func (u *callUseCase) activeTagIDs(ctx context.Context, ids []uint) ([]uint, error) {
	tags, err := u.tagRepo.ListActiveByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.InternalError("failed to resolve tags", err)
	}
	active := make([]uint, len(tags))
	for i := range tags {
		active[i] = tags[i].ID
	}
	return active, nil
}

// normalizeDescription stores an empty description as null
func normalizeDescription(d null.String) null.String {
	if d.Valid && d.String == "" {
		return null.String{}
	}
	return d
}
