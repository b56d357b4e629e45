package task

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/leondli/centriq/internal/domain/entity"
	"github.com/leondli/centriq/internal/domain/repository"
	"github.com/leondli/centriq/internal/infrastructure/logger"
	apperrors "github.com/leondli/centriq/pkg/errors"
)

// UseCase defines the task use case interface
type UseCase interface {
	List(ctx context.Context, includeInactive bool) ([]entity.TaskResponse, error)
	ListTemplates(ctx context.Context) ([]entity.TemplateTaskResponse, error)
	GetTemplate(ctx context.Context, id uint) (*entity.TemplateTaskResponse, error)
	CreateTemplate(ctx context.Context, input *CreateTemplateInput) (*entity.TemplateTaskResponse, error)
	CreateAdHoc(ctx context.Context, input *CreateAdHocInput) (*entity.CallTaskResponse, error)
	Update(ctx context.Context, id uint, input *UpdateInput) (*entity.TaskResponse, error)
	UpdateWithStatus(ctx context.Context, id uint, input *UpdateStatusInput) (*entity.CallTaskResponse, error)
	UpdateTemplate(ctx context.Context, id uint, input *UpdateTemplateInput) (*entity.TemplateTaskResponse, error)
	LinkTemplateToCall(ctx context.Context, id, callID uint) (*entity.CallTaskResponse, error)
	UnlinkFromCall(ctx context.Context, id, callID uint) error
	Deactivate(ctx context.Context, id uint) error
	ListForCall(ctx context.Context, callID uint) ([]entity.CallTaskResponse, error)
}

// CreateTemplateInput represents template task creation input
type CreateTemplateInput struct {
	Name   string `json:"name" binding:"required,max=255"`
	TagIDs []uint `json:"tag_ids"`
}

// CreateAdHocInput represents ad-hoc task creation input
type CreateAdHocInput struct {
	Name   string            `json:"name" binding:"required,max=255"`
	CallID uint              `json:"call_id" binding:"required"`
	Status entity.TaskStatus `json:"status" binding:"omitempty,task_status"`
}

// UpdateInput represents a partial task update
type UpdateInput struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	IsActive *bool   `json:"is_active"`
}

// UpdateStatusInput changes a task's status on one call, optionally renaming it
type UpdateStatusInput struct {
	Name   *string           `json:"name" binding:"omitempty,min=1,max=255"`
	CallID uint              `json:"call_id" binding:"required"`
	Status entity.TaskStatus `json:"status" binding:"required,task_status"`
}

// UpdateTemplateInput represents a template task update.
// A non-nil TagIDs replaces the tag set, even when empty.
type UpdateTemplateInput struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=255"`
	TagIDs *[]uint `json:"tag_ids"`
}

type taskUseCase struct {
	taskRepo     repository.TaskRepository
	tagRepo      repository.TagRepository
	callRepo     repository.CallRepository
	callTaskRepo repository.CallTaskRepository
	transactor   repository.Transactor
	log          zerolog.Logger
}

// NewUseCase creates a new task use case
func NewUseCase(
	taskRepo repository.TaskRepository,
	tagRepo repository.TagRepository,
	callRepo repository.CallRepository,
	callTaskRepo repository.CallTaskRepository,
	transactor repository.Transactor,
) UseCase {
	return &taskUseCase{
		taskRepo:     taskRepo,
		tagRepo:      tagRepo,
		callRepo:     callRepo,
		callTaskRepo: callTaskRepo,
		transactor:   transactor,
		log:          logger.NewLogger("task"),
	}
}

func (u *taskUseCase) List(ctx context.Context, includeInactive bool) ([]entity.TaskResponse, error) {
	tasks, err := u.taskRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, apperrors.InternalError("failed to list tasks", err)
	}

	responses := make([]entity.TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *tasks[i].ToResponse()
	}
	return responses, nil
}

func (u *taskUseCase) ListTemplates(ctx context.Context) ([]entity.TemplateTaskResponse, error) {
	tasks, err := u.taskRepo.ListActiveTemplates(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to list template tasks", err)
	}

	responses := make([]entity.TemplateTaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *tasks[i].ToTemplateResponse()
	}
	return responses, nil
}

func (u *taskUseCase) GetTemplate(ctx context.Context, id uint) (*entity.TemplateTaskResponse, error) {
	task, err := u.getTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	return task.ToTemplateResponse(), nil
}

func (u *taskUseCase) CreateTemplate(ctx context.Context, input *CreateTemplateInput) (*entity.TemplateTaskResponse, error) {
	task := &entity.Task{
		Name: input.Name,
		Type: entity.TaskTypeTemplate,
	}

	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		tagIDs, err := u.activeTagIDs(ctx, input.TagIDs)
		if err != nil {
			return err
		}
		if err := u.taskRepo.Create(ctx, task, tagIDs); err != nil {
			return apperrors.InternalError("failed to create template task", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Uint("task_id", task.ID).Str("name", task.Name).Int("tags", len(task.Tags)).Msg("Template task created")
	return task.ToTemplateResponse(), nil
}

func (u *taskUseCase) CreateAdHoc(ctx context.Context, input *CreateAdHocInput) (*entity.CallTaskResponse, error) {
	status := input.Status
	if status == "" {
		status = entity.TaskStatusOpen
	}

	task := &entity.Task{
		Name: input.Name,
		Type: entity.TaskTypeAdHoc,
	}

	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.ensureCall(ctx, input.CallID); err != nil {
			return err
		}
		if err := u.taskRepo.Create(ctx, task, nil); err != nil {
			return apperrors.InternalError("failed to create task", err)
		}
		link := &entity.CallTaskLink{CallID: input.CallID, TaskID: task.ID, Status: status}
		if err := u.callTaskRepo.Create(ctx, link); err != nil {
			return apperrors.InternalError("failed to link task to call", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Uint("task_id", task.ID).Uint("call_id", input.CallID).Str("status", string(status)).Msg("Ad-hoc task created")

	callTask := &entity.CallTask{Task: *task, CallID: input.CallID, Status: status}
	return callTask.ToResponse(), nil
}

func (u *taskUseCase) Update(ctx context.Context, id uint, input *UpdateInput) (*entity.TaskResponse, error) {
	var task *entity.Task
	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.update(ctx, id, &entity.TaskUpdate{Name: input.Name, IsActive: input.IsActive}); err != nil {
			return err
		}
		var err error
		task, err = u.getTask(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task.ToResponse(), nil
}

func (u *taskUseCase) UpdateWithStatus(ctx context.Context, id uint, input *UpdateStatusInput) (*entity.CallTaskResponse, error) {
	var task *entity.Task
	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.getTask(ctx, id); err != nil {
			return err
		}

		if err := u.callTaskRepo.UpdateStatus(ctx, input.CallID, id, input.Status); err != nil {
			if apperrors.IsNotFound(err) {
				return apperrors.NotFoundError("task on this call")
			}
			return apperrors.InternalError("failed to update task status", err)
		}

		if input.Name != nil {
			if err := u.update(ctx, id, &entity.TaskUpdate{Name: input.Name}); err != nil {
				return err
			}
		}

		var err error
		task, err = u.getTask(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Uint("task_id", id).Uint("call_id", input.CallID).Str("status", string(input.Status)).Msg("Task status updated")

	callTask := &entity.CallTask{Task: *task, CallID: input.CallID, Status: input.Status}
	return callTask.ToResponse(), nil
}

func (u *taskUseCase) UpdateTemplate(ctx context.Context, id uint, input *UpdateTemplateInput) (*entity.TemplateTaskResponse, error) {
	var task *entity.Task
	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.getTemplate(ctx, id); err != nil {
			return err
		}

		if input.TagIDs != nil {
			tagIDs, err := u.activeTagIDs(ctx, *input.TagIDs)
			if err != nil {
				return err
			}
			if err := u.taskRepo.ReplaceTags(ctx, id, tagIDs); err != nil {
				return apperrors.InternalError("failed to replace task tags", err)
			}
		}

		if err := u.update(ctx, id, &entity.TaskUpdate{Name: input.Name}); err != nil {
			return err
		}

		var err error
		task, err = u.getTask(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Uint("task_id", id).Msg("Template task updated")
	return task.ToTemplateResponse(), nil
}

func (u *taskUseCase) LinkTemplateToCall(ctx context.Context, id, callID uint) (*entity.CallTaskResponse, error) {
	var callTask *entity.CallTask
	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		task, err := u.getActiveTemplate(ctx, id)
		if err != nil {
			return err
		}
		if err := u.ensureCall(ctx, callID); err != nil {
			return err
		}

		linked, err := u.callTaskRepo.Exists(ctx, callID, id)
		if err != nil {
			return apperrors.InternalError("failed to check call task", err)
		}
		if linked {
			return apperrors.AlreadyExistsError("task on this call")
		}

		link := &entity.CallTaskLink{CallID: callID, TaskID: id}
		if err := u.callTaskRepo.Create(ctx, link); err != nil {
			if apperrors.IsAlreadyExists(err) {
				return apperrors.AlreadyExistsError("task on this call")
			}
			return apperrors.InternalError("failed to link task to call", err)
		}

		callTask = &entity.CallTask{Task: *task, CallID: callID, Status: link.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Uint("task_id", id).Uint("call_id", callID).Msg("Template task linked to call")
	return callTask.ToResponse(), nil
}

func (u *taskUseCase) UnlinkFromCall(ctx context.Context, id, callID uint) error {
	if _, err := u.getActiveTemplate(ctx, id); err != nil {
		return err
	}

	if err := u.callTaskRepo.Delete(ctx, callID, id); err != nil {
		return apperrors.InternalError("failed to unlink task from call", err)
	}

	u.log.Info().Uint("task_id", id).Uint("call_id", callID).Msg("Template task unlinked from call")
	return nil
}

func (u *taskUseCase) Deactivate(ctx context.Context, id uint) error {
	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		inactive := false
		if err := u.update(ctx, id, &entity.TaskUpdate{IsActive: &inactive}); err != nil {
			return err
		}
		if err := u.callTaskRepo.DeleteByTask(ctx, id); err != nil {
			return apperrors.InternalError("failed to unlink task from calls", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.log.Info().Uint("task_id", id).Msg("Task deactivated")
	return nil
}

func (u *taskUseCase) ListForCall(ctx context.Context, callID uint) ([]entity.CallTaskResponse, error) {
	if err := u.ensureCall(ctx, callID); err != nil {
		return nil, err
	}

	tasks, err := u.callTaskRepo.ListByCall(ctx, callID)
	if err != nil {
		return nil, apperrors.InternalError("failed to list call tasks", err)
	}

	responses := make([]entity.CallTaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *tasks[i].ToResponse()
	}
	return responses, nil
}

func (u *taskUseCase) getTask(ctx context.Context, id uint) (*entity.Task, error) {
	task, err := u.taskRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("task")
		}
		return nil, apperrors.InternalError("failed to get task", err)
	}
	return task, nil
}

func (u *taskUseCase) getTemplate(ctx context.Context, id uint) (*entity.Task, error) {
	task, err := u.getTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.IsTemplate() {
		return nil, apperrors.InvalidTaskTypeError(id)
	}
	return task, nil
}

// getActiveTemplate is getTemplate restricted to active tasks
func (u *taskUseCase) getActiveTemplate(ctx context.Context, id uint) (*entity.Task, error) {
	task, err := u.taskRepo.GetActiveByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("task")
		}
		return nil, apperrors.InternalError("failed to get task", err)
	}
	if !task.IsTemplate() {
		return nil, apperrors.InvalidTaskTypeError(id)
	}
	return task, nil
}

// update applies a partial update; an update with no field only checks existence
func (u *taskUseCase) update(ctx context.Context, id uint, update *entity.TaskUpdate) error {
	if update.Name == nil && update.IsActive == nil {
		_, err := u.getTask(ctx, id)
		return err
	}

	if err := u.taskRepo.Update(ctx, id, update); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NotFoundError("task")
		}
		return apperrors.InternalError("failed to update task", err)
	}
	return nil
}

func (u *taskUseCase) ensureCall(ctx context.Context, callID uint) error {
	exists, err := u.callRepo.Exists(ctx, callID)
	if err != nil {
		return apperrors.InternalError("failed to check call", err)
	}
	if !exists {
		return apperrors.NotFoundError("call")
	}
	return nil
}

// activeTagIDs keeps the ids that name an active tag, dropping the rest
func (u *taskUseCase) activeTagIDs(ctx context.Context, ids []uint) ([]uint, error) {
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
