package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/leondli/centriq/internal/domain/entity"
	"github.com/leondli/centriq/internal/domain/repository"
	apperrors "github.com/leondli/centriq/pkg/errors"
)

// CallTaskModel is the Gorm model for calls_tasks table
type CallTaskModel struct {
	CallID uint   `gorm:"primaryKey;autoIncrement:false"`
	TaskID uint   `gorm:"primaryKey;autoIncrement:false;index"`
	Status string `gorm:"size:20;not null;default:open"`
}

// TableName returns the table name
func (CallTaskModel) TableName() string {
	return "calls_tasks"
}

// callTaskRow is a task joined with its link status
type callTaskRow struct {
	ID        uint
	Name      string
	Type      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	CallID    uint
	Status    string
}

func (row *callTaskRow) toEntity() entity.CallTask {
	return entity.CallTask{
		Task: entity.Task{
			ID:        row.ID,
			Name:      row.Name,
			Type:      entity.TaskType(row.Type),
			IsActive:  row.IsActive,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		CallID: row.CallID,
		Status: entity.TaskStatus(row.Status),
	}
}

// callTaskRepository implements repository.CallTaskRepository
type callTaskRepository struct {
	db *gorm.DB
}

// NewCallTaskRepository creates a new call task repository
func NewCallTaskRepository(db *gorm.DB) repository.CallTaskRepository {
	return &callTaskRepository{db: db}
}

func (r *callTaskRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *callTaskRepository) Create(ctx context.Context, link *entity.CallTaskLink) error {
	if link.Status == "" {
		link.Status = entity.TaskStatusOpen
	}

	model := &CallTaskModel{
		CallID: link.CallID,
		TaskID: link.TaskID,
		Status: string(link.Status),
	}
	return translateError(r.conn(ctx).Create(model).Error)
}

func (r *callTaskRepository) Exists(ctx context.Context, callID, taskID uint) (bool, error) {
	var count int64
	if err := r.conn(ctx).Model(&CallTaskModel{}).
		Where("call_id = ? AND task_id = ?", callID, taskID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *callTaskRepository) UpdateStatus(ctx context.Context, callID, taskID uint, status entity.TaskStatus) error {
	result := r.conn(ctx).Model(&CallTaskModel{}).
		Where("call_id = ? AND task_id = ?", callID, taskID).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *callTaskRepository) Delete(ctx context.Context, callID, taskID uint) error {
	return r.conn(ctx).
		Where("call_id = ? AND task_id = ?", callID, taskID).
		Delete(&CallTaskModel{}).Error
}

func (r *callTaskRepository) DeleteByTask(ctx context.Context, taskID uint) error {
	return r.conn(ctx).
		Where("task_id = ?", taskID).
		Delete(&CallTaskModel{}).Error
}

func (r *callTaskRepository) ListByCall(ctx context.Context, callID uint) ([]entity.CallTask, error) {
	var rows []callTaskRow
	if err := r.conn(ctx).
		Table("tasks").
		Select("tasks.id, tasks.name, tasks.type, tasks.is_active, tasks.created_at, tasks.updated_at, calls_tasks.call_id, calls_tasks.status").
		Joins("JOIN calls_tasks ON calls_tasks.task_id = tasks.id").
		Scopes(activeOnly[TaskModel]()).
		Where("calls_tasks.call_id = ?", callID).
		Order("tasks.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	tasks := make([]entity.CallTask, len(rows))
	for i := range rows {
		tasks[i] = rows[i].toEntity()
	}
	return tasks, nil
}
