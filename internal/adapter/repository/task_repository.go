package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/leondli/centriq/internal/domain/entity"
	"github.com/leondli/centriq/internal/domain/repository"
	apperrors "github.com/leondli/centriq/pkg/errors"
)

// TaskModel is the Gorm model for tasks table
type TaskModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Type      string `gorm:"size:20;not null;index"`
	IsActive  bool   `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Tags []TagModel `gorm:"many2many:tasks_tags;joinForeignKey:TaskID;joinReferences:TagID"`
}

// TableName returns the table name
func (TaskModel) TableName() string {
	return "tasks"
}

func (TaskModel) activeColumn() string {
	return "tasks.is_active"
}

// ToEntity converts TaskModel to entity.Task
func (m *TaskModel) ToEntity() *entity.Task {
	task := &entity.Task{
		ID:        m.ID,
		Name:      m.Name,
		Type:      entity.TaskType(m.Type),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if len(m.Tags) > 0 {
		task.Tags = tagModelsToEntities(m.Tags)
	}

	return task
}

func taskModelsToEntities(models []TaskModel) []entity.Task {
	tasks := make([]entity.Task, len(models))
	for i := range models {
		tasks[i] = *models[i].ToEntity()
	}
	return tasks
}

// TaskTagModel is the Gorm model for tasks_tags table
type TaskTagModel struct {
	TaskID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID  uint `gorm:"primaryKey;autoIncrement:false"`
}

// TableName returns the table name
func (TaskTagModel) TableName() string {
	return "tasks_tags"
}

// taskRepository implements repository.TaskRepository
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *taskRepository) Create(ctx context.Context, task *entity.Task, tagIDs []uint) error {
	model := &TaskModel{
		Name:     task.Name,
		Type:     string(task.Type),
		IsActive: true,
	}

	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return insertTaskTags(tx, model.ID, tagIDs)
	})
	if err != nil {
		return translateError(err)
	}

	created, err := r.GetByID(ctx, model.ID)
	if err != nil {
		return err
	}
	*task = *created
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id uint) (*entity.Task, error) {
	var model TaskModel
	if err := r.conn(ctx).
		Preload("Tags", activeOnly[TagModel]()).
		Where("tasks.id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToEntity(), nil
}

func (r *taskRepository) GetActiveByID(ctx context.Context, id uint) (*entity.Task, error) {
	var model TaskModel
	if err := r.conn(ctx).
		Preload("Tags", activeOnly[TagModel]()).
		Scopes(activeOnly[TaskModel]()).
		Where("tasks.id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToEntity(), nil
}

func (r *taskRepository) List(ctx context.Context, all bool) ([]entity.Task, error) {
	var models []TaskModel
	if err := r.conn(ctx).
		Scopes(includeInactive[TaskModel](all)).
		Order("tasks.id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return taskModelsToEntities(models), nil
}

func (r *taskRepository) ListActiveTemplates(ctx context.Context) ([]entity.Task, error) {
	var models []TaskModel
	if err := r.conn(ctx).
		Preload("Tags", activeOnly[TagModel]()).
		Scopes(activeOnly[TaskModel]()).
		Where("tasks.type = ?", string(entity.TaskTypeTemplate)).
		Order("tasks.id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return taskModelsToEntities(models), nil
}

func (r *taskRepository) ListActiveTemplatesByTag(ctx context.Context, tagID uint) ([]entity.Task, error) {
	var models []TaskModel
	if err := r.conn(ctx).
		Joins("JOIN tasks_tags ON tasks_tags.task_id = tasks.id").
		Scopes(activeOnly[TaskModel]()).
		Where("tasks_tags.tag_id = ? AND tasks.type = ?", tagID, string(entity.TaskTypeTemplate)).
		Order("tasks.id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return taskModelsToEntities(models), nil
}

func (r *taskRepository) Update(ctx context.Context, id uint, update *entity.TaskUpdate) error {
	db := r.conn(ctx)
	values := map[string]interface{}{
		"updated_at": db.NowFunc(),
	}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	if update.IsActive != nil {
		values["is_active"] = *update.IsActive
	}

	result := db.Model(&TaskModel{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *taskRepository) ReplaceTags(ctx context.Context, id uint, tagIDs []uint) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&TaskTagModel{}).Error; err != nil {
			return err
		}
		return insertTaskTags(tx, id, tagIDs)
	})
}

func insertTaskTags(tx *gorm.DB, taskID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]TaskTagModel, len(tagIDs))
	for i, tagID := range tagIDs {
		rows[i] = TaskTagModel{TaskID: taskID, TagID: tagID}
	}
	return tx.Create(&rows).Error
}
