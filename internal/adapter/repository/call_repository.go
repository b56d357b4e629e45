package repository

import (
	"context"
	"time"

	"github.com/guregu/null/v5"
	"gorm.io/gorm"

	"github.com/leondli/centriq/internal/domain/entity"
	"github.com/leondli/centriq/internal/domain/repository"
	apperrors "github.com/leondli/centriq/pkg/errors"
)

// CallModel is the Gorm model for calls table
type CallModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:255;not null"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	// Relations
	Tags []TagModel `gorm:"many2many:calls_tags;joinForeignKey:CallID;joinReferences:TagID"`
}

// TableName returns the table name
func (CallModel) TableName() string {
	return "calls"
}

// ToEntity converts CallModel to entity.Call
func (m *CallModel) ToEntity() *entity.Call {
	call := &entity.Call{
		ID:          m.ID,
		Name:        m.Name,
		Description: null.StringFromPtr(m.Description),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if len(m.Tags) > 0 {
		call.Tags = tagModelsToEntities(m.Tags)
	}

	return call
}

// CallTagModel is the Gorm model for calls_tags table
type CallTagModel struct {
	CallID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID  uint `gorm:"primaryKey;autoIncrement:false"`
}

// TableName returns the table name
func (CallTagModel) TableName() string {
	return "calls_tags"
}

// callRepository implements repository.CallRepository
type callRepository struct {
	db *gorm.DB
}

// NewCallRepository creates a new call repository
func NewCallRepository(db *gorm.DB) repository.CallRepository {
	return &callRepository{db: db}
}

func (r *callRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *callRepository) Create(ctx context.Context, call *entity.Call, tagIDs []uint) error {
	model := &CallModel{
		Name:        call.Name,
		Description: call.Description.Ptr(),
	}

	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return insertCallTags(tx, model.ID, tagIDs)
	})
	if err != nil {
		return translateError(err)
	}

	created, err := r.GetByID(ctx, model.ID)
	if err != nil {
		return err
	}
	*call = *created
	return nil
}

func (r *callRepository) GetByID(ctx context.Context, id uint) (*entity.Call, error) {
	db := r.conn(ctx)

	var model CallModel
	if err := db.
		Preload("Tags", activeOnly[TagModel]()).
		Where("calls.id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}

	var tasks []TaskModel
	if err := db.
		Joins("JOIN calls_tasks ON calls_tasks.task_id = tasks.id").
		Scopes(activeOnly[TaskModel]()).
		Where("calls_tasks.call_id = ?", id).
		Order("tasks.id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	call := model.ToEntity()
	if len(tasks) > 0 {
		call.Tasks = taskModelsToEntities(tasks)
	}
	return call, nil
}

func (r *callRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.conn(ctx).Model(&CallModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *callRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]entity.Call, error) {
	var models []CallModel
	if err := r.conn(ctx).
		Preload("Tags", activeOnly[TagModel]()).
		Where("calls.created_at >= ?", since).
		Order("calls.created_at DESC").
		Order("calls.id DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	calls := make([]entity.Call, len(models))
	for i := range models {
		calls[i] = *models[i].ToEntity()
	}
	return calls, nil
}

func (r *callRepository) Update(ctx context.Context, id uint, update *entity.CallUpdate) error {
	db := r.conn(ctx)
	values := map[string]interface{}{
		"updated_at": db.NowFunc(),
	}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	if update.Description.Valid {
		if update.Description.String == "" {
			values["description"] = nil
		} else {
			values["description"] = update.Description.String
		}
	}

	result := db.Model(&CallModel{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *callRepository) ReplaceTags(ctx context.Context, id uint, tagIDs []uint) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("call_id = ?", id).Delete(&CallTagModel{}).Error; err != nil {
			return err
		}
		return insertCallTags(tx, id, tagIDs)
	})
}

func insertCallTags(tx *gorm.DB, callID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]CallTagModel, len(tagIDs))
	for i, tagID := range tagIDs {
		rows[i] = CallTagModel{CallID: callID, TagID: tagID}
	}
	return tx.Create(&rows).Error
}
