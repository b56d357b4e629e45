package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/leondli/centriq/internal/domain/entity"
	"github.com/leondli/centriq/internal/domain/repository"
	apperrors "github.com/leondli/centriq/pkg/errors"
)

// TagModel is the Gorm model for tags table
type TagModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:100;not null"`
	IsActive  bool   `gorm:"not null;default:true;index"`
	ColorID   int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name
func (TagModel) TableName() string {
	return "tags"
}

func (TagModel) activeColumn() string {
	return "tags.is_active"
}

// ToEntity converts TagModel to entity.Tag
func (m *TagModel) ToEntity() *entity.Tag {
	return &entity.Tag{
		ID:        m.ID,
		Name:      m.Name,
		IsActive:  m.IsActive,
		ColorID:   entity.TagColor(m.ColorID),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func tagModelsToEntities(models []TagModel) []entity.Tag {
	tags := make([]entity.Tag, len(models))
	for i := range models {
		tags[i] = *models[i].ToEntity()
	}
	return tags
}

// tagRepository implements repository.TagRepository
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) repository.TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	model := &TagModel{
		Name:     tag.Name,
		IsActive: true,
		ColorID:  int(tag.ColorID),
	}

	if err := r.conn(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}

	*tag = *model.ToEntity()
	return nil
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*entity.Tag, error) {
	var model TagModel
	if err := r.conn(ctx).Where("tags.id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToEntity(), nil
}

func (r *tagRepository) GetActiveByID(ctx context.Context, id uint) (*entity.Tag, error) {
	var model TagModel
	if err := r.conn(ctx).
		Scopes(activeOnly[TagModel]()).
		Where("tags.id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToEntity(), nil
}

func (r *tagRepository) List(ctx context.Context, all bool) ([]entity.Tag, error) {
	var models []TagModel
	if err := r.conn(ctx).
		Scopes(includeInactive[TagModel](all)).
		Order("tags.id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return tagModelsToEntities(models), nil
}

func (r *tagRepository) ListActiveByIDs(ctx context.Context, ids []uint) ([]entity.Tag, error) {
	if len(ids) == 0 {
		return []entity.Tag{}, nil
	}

	var models []TagModel
	if err := r.conn(ctx).
		Scopes(activeOnly[TagModel]()).
		Where("tags.id IN ?", ids).
		Order("tags.id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return tagModelsToEntities(models), nil
}

func (r *tagRepository) Update(ctx context.Context, id uint, update *entity.TagUpdate) error {
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
	if update.ColorID != nil {
		values["color_id"] = int(*update.ColorID)
	}

	result := db.Model(&TagModel{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *tagRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	if err := r.conn(ctx).Model(&TagModel{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
