package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vinimqsz/projeto-eng-software/internal/model"
)

// DisciplineRepository discipline data access
type DisciplineRepository interface {
	Create(ctx context.Context, d *model.Discipline) error
	GetByID(ctx context.Context, id string) (*model.Discipline, error)
	List(ctx context.Context, search string, includeInactive bool, offset, limit int) ([]model.Discipline, int64, error)
	Update(ctx context.Context, d *model.Discipline) error
	Delete(ctx context.Context, id string) error
}

type disciplineRepo struct {
	db *gorm.DB
}

// NewDisciplineRepo creates a DisciplineRepository.
func NewDisciplineRepo(db *gorm.DB) DisciplineRepository {
	return &disciplineRepo{db: db}
}

func (r *disciplineRepo) Create(ctx context.Context, d *model.Discipline) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *disciplineRepo) GetByID(ctx context.Context, id string) (*model.Discipline, error) {
	var d model.Discipline
	err := r.db.WithContext(ctx).
		Where("discipline_id = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *disciplineRepo) List(ctx context.Context, search string, includeInactive bool, offset, limit int) ([]model.Discipline, int64, error) {
	var list []model.Discipline
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Discipline{})
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}
	if search != "" {
		db = db.Where("code ILIKE ? OR name ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("code ASC").
		Offset(offset).Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *disciplineRepo) Update(ctx context.Context, d *model.Discipline) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *disciplineRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("discipline_id = ?", id).
		Delete(&model.Discipline{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
