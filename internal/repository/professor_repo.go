package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vinimqsz/projeto-eng-software/internal/model"
)

// ProfessorRepository professor data access
type ProfessorRepository interface {
	Create(ctx context.Context, p *model.Professor) error
	GetByID(ctx context.Context, id string) (*model.Professor, error)
	List(ctx context.Context, search, department string, offset, limit int) ([]model.Professor, int64, error)
	Update(ctx context.Context, p *model.Professor) error
	Delete(ctx context.Context, id string) error
}

type professorRepo struct {
	db *gorm.DB
}

// NewProfessorRepo creates a ProfessorRepository.
func NewProfessorRepo(db *gorm.DB) ProfessorRepository {
	return &professorRepo{db: db}
}

func (r *professorRepo) Create(ctx context.Context, p *model.Professor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *professorRepo) GetByID(ctx context.Context, id string) (*model.Professor, error) {
	var p model.Professor
	err := r.db.WithContext(ctx).
		Where("professor_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *professorRepo) List(ctx context.Context, search, department string, offset, limit int) ([]model.Professor, int64, error) {
	var list []model.Professor
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Professor{})
	if department != "" {
		db = db.Where("department = ?", department)
	}
	if search != "" {
		db = db.Where("name ILIKE ? OR registration ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("name ASC").
		Offset(offset).Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *professorRepo) Update(ctx context.Context, p *model.Professor) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *professorRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("professor_id = ?", id).
		Delete(&model.Professor{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
