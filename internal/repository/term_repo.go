package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vinimqsz/projeto-eng-software/internal/model"
	"github.com/vinimqsz/projeto-eng-software/internal/scheduling"
	pkgerrors "github.com/vinimqsz/projeto-eng-software/pkg/errors"
)

// TermRepository term data access
type TermRepository interface {
	Create(ctx context.Context, term *model.Term) error
	GetByID(ctx context.Context, id string) (*model.Term, error)
	GetCurrent(ctx context.Context) (*model.Term, error)
	List(ctx context.Context) ([]model.Term, error)
	ListActive(ctx context.Context) ([]model.Term, error)
	Update(ctx context.Context, term *model.Term) error
	Delete(ctx context.Context, id string) error
	// ActivateExclusive makes id the only active term in one transaction.
	ActivateExclusive(ctx context.Context, id string, opts scheduling.ActivateOptions) error
}

type termRepo struct {
	db *gorm.DB
}

// NewTermRepo creates a TermRepository.
func NewTermRepo(db *gorm.DB) TermRepository {
	return &termRepo{db: db}
}

func (r *termRepo) Create(ctx context.Context, term *model.Term) error {
	return r.db.WithContext(ctx).Create(term).Error
}

func (r *termRepo) GetByID(ctx context.Context, id string) (*model.Term, error) {
	var term model.Term
	err := r.db.WithContext(ctx).
		Where("term_id = ?", id).
		First(&term).Error
	if err != nil {
		return nil, err
	}
	return &term, nil
}

func (r *termRepo) GetCurrent(ctx context.Context) (*model.Term, error) {
	var term model.Term
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&term).Error
	if err != nil {
		return nil, err
	}
	return &term, nil
}

func (r *termRepo) List(ctx context.Context) ([]model.Term, error) {
	var terms []model.Term
	err := r.db.WithContext(ctx).
		Order("year DESC, period DESC").
		Find(&terms).Error
	return terms, err
}

func (r *termRepo) ListActive(ctx context.Context) ([]model.Term, error) {
	var terms []model.Term
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&terms).Error
	return terms, err
}

// Update writes the editable columns under optimistic locking.
// is_active is never written here; activation goes through ActivateExclusive.
func (r *termRepo) Update(ctx context.Context, term *model.Term) error {
	oldVersion := term.Version
	result := r.db.WithContext(ctx).
		Model(&model.Term{}).
		Where("term_id = ? AND version = ?", term.TermID, oldVersion).
		Updates(map[string]interface{}{
			"year":       term.Year,
			"period":     term.Period,
			"start_date": term.StartDate,
			"end_date":   term.EndDate,
			"updated_by": term.UpdatedBy,
			"updated_at": gorm.Expr("NOW()"),
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	term.Version = oldVersion + 1
	return nil
}

func (r *termRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("term_id = ?", id).
		Delete(&model.Term{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ActivateExclusive locks the target row, clears every other active term and
// then sets the target. Siblings are cleared first so the partial unique
// index on is_active never sees two true rows.
func (r *termRepo) ActivateExclusive(ctx context.Context, id string, opts scheduling.ActivateOptions) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target model.Term
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("term_id = ?", id).
			First(&target).Error; err != nil {
			return err
		}

		var actor interface{}
		if opts.ActorID != "" {
			actor = opts.ActorID
		}

		clear := map[string]interface{}{
			"is_active":  false,
			"updated_by": actor,
			"updated_at": gorm.Expr("NOW()"),
			"version":    gorm.Expr("version + 1"),
		}
		if opts.Stamp != nil {
			clear["ended_at"] = gorm.Expr("COALESCE(ended_at, ?)", dateOf(*opts.Stamp))
		}
		if err := tx.Model(&model.Term{}).
			Where("is_active = ? AND term_id <> ?", true, id).
			Updates(clear).Error; err != nil {
			return err
		}

		if target.IsActive && opts.Stamp == nil {
			return nil
		}

		set := map[string]interface{}{
			"is_active":  true,
			"updated_by": actor,
			"updated_at": gorm.Expr("NOW()"),
			"version":    gorm.Expr("version + 1"),
		}
		if opts.Stamp != nil {
			set["started_at"] = gorm.Expr("COALESCE(started_at, ?)", dateOf(*opts.Stamp))
		}
		return tx.Model(&model.Term{}).
			Where("term_id = ?", id).
			Updates(set).Error
	})
}

func dateOf(t time.Time) string {
	return t.Format(time.DateOnly)
}
