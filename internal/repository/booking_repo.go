package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vinimqsz/projeto-eng-software/internal/model"
	pkgerrors "github.com/vinimqsz/projeto-eng-software/pkg/errors"
)

// BookingFilter list filters for bookings. Zero values match everything.
type BookingFilter struct {
	TermID       string
	RoomID       string
	DisciplineID string
	ProfessorID  string
	Day          *int
	ActiveOnly   bool
}

// BookingRepository booking data access
type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, f BookingFilter, offset, limit int) ([]model.Booking, int64, error)
	// ListBucket returns the active bookings sharing (term, room, day),
	// skipping excludeID when it is non-empty.
	ListBucket(ctx context.Context, termID, roomID string, day int, excludeID string) ([]model.Booking, error)
	// ListByTerm returns every booking of the term with its references loaded.
	ListByTerm(ctx context.Context, termID string, activeOnly bool) ([]model.Booking, error)
	Update(ctx context.Context, b *model.Booking) error
	Delete(ctx context.Context, id string) error
}

type bookingRepo struct {
	db *gorm.DB
}

// NewBookingRepo creates a BookingRepository.
func NewBookingRepo(db *gorm.DB) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, b *model.Booking) error {
	return r.db.WithContext(ctx).Omit("Term", "Room", "Discipline", "Professor").Create(b).Error
}

func (r *bookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).
		Preload("Term").
		Preload("Room").
		Preload("Discipline").
		Preload("Professor").
		Where("booking_id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepo) List(ctx context.Context, f BookingFilter, offset, limit int) ([]model.Booking, int64, error) {
	var list []model.Booking
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Booking{})
	if f.TermID != "" {
		db = db.Where("term_id = ?", f.TermID)
	}
	if f.RoomID != "" {
		db = db.Where("room_id = ?", f.RoomID)
	}
	if f.DisciplineID != "" {
		db = db.Where("discipline_id = ?", f.DisciplineID)
	}
	if f.ProfessorID != "" {
		db = db.Where("professor_id = ?", f.ProfessorID)
	}
	if f.Day != nil {
		db = db.Where("day_of_week = ?", *f.Day)
	}
	if f.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Preload("Room").
		Preload("Discipline").
		Preload("Professor").
		Order("day_of_week ASC, start_time ASC").
		Offset(offset).Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *bookingRepo) ListBucket(ctx context.Context, termID, roomID string, day int, excludeID string) ([]model.Booking, error) {
	var list []model.Booking
	db := r.db.WithContext(ctx).
		Where("term_id = ? AND room_id = ? AND day_of_week = ? AND is_active = ?", termID, roomID, day, true)
	if excludeID != "" {
		db = db.Where("booking_id <> ?", excludeID)
	}
	err := db.Order("start_time ASC").Find(&list).Error
	return list, err
}

func (r *bookingRepo) ListByTerm(ctx context.Context, termID string, activeOnly bool) ([]model.Booking, error) {
	var list []model.Booking
	db := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Discipline").
		Preload("Professor").
		Where("term_id = ?", termID)
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("room_id ASC, day_of_week ASC, start_time ASC").Find(&list).Error
	return list, err
}

// Update writes the booking under optimistic locking.
func (r *bookingRepo) Update(ctx context.Context, b *model.Booking) error {
	oldVersion := b.Version
	result := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("booking_id = ? AND version = ?", b.BookingID, oldVersion).
		Updates(map[string]interface{}{
			"term_id":              b.TermID,
			"room_id":              b.RoomID,
			"discipline_id":        b.DisciplineID,
			"professor_id":         b.ProfessorID,
			"day_of_week":          b.DayOfWeek,
			"start_time":           b.StartTime,
			"end_time":             b.EndTime,
			"student_count":        b.StudentCount,
			"is_active":            b.IsActive,
			"exceptional_shutdown": b.ExceptionalShutdown,
			"updated_by":           b.UpdatedBy,
			"updated_at":           gorm.Expr("NOW()"),
			"version":              oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	b.Version = oldVersion + 1
	return nil
}

func (r *bookingRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("booking_id = ?", id).
		Delete(&model.Booking{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
