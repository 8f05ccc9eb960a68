package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vinimqsz/projeto-eng-software/internal/model"
)

// RoomFilter list filters for rooms
type RoomFilter struct {
	Kind            string
	MinCapacity     int
	Search          string
	IncludeInactive bool
}

// RoomRepository room data access
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	// LockByID reads the room with FOR UPDATE; use inside a transaction.
	LockByID(ctx context.Context, id string) (*model.Room, error)
	List(ctx context.Context, f RoomFilter, offset, limit int) ([]model.Room, int64, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id string) error
}

type roomRepo struct {
	db *gorm.DB
}

// NewRoomRepo creates a RoomRepository.
func NewRoomRepo(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Where("room_id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) LockByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) List(ctx context.Context, f RoomFilter, offset, limit int) ([]model.Room, int64, error) {
	var rooms []model.Room
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Room{})
	if !f.IncludeInactive {
		db = db.Where("is_active = ?", true)
	}
	if f.Kind != "" {
		db = db.Where("kind = ?", f.Kind)
	}
	if f.MinCapacity > 0 {
		db = db.Where("capacity >= ?", f.MinCapacity)
	}
	if f.Search != "" {
		db = db.Where("name ILIKE ? OR location ILIKE ?", "%"+f.Search+"%", "%"+f.Search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Order("name ASC").
		Offset(offset).Limit(limit).
		Find(&rooms).Error; err != nil {
		return nil, 0, err
	}

	return rooms, total, nil
}

func (r *roomRepo) Update(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *roomRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("room_id = ?", id).
		Delete(&model.Room{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
