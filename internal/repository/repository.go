package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every repository.
type Repository struct {
	db *gorm.DB

	User       UserRepository
	Term       TermRepository
	Room       RoomRepository
	Discipline DisciplineRepository
	Professor  ProfessorRepository
	Booking    BookingRepository
}

// NewRepository wires every repository onto db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		User:       NewUserRepo(db),
		Term:       NewTermRepo(db),
		Room:       NewRoomRepo(db),
		Discipline: NewDisciplineRepo(db),
		Professor:  NewProfessorRepo(db),
		Booking:    NewBookingRepo(db),
	}
}

// WithTx returns a Repository whose members run on tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Transaction runs fn inside a database transaction; fn receives a
// Repository bound to it. Without a database (mocked in tests) fn runs on r.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

