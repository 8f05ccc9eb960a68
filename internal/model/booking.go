package model

import (
	"time"

	"gorm.io/datatypes"

	"github.com/vinimqsz/projeto-eng-software/internal/scheduling"
)

// Booking weekly class meeting table bookings.
// UNIQUE(term_id, room_id, day_of_week, start_time) backs up the overlap check.
type Booking struct {
	BookingID           string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"booking_id"`
	TermID              string          `gorm:"type:uuid;not null"                             json:"term_id"`
	RoomID              string          `gorm:"type:uuid;not null"                             json:"room_id"`
	DisciplineID        string          `gorm:"type:uuid;not null"                             json:"discipline_id"`
	ProfessorID         string          `gorm:"type:uuid;not null"                             json:"professor_id"`
	DayOfWeek           int             `gorm:"type:smallint;not null"                         json:"day_of_week"` // 0=Monday … 6=Sunday
	StartTime           datatypes.Time  `gorm:"type:time;not null"                             json:"start_time"`
	EndTime             datatypes.Time  `gorm:"type:time;not null"                             json:"end_time"`
	StudentCount        int             `gorm:"not null;default:0"                             json:"student_count"`
	IsActive            bool            `gorm:"not null"                                       json:"is_active"`
	ExceptionalShutdown *datatypes.Date `gorm:"type:date"                                      json:"exceptional_shutdown,omitempty"`
	VersionedModel

	Term       *Term       `gorm:"foreignKey:TermID;references:TermID"             json:"term,omitempty"`
	Room       *Room       `gorm:"foreignKey:RoomID;references:RoomID"             json:"room,omitempty"`
	Discipline *Discipline `gorm:"foreignKey:DisciplineID;references:DisciplineID" json:"discipline,omitempty"`
	Professor  *Professor  `gorm:"foreignKey:ProfessorID;references:ProfessorID"   json:"professor,omitempty"`
}

// TableName table name
func (Booking) TableName() string { return "bookings" }

// Slot projects the booking onto what the conflict rules compare.
func (b *Booking) Slot() scheduling.Slot {
	return scheduling.Slot{
		ID:     b.BookingID,
		TermID: b.TermID,
		RoomID: b.RoomID,
		Day:    scheduling.Weekday(b.DayOfWeek),
		Start:  ToTimeOfDay(b.StartTime),
		End:    ToTimeOfDay(b.EndTime),
	}
}

// ToTimeOfDay converts a TIME column value to minutes since midnight.
func ToTimeOfDay(t datatypes.Time) scheduling.TimeOfDay {
	return scheduling.TimeOfDay(time.Duration(t) / time.Minute)
}

// FromTimeOfDay converts minutes since midnight to a TIME column value.
func FromTimeOfDay(t scheduling.TimeOfDay) datatypes.Time {
	return datatypes.NewTime(t.Hour(), t.Minute(), 0, 0)
}
