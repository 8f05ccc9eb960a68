package model

import (
	"fmt"

	"gorm.io/datatypes"
)

// Term periods
const (
	PeriodFirst  = 1
	PeriodSecond = 2
)

// Term academic term table terms. Identity is (year, period).
type Term struct {
	TermID    string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"term_id"`
	Year      int             `gorm:"not null;uniqueIndex:uq_terms_year_period"      json:"year"`
	Period    int             `gorm:"type:smallint;not null;uniqueIndex:uq_terms_year_period" json:"period"`
	StartDate datatypes.Date  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate   datatypes.Date  `gorm:"type:date;not null"                             json:"end_date"`
	IsActive  bool            `gorm:"not null;default:false"                         json:"is_active"`
	StartedAt *datatypes.Date `gorm:"type:date"                                      json:"started_at,omitempty"`
	EndedAt   *datatypes.Date `gorm:"type:date"                                      json:"ended_at,omitempty"`
	VersionedModel
}

// TableName table name
func (Term) TableName() string { return "terms" }

// Label renders the term the way the timetable shows it, e.g. "2025.1".
func (t Term) Label() string { return fmt.Sprintf("%d.%d", t.Year, t.Period) }
