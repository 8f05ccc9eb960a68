// Package audit re-checks the scheduling invariants over stored data.
//
// It only reports. Violations can appear when rows are edited outside the
// API (manual SQL, restores); fixing them is left to an operator.
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vinimqsz/projeto-eng-software/internal/model"
	"github.com/vinimqsz/projeto-eng-software/internal/scheduling"
)

// TermLister is the part of repository.TermRepository the audit reads.
type TermLister interface {
	List(ctx context.Context) ([]model.Term, error)
}

// BookingLister is the part of repository.BookingRepository the audit reads.
type BookingLister interface {
	ListByTerm(ctx context.Context, termID string, activeOnly bool) ([]model.Booking, error)
}

// Overlap is a pair of active bookings sharing room and day in one term.
type Overlap struct {
	TermLabel string
	First     scheduling.Slot
	Second    scheduling.Slot
}

// Report is the outcome of one audit run.
type Report struct {
	CheckedAt     time.Time
	Terms         int
	ActiveTerms   []string // labels
	Bookings      int
	Overlaps      []Overlap
	FailedTermIDs []string
}

// Clean reports whether no invariant is violated.
func (r *Report) Clean() bool {
	return len(r.ActiveTerms) <= 1 && len(r.Overlaps) == 0
}

// Auditor runs the checks.
type Auditor struct {
	terms    TermLister
	bookings BookingLister
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuditor creates an Auditor.
func NewAuditor(terms TermLister, bookings BookingLister, logger *zap.Logger) *Auditor {
	return &Auditor{terms: terms, bookings: bookings, logger: logger, now: time.Now}
}

// Run checks that at most one term is active and that no two active bookings
// overlap. A term whose bookings cannot be loaded is skipped and listed in
// FailedTermIDs; only a failure to list terms aborts the run.
func (a *Auditor) Run(ctx context.Context) (*Report, error) {
	terms, err := a.terms.List(ctx)
	if err != nil {
		a.logger.Error("audit: list terms failed", zap.Error(err))
		return nil, err
	}

	report := &Report{CheckedAt: a.now(), Terms: len(terms)}

	states := make([]scheduling.TermState, 0, len(terms))
	for _, t := range terms {
		states = append(states, scheduling.TermState{ID: t.TermID, Active: t.IsActive})
		if t.IsActive {
			report.ActiveTerms = append(report.ActiveTerms, t.Label())
		}
	}
	if n := scheduling.CountActive(states); n > 1 {
		a.logger.Error("audit: more than one active term",
			zap.Int("count", n),
			zap.Strings("terms", report.ActiveTerms),
		)
	}

	for _, t := range terms {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		bookings, err := a.bookings.ListByTerm(ctx, t.TermID, true)
		if err != nil {
			a.logger.Warn("audit: list term bookings failed", zap.String("term_id", t.TermID), zap.Error(err))
			report.FailedTermIDs = append(report.FailedTermIDs, t.TermID)
			continue
		}
		report.Bookings += len(bookings)

		slots := make([]scheduling.Slot, 0, len(bookings))
		for i := range bookings {
			slots = append(slots, bookings[i].Slot())
		}
		for _, pair := range scheduling.FindOverlaps(slots) {
			report.Overlaps = append(report.Overlaps, Overlap{TermLabel: t.Label(), First: pair[0], Second: pair[1]})
			a.logger.Warn("audit: overlapping bookings",
				zap.String("term", t.Label()),
				zap.String("room_id", pair[0].RoomID),
				zap.String("day", pair[0].Day.String()),
				zap.String("first", pair[0].ID),
				zap.String("first_interval", pair[0].Start.String()+"-"+pair[0].End.String()),
				zap.String("second", pair[1].ID),
				zap.String("second_interval", pair[1].Start.String()+"-"+pair[1].End.String()),
			)
		}
	}

	a.logger.Info("audit finished",
		zap.Int("terms", report.Terms),
		zap.Int("active_terms", len(report.ActiveTerms)),
		zap.Int("bookings", report.Bookings),
		zap.Int("overlaps", len(report.Overlaps)),
		zap.Bool("clean", report.Clean()),
	)
	return report, nil
}
