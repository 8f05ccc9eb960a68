// Package scheduling holds the booking conflict rules and the single-active-term
// rule. Nothing in here touches storage; callers hand in the records to compare.
package scheduling

import "sort"

// Slot is the part of a booking the conflict rules look at.
// ID is empty for a booking that has not been persisted yet.
type Slot struct {
	ID     string
	TermID string
	RoomID string
	Day    Weekday
	Start  TimeOfDay
	End    TimeOfDay
}

// Bucket is the unit of conflict comparison.
type Bucket struct {
	TermID string
	RoomID string
	Day    Weekday
}

// BucketOf returns the bucket s belongs to.
func BucketOf(s Slot) Bucket {
	return Bucket{TermID: s.TermID, RoomID: s.RoomID, Day: s.Day}
}

// ConflictResult lists the bookings a proposed slot overlaps. Empty means no conflict.
type ConflictResult struct {
	Conflicts []Slot
}

// HasConflict reports whether any booking overlaps.
func (r ConflictResult) HasConflict() bool { return len(r.Conflicts) > 0 }

// Err converts the result into a *ConflictError, or nil.
func (r ConflictResult) Err(proposed Slot) error {
	if !r.HasConflict() {
		return nil
	}
	return &ConflictError{Proposed: proposed, With: r.Conflicts}
}

// Overlaps is the half-open interval test: [aStart, aEnd) and [bStart, bEnd)
// overlap iff each starts before the other ends. Shared endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && aEnd > bStart
}

// ValidateInterval rejects empty and inverted intervals.
func ValidateInterval(start, end TimeOfDay) error {
	if start >= end {
		return ErrInvalidInterval
	}
	return nil
}

// SlotConflictDetector decides whether a proposed booking may be stored.
// It has no state; the zero value is ready to use.
type SlotConflictDetector struct{}

// NewSlotConflictDetector returns a detector.
func NewSlotConflictDetector() *SlotConflictDetector {
	return &SlotConflictDetector{}
}

// CheckConflict compares proposed against the bucket in existing and returns
// every overlapping candidate, in input order.
//
// existing is expected to be pre-filtered to proposed's bucket and to active
// bookings. Candidates carrying proposed's own ID, or belonging to another
// bucket, are skipped anyway.
func (d *SlotConflictDetector) CheckConflict(proposed Slot, existing []Slot) (ConflictResult, error) {
	if err := ValidateInterval(proposed.Start, proposed.End); err != nil {
		return ConflictResult{}, err
	}

	bucket := BucketOf(proposed)
	var result ConflictResult
	for _, c := range existing {
		if proposed.ID != "" && c.ID == proposed.ID {
			continue
		}
		if BucketOf(c) != bucket {
			continue
		}
		if Overlaps(proposed.Start, proposed.End, c.Start, c.End) {
			result.Conflicts = append(result.Conflicts, c)
		}
	}
	return result, nil
}

// FindOverlaps returns every overlapping pair among slots, grouped by bucket.
// Slots with an invalid interval are ignored. Within a pair, the slot that
// starts first comes first.
func FindOverlaps(slots []Slot) [][2]Slot {
	buckets := make(map[Bucket][]Slot)
	var order []Bucket
	for _, s := range slots {
		if ValidateInterval(s.Start, s.End) != nil {
			continue
		}
		b := BucketOf(s)
		if _, ok := buckets[b]; !ok {
			order = append(order, b)
		}
		buckets[b] = append(buckets[b], s)
	}

	var pairs [][2]Slot
	for _, b := range order {
		group := buckets[b]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Start < group[j].Start })
		for i := 0; i < len(group); i++ {
			// sorted by start: once a later slot starts at or after group[i]
			// ends, no further slot can overlap group[i]
			for j := i + 1; j < len(group) && group[j].Start < group[i].End; j++ {
				pairs = append(pairs, [2]Slot{group[i], group[j]})
			}
		}
	}
	return pairs
}
