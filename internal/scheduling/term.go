package scheduling

import (
	"context"
	"fmt"
	"time"
)

// StampPolicy controls whether activation records lifecycle dates.
type StampPolicy string

const (
	// StampNone leaves started_at/ended_at to the administrative workflow.
	StampNone StampPolicy = "none"
	// StampLifecycle fills an empty started_at on the activated term and an
	// empty ended_at on every term it deactivates.
	StampLifecycle StampPolicy = "lifecycle"
)

// ParseStampPolicy maps a config value to a policy. Empty means StampNone.
func ParseStampPolicy(s string) (StampPolicy, error) {
	switch StampPolicy(s) {
	case "", StampNone:
		return StampNone, nil
	case StampLifecycle:
		return StampLifecycle, nil
	}
	return "", fmt.Errorf("scheduling: unknown stamp policy %q", s)
}

// ActivateOptions is what the store needs to run one activation.
type ActivateOptions struct {
	// Stamp is nil unless lifecycle dates must be filled.
	Stamp *time.Time
	// ActorID identifies who requested the change, for audit columns.
	ActorID string
}

// TermStore performs the collection-wide swap. ActivateExclusive must, as one
// atomic unit, clear the active flag on every other term and set it on termID.
// A missing term is reported through the store's own not-found error.
type TermStore interface {
	ActivateExclusive(ctx context.Context, termID string, opts ActivateOptions) error
}

// TermLifecycleManager enforces that at most one term is active.
type TermLifecycleManager struct {
	store  TermStore
	policy StampPolicy
	now    func() time.Time
}

// NewTermLifecycleManager wires a manager to its store.
func NewTermLifecycleManager(store TermStore, policy StampPolicy) *TermLifecycleManager {
	if policy == "" {
		policy = StampNone
	}
	return &TermLifecycleManager{store: store, policy: policy, now: time.Now}
}

// Activate makes termID the only active term. Siblings are deactivated
// silently. Store errors are returned unchanged.
func (m *TermLifecycleManager) Activate(ctx context.Context, termID, actorID string) error {
	if termID == "" {
		return ErrEmptyTermID
	}
	opts := ActivateOptions{ActorID: actorID}
	if m.policy == StampLifecycle {
		now := m.now()
		opts.Stamp = &now
	}
	return m.store.ActivateExclusive(ctx, termID, opts)
}

// TermState is the slice of a term the activation rule reads and writes.
type TermState struct {
	ID        string
	Active    bool
	StartedAt *time.Time
	EndedAt   *time.Time
}

// ApplyActivation computes the collection after activating targetID. It is the
// reference semantics for TermStore implementations. The input is not modified.
// ok is false when targetID is not in terms.
func ApplyActivation(terms []TermState, targetID string, stamp *time.Time) (out []TermState, ok bool) {
	out = make([]TermState, len(terms))
	copy(out, terms)
	for i := range out {
		if out[i].ID == targetID {
			ok = true
		}
	}
	if !ok {
		return terms, false
	}
	for i := range out {
		t := &out[i]
		if t.ID == targetID {
			t.Active = true
			if stamp != nil && t.StartedAt == nil {
				s := *stamp
				t.StartedAt = &s
			}
			continue
		}
		if t.Active {
			t.Active = false
			if stamp != nil && t.EndedAt == nil {
				s := *stamp
				t.EndedAt = &s
			}
		}
	}
	return out, true
}

// CountActive returns how many terms are flagged active.
func CountActive(terms []TermState) int {
	n := 0
	for _, t := range terms {
		if t.Active {
			n++
		}
	}
	return n
}
