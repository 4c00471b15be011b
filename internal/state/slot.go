package state

import (
	"fmt"
	"time"
)

// Slot holds one independently fetched piece of view data. A failed fetch
// records its error but keeps the last good value.
type Slot[T any] struct {
	Value     T
	Err       error
	Loaded    bool
	UpdatedAt time.Time
}

// Set stores a successful result.
func (s *Slot[T]) Set(v T, at time.Time) {
	s.Value = v
	s.Err = nil
	s.Loaded = true
	s.UpdatedAt = at
}

// Fail records a failed fetch.
func (s *Slot[T]) Fail(err error, at time.Time) {
	s.Err = err
	s.Loaded = true
	s.UpdatedAt = at
}

// Apply calls Set or Fail depending on err.
func (s *Slot[T]) Apply(v T, err error, at time.Time) {
	if err != nil {
		s.Fail(err, at)
		return
	}
	s.Set(v, at)
}

// Reset returns the slot to its pending state.
func (s *Slot[T]) Reset() {
	var zero T
	s.Value = zero
	s.Err = nil
	s.Loaded = false
	s.UpdatedAt = time.Time{}
}

// Pending reports whether no result has arrived yet.
func (s Slot[T]) Pending() bool { return !s.Loaded }

// Ready reports whether the slot holds a successful result.
func (s Slot[T]) Ready() bool { return s.Loaded && s.Err == nil }

// Message formats the slot error for display, or "" when there is none.
func (s Slot[T]) Message(name string) string {
	if s.Err == nil {
		return ""
	}
	return FailureMessage(name, s.Err)
}

// FailureMessage renders the user-facing text for a failed fetch.
func FailureMessage(name string, err error) string {
	return fmt.Sprintf("Failed to load %s: %v", name, err)
}
