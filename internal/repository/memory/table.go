package memory

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrNoRows is returned when a lookup matches nothing.
	ErrNoRows = errors.New("no rows in result set")
	// ErrStatusChanged is returned by conditional updates whose row is no
	// longer in the expected status.
	ErrStatusChanged = errors.New("row status changed")
)

// table keeps rows keyed by id in insertion order. Rows are copied on the way
// in and out through clone so callers never share slices with stored state.
type table[T any] struct {
	mu    sync.RWMutex
	order []string
	rows  map[string]T
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{
		rows:  make(map[string]T),
		clone: clone,
	}
}

func (t *table[T]) insert(id string, row T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = t.clone(row)
}

// insertUnique inserts row unless an existing row conflicts with it. It
// reports whether the row was inserted.
func (t *table[T]) insertUnique(id string, row T, conflicts func(existing T) bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, existingID := range t.order {
		if conflicts(t.rows[existingID]) {
			return false
		}
	}
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = t.clone(row)
	return true
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNoRows
	}
	return t.clone(row), nil
}

// find returns the first row, in insertion order, matching fn.
func (t *table[T]) find(fn func(T) bool) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, id := range t.order {
		if row := t.rows[id]; fn(row) {
			return t.clone(row), nil
		}
	}
	var zero T
	return zero, ErrNoRows
}

// list returns rows matching fn in insertion order; a nil fn matches all.
func (t *table[T]) list(fn func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		row := t.rows[id]
		if fn == nil || fn(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

// update applies fn to the stored row under the write lock.
func (t *table[T]) update(id string, fn func(*T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		return ErrNoRows
	}
	if err := fn(&row); err != nil {
		return err
	}
	t.rows[id] = t.clone(row)
	return nil
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
