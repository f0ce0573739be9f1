package intake

import (
	"encoding/json"
	"slices"
)

// Record is a form entry that knows how to normalize itself and whether its
// required field is present.
type Record[R any] interface {
	Normalize() R
	Valid() bool
}

// List is an ordered, immutable sequence of records. Every operation returns
// a new List; the receiver is never modified. Duplicates are allowed.
type List[R Record[R]] struct {
	items []R
}

// ListOf builds a list from already-normalized records.
func ListOf[R Record[R]](items ...R) List[R] {
	return List[R]{items: slices.Clone(items)}
}

// Add normalizes r and appends it when its required field is non-empty.
// A rejected record leaves the list unchanged and reports false.
func (l List[R]) Add(r R) (List[R], bool) {
	r = r.Normalize()
	if !r.Valid() {
		return l, false
	}
	return l.Append(r), true
}

// Append adds r without normalization or validation.
func (l List[R]) Append(r R) List[R] {
	items := make([]R, 0, len(l.items)+1)
	items = append(items, l.items...)
	items = append(items, r)
	return List[R]{items: items}
}

// RemoveAt drops the record at index i, keeping the relative order of the
// rest. An out-of-range index leaves the list unchanged and reports false.
func (l List[R]) RemoveAt(i int) (List[R], bool) {
	if i < 0 || i >= len(l.items) {
		return l, false
	}
	items := make([]R, 0, len(l.items)-1)
	items = append(items, l.items[:i]...)
	items = append(items, l.items[i+1:]...)
	return List[R]{items: items}, true
}

// Items returns a copy of the records.
func (l List[R]) Items() []R {
	if len(l.items) == 0 {
		return []R{}
	}
	return slices.Clone(l.items)
}

// At returns the record at index i.
func (l List[R]) At(i int) (R, bool) {
	var zero R
	if i < 0 || i >= len(l.items) {
		return zero, false
	}
	return l.items[i], true
}

// Len returns the number of records.
func (l List[R]) Len() int {
	return len(l.items)
}

func (l List[R]) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Items())
}

func (l *List[R]) UnmarshalJSON(data []byte) error {
	var items []R
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	l.items = items
	return nil
}
