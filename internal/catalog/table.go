package catalog

import "fmt"

// Table is an immutable keyed collection that remembers declaration order.
type Table[T any] struct {
	order []string
	byKey map[string]T
}

// NewTable indexes records by key. kind names the record type in errors.
func NewTable[T any](kind string, records []T, key func(T) string) (*Table[T], error) {
	t := &Table[T]{
		order: make([]string, 0, len(records)),
		byKey: make(map[string]T, len(records)),
	}
	for i, r := range records {
		k := key(r)
		if k == "" {
			return nil, fmt.Errorf("catalog: %s #%d has an empty key", kind, i+1)
		}
		if _, dup := t.byKey[k]; dup {
			return nil, fmt.Errorf("catalog: duplicate %s %q", kind, k)
		}
		t.order = append(t.order, k)
		t.byKey[k] = r
	}
	return t, nil
}

// Get returns the record for key.
func (t *Table[T]) Get(key string) (T, bool) {
	r, ok := t.byKey[key]
	return r, ok
}

// All returns every record in declaration order.
func (t *Table[T]) All() []T {
	return t.Filter(func(T) bool { return true })
}

// Filter returns the records keep accepts, in declaration order.
func (t *Table[T]) Filter(keep func(T) bool) []T {
	out := make([]T, 0, len(t.order))
	for _, k := range t.order {
		if r := t.byKey[k]; keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Len is the number of records.
func (t *Table[T]) Len() int {
	return len(t.order)
}
