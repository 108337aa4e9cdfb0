package pagination

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
)

// CompareFunc orders two items ascending.
type CompareFunc[T any] func(a, b T) int

// Sorter sorts a slice by a named field.
type Sorter[T any] struct {
	fields map[string]CompareFunc[T]
}

// NewSorter creates a Sorter over the given field comparators.
func NewSorter[T any](fields map[string]CompareFunc[T]) *Sorter[T] {
	return &Sorter[T]{fields: fields}
}

// IsValidField checks if field can be sorted on.
func (s *Sorter[T]) IsValidField(field string) bool {
	_, ok := s.fields[field]
	return ok
}

// ValidFields returns the sortable field names in order.
func (s *Sorter[T]) ValidFields() []string {
	out := make([]string, 0, len(s.fields))
	for f := range s.fields {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Sort returns a stably sorted copy of items. An empty field keeps the input order.
func (s *Sorter[T]) Sort(items []T, field, order string) ([]T, error) {
	out := slices.Clone(items)
	if field == "" {
		return out, nil
	}
	fn, ok := s.fields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %v)", ErrInvalidSortField, field, s.ValidFields())
	}
	slices.SortStableFunc(out, func(a, b T) int {
		if order == SortOrderDesc {
			return fn(b, a)
		}
		return fn(a, b)
	})
	return out, nil
}

// Apply sorts items and cuts the requested window.
func Apply[T any](items []T, p Params, s *Sorter[T]) ([]T, Meta, error) {
	if err := p.Validate(); err != nil {
		return nil, Meta{}, err
	}
	field, order, err := ParseSort(p.Sort)
	if err != nil {
		return nil, Meta{}, err
	}
	sorted, err := s.Sort(items, field, order)
	if err != nil {
		return nil, Meta{}, err
	}

	meta := NewMeta(p, len(sorted))
	offset, limit := p.Window()
	start := min(offset, len(sorted))
	end := len(sorted)
	if limit > 0 {
		end = min(start+limit, len(sorted))
	}
	return sorted[start:end], meta, nil
}

// Compare is cmp.Compare lifted over a key.
func Compare[T any, K cmp.Ordered](key func(T) K) CompareFunc[T] {
	return func(a, b T) int { return cmp.Compare(key(a), key(b)) }
}
