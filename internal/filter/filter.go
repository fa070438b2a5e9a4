// Package filter derives list views from fetched collections. Every function
// is pure: inputs are never modified and results are fresh slices.
package filter

import (
	"sort"
	"strings"
	"time"
)

// All is the sentinel select value that disables a filter.
const All = "all"

// DateLayout is the calendar-day format used by date filters.
const DateLayout = "2006-01-02"

// Predicate reports whether an item belongs in the view. A nil Predicate is inactive.
type Predicate[T any] func(T) bool

// Unset reports whether a filter value disables its predicate.
func Unset(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || strings.EqualFold(value, All)
}

// Equals matches items whose field equals value exactly.
func Equals[T any](value string, field func(T) string) Predicate[T] {
	if Unset(value) {
		return nil
	}
	return func(item T) bool {
		return field(item) == value
	}
}

// Contains matches items whose field contains value, ignoring case.
func Contains[T any](value string, field func(T) string) Predicate[T] {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	needle := strings.ToLower(value)
	return func(item T) bool {
		return strings.Contains(strings.ToLower(field(item)), needle)
	}
}

// SameDay matches items whose timestamp falls on the UTC calendar day given
// as YYYY-MM-DD. An unparsable day matches nothing.
func SameDay[T any](day string, field func(T) time.Time) Predicate[T] {
	if Unset(day) {
		return nil
	}
	want, err := time.Parse(DateLayout, strings.TrimSpace(day))
	if err != nil {
		return func(T) bool { return false }
	}
	wantDay := want.Format(DateLayout)
	return func(item T) bool {
		ts := field(item)
		if ts.IsZero() {
			return false
		}
		return ts.UTC().Format(DateLayout) == wantDay
	}
}

// Bool maps a select value onto a boolean field. whenTrue selects items
// where the field is true, whenFalse items where it is false. Any other
// value matches nothing.
func Bool[T any](value, whenTrue, whenFalse string, field func(T) bool) Predicate[T] {
	if Unset(value) {
		return nil
	}
	return func(item T) bool {
		switch value {
		case whenTrue:
			return field(item)
		case whenFalse:
			return !field(item)
		default:
			return false
		}
	}
}

// Match wraps an arbitrary comparison, inactive when value is unset.
func Match[T any](value string, match func(item T, value string) bool) Predicate[T] {
	if Unset(value) {
		return nil
	}
	return func(item T) bool {
		return match(item, value)
	}
}

// Apply keeps the items accepted by every active predicate, in source order.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if accepts(item, active) {
			out = append(out, item)
		}
	}
	return out
}

func accepts[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if !p(item) {
			return false
		}
	}
	return true
}

// SortedByTimeDesc returns a copy ordered most recent first. Ties keep source order.
func SortedByTimeDesc[T any](items []T, field func(T) time.Time) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return field(out[i]).After(field(out[j]))
	})
	return out
}
