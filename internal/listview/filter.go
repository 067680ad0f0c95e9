// Package listview holds the client-side list machinery shared by every
// dashboard: criteria filtering, page slicing and the per-view state store.
package listview

import (
	"strconv"
	"strings"
	"time"
)

// AnyValue is the equality sentinel that matches every record. An empty
// criterion value means the same thing.
const AnyValue = "ALL"

// IsAny reports whether an equality criterion value is the "any" sentinel.
func IsAny(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, AnyValue)
}

// Range holds optional bounds for a range filter. Empty strings are unset.
// Bounds are kept as the user typed them; they are parsed against the
// field's kind when the filter runs.
type Range struct {
	Min string `json:"min,omitempty"`
	Max string `json:"max,omitempty"`
}

// IsZero reports whether neither bound is set.
func (r Range) IsZero() bool {
	return strings.TrimSpace(r.Min) == "" && strings.TrimSpace(r.Max) == ""
}

// Criteria is the active set of filter and search constraints for a view.
type Criteria struct {
	Equals map[string]string `json:"equals,omitempty"`
	Search string            `json:"search,omitempty"`
	Ranges map[string]Range  `json:"ranges,omitempty"`
}

// DefaultCriteria returns criteria with no active filters.
func DefaultCriteria() Criteria {
	return Criteria{}
}

// IsZero reports whether no predicate is active.
func (c Criteria) IsZero() bool {
	if strings.TrimSpace(c.Search) != "" {
		return false
	}
	for _, v := range c.Equals {
		if !IsAny(v) {
			return false
		}
	}
	for _, r := range c.Ranges {
		if !r.IsZero() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy so callers cannot mutate store-owned maps.
func (c Criteria) Clone() Criteria {
	out := Criteria{Search: c.Search}
	if c.Equals != nil {
		out.Equals = make(map[string]string, len(c.Equals))
		for k, v := range c.Equals {
			out.Equals[k] = v
		}
	}
	if c.Ranges != nil {
		out.Ranges = make(map[string]Range, len(c.Ranges))
		for k, v := range c.Ranges {
			out.Ranges[k] = v
		}
	}
	return out
}

// RangeKind selects how range bounds are parsed.
type RangeKind int

const (
	RangeNumber RangeKind = iota
	RangeTime
)

// RangeField extracts a comparable value from a record. The bool result is
// false when the record has no usable value for the field.
type RangeField[T any] struct {
	Kind   RangeKind
	Number func(T) (float64, bool)
	Time   func(T) (time.Time, bool)
}

// NumberField builds a numeric range field.
func NumberField[T any](fn func(T) (float64, bool)) RangeField[T] {
	return RangeField[T]{Kind: RangeNumber, Number: fn}
}

// TimeField builds a date range field.
func TimeField[T any](fn func(T) (time.Time, bool)) RangeField[T] {
	return RangeField[T]{Kind: RangeTime, Time: fn}
}

// SearchField is a named text field matched by free-text search. Value
// returns false when the record has no value, and the field is skipped.
type SearchField[T any] struct {
	Name  string
	Value func(T) (string, bool)
}

// Fields is the per-view field configuration the filter engine runs against.
type Fields[T any] struct {
	Equality   map[string]func(T) string
	Searchable []SearchField[T]
	Ranges     map[string]RangeField[T]
}

// Reads reports whether an active predicate of c reads field. Local
// patches to such a field must re-run the filter.
func (f Fields[T]) Reads(c Criteria, field string) bool {
	if _, ok := f.Equality[field]; ok && !IsAny(c.Equals[field]) {
		return true
	}
	if _, ok := f.Ranges[field]; ok && !c.Ranges[field].IsZero() {
		return true
	}
	if strings.TrimSpace(c.Search) == "" {
		return false
	}
	for _, s := range f.Searchable {
		if s.Name == field {
			return true
		}
	}
	return false
}

// Apply returns the records matching every active predicate in c, in input
// order. The input slice is never modified. Criteria keys without a
// configured accessor are ignored.
func Apply[T any](records []T, fields Fields[T], c Criteria) []T {
	m := compile(fields, c)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record passes c.
func Matches[T any](r T, fields Fields[T], c Criteria) bool {
	return compile(fields, c).match(r)
}

type equalPred[T any] struct {
	get  func(T) string
	want string
}

type rangePred[T any] struct {
	field    RangeField[T]
	min, max float64
	hasMin   bool
	hasMax   bool
	tmin     time.Time
	tmax     time.Time
}

type matcher[T any] struct {
	equals []equalPred[T]
	search string
	fields []SearchField[T]
	ranges []rangePred[T]
}

func compile[T any](fields Fields[T], c Criteria) matcher[T] {
	m := matcher[T]{
		search: strings.ToLower(strings.TrimSpace(c.Search)),
		fields: fields.Searchable,
	}
	for key, want := range c.Equals {
		get, ok := fields.Equality[key]
		if !ok || IsAny(want) {
			continue
		}
		m.equals = append(m.equals, equalPred[T]{get: get, want: want})
	}
	for key, r := range c.Ranges {
		rf, ok := fields.Ranges[key]
		if !ok {
			continue
		}
		if p, ok := compileRange(rf, r); ok {
			m.ranges = append(m.ranges, p)
		}
	}
	return m
}

// compileRange parses both bounds. An unparsable bound counts as unset; the
// predicate is dropped when neither bound survives.
func compileRange[T any](rf RangeField[T], r Range) (rangePred[T], bool) {
	p := rangePred[T]{field: rf}
	switch rf.Kind {
	case RangeNumber:
		if rf.Number == nil {
			return p, false
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(r.Min), 64); err == nil {
			p.min, p.hasMin = v, true
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(r.Max), 64); err == nil {
			p.max, p.hasMax = v, true
		}
	case RangeTime:
		if rf.Time == nil {
			return p, false
		}
		if t, _, ok := parseDate(r.Min); ok {
			p.tmin, p.hasMin = t, true
		}
		if t, dateOnly, ok := parseDate(r.Max); ok {
			// A bare date as upper bound covers that whole day.
			if dateOnly {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			p.tmax, p.hasMax = t, true
		}
	}
	return p, p.hasMin || p.hasMax
}

func parseDate(s string) (t time.Time, dateOnly bool, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, true
	}
	return time.Time{}, false, false
}

func (m matcher[T]) match(r T) bool {
	for _, p := range m.equals {
		if p.get(r) != p.want {
			return false
		}
	}
	if m.search != "" && !m.matchSearch(r) {
		return false
	}
	for _, p := range m.ranges {
		if !p.match(r) {
			return false
		}
	}
	return true
}

func (m matcher[T]) matchSearch(r T) bool {
	for _, f := range m.fields {
		v, ok := f.Value(r)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(v), m.search) {
			return true
		}
	}
	return false
}

func (p rangePred[T]) match(r T) bool {
	switch p.field.Kind {
	case RangeNumber:
		v, ok := p.field.Number(r)
		if !ok {
			return false
		}
		if p.hasMin && v < p.min {
			return false
		}
		if p.hasMax && v > p.max {
			return false
		}
	case RangeTime:
		v, ok := p.field.Time(r)
		if !ok || v.IsZero() {
			return false
		}
		if p.hasMin && v.Before(p.tmin) {
			return false
		}
		if p.hasMax && v.After(p.tmax) {
			return false
		}
	}
	return true
}
