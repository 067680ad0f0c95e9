package listview

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
)

// State is the load state of a view.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

// EmptyKind says why a view has nothing to show.
type EmptyKind int

const (
	// EmptyNone means the filtered set has records.
	EmptyNone EmptyKind = iota
	// EmptyNoData means nothing exists for the view at all.
	EmptyNoData
	// EmptyNoMatches means records exist but none pass the criteria.
	EmptyNoMatches
)

var (
	// ErrNotFound is returned when a patch names an id the store does not hold.
	ErrNotFound = errors.New("record not found")
	// ErrConcluded is returned when a pending patch is committed or rolled back twice.
	ErrConcluded = errors.New("pending update already concluded")
)

// Fetch is the ticket for one load. Only the newest ticket may write its
// result; starting a new load cancels the previous ticket's context.
type Fetch struct {
	gen      uint64
	blocking bool
	cancel   context.CancelFunc
}

// Blocking is true for a first load, where there is nothing to keep on
// screen, and false for a refresh that keeps the old records visible.
func (f *Fetch) Blocking() bool { return f.blocking }

// Store is the in-memory state of one list view: the fetched records, the
// active criteria, the derived filtered set and the current page.
type Store[T any] struct {
	mu sync.Mutex

	name   string
	fields Fields[T]
	id     func(T) string
	logger *slog.Logger

	records  []T
	filtered []T
	loaded   bool
	criteria Criteria
	page     PageState
	state    State
	err      error
	message  string

	gen    uint64
	cancel context.CancelFunc
	// loads counts successful loads; a pending patch only rolls back into
	// the load it was made against.
	loads uint64
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for state transitions.
func WithLogger(l *slog.Logger) StoreOption {
	return func(o *storeOptions) { o.logger = l }
}

// NewStore creates an idle store. id extracts the record identity used by
// Patch.
func NewStore[T any](name string, pageSize int, fields Fields[T], id func(T) string, opts ...StoreOption) *Store[T] {
	o := storeOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{
		name:   name,
		fields: fields,
		id:     id,
		logger: o.logger.With("view", name),
		page:   NewPageState(pageSize),
		state:  StateIdle,
	}
}

// Name returns the view name.
func (s *Store[T]) Name() string { return s.name }

// Begin starts a load. Any load still in flight is superseded: its context
// is cancelled and its result will be discarded. Records from an earlier
// successful load stay in place until the new one lands.
func (s *Store[T]) Begin(ctx context.Context) (*Fetch, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	fctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state = StateLoading
	f := &Fetch{gen: s.gen, blocking: !s.loaded, cancel: cancel}
	s.logger.Debug("fetch start", "gen", f.gen, "blocking", f.blocking)
	return f, fctx
}

// Succeed stores data from the fetch identified by f. It returns false and
// changes nothing when f has been superseded.
func (s *Store[T]) Succeed(f *Fetch, data []T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.gen != s.gen {
		s.logger.Debug("discarding stale fetch", "gen", f.gen, "current", s.gen)
		return false
	}
	f.cancel()
	s.cancel = nil
	s.records = slices.Clone(data)
	if s.records == nil {
		s.records = []T{}
	}
	s.loaded = true
	s.loads++
	s.state = StateReady
	s.err = nil
	s.message = ""
	s.refilter()
	s.logger.Debug("fetch success", "gen", f.gen, "records", len(s.records), "filtered", len(s.filtered))
	return true
}

// Fail records the error of the fetch identified by f. Previously loaded
// records are kept. message is the text shown to the user. It returns false
// when f has been superseded.
func (s *Store[T]) Fail(f *Fetch, err error, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.gen != s.gen {
		s.logger.Debug("discarding stale fetch error", "gen", f.gen, "current", s.gen, "error", err)
		return false
	}
	f.cancel()
	s.cancel = nil
	s.state = StateError
	s.err = err
	s.message = message
	s.logger.Debug("fetch error", "gen", f.gen, "error", err)
	return true
}

// refilter recomputes the filtered set and returns to page 1. Callers hold mu.
func (s *Store[T]) refilter() {
	s.filtered = Apply(s.records, s.fields, s.criteria)
	s.page.Reset()
}

// SetCriteria replaces the criteria wholesale.
func (s *Store[T]) SetCriteria(c Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c.Clone()
	s.refilter()
}

// SetEqual sets one equality filter. AnyValue or "" clears it.
func (s *Store[T]) SetEqual(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.criteria.Equals == nil {
		s.criteria.Equals = make(map[string]string)
	}
	s.criteria.Equals[key] = value
	s.refilter()
}

// SetSearch sets the free-text search.
func (s *Store[T]) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Search = text
	s.refilter()
}

// SetRange sets the bounds of one range filter.
func (s *Store[T]) SetRange(key string, r Range) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.criteria.Ranges == nil {
		s.criteria.Ranges = make(map[string]Range)
	}
	s.criteria.Ranges[key] = r
	s.refilter()
}

// ClearFilters resets the criteria to defaults.
func (s *Store[T]) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = DefaultCriteria()
	s.refilter()
}

// Goto moves to page n if it exists.
func (s *Store[T]) Goto(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page.Goto(n, TotalPages(len(s.filtered), s.page.Size))
}

// Next moves one page forward if possible.
func (s *Store[T]) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page.Next(TotalPages(len(s.filtered), s.page.Size))
}

// Prev moves one page back if possible.
func (s *Store[T]) Prev() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page.Prev(TotalPages(len(s.filtered), s.page.Size))
}

// Window returns the visible page.
func (s *Store[T]) Window() Page[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Paginate(s.filtered, s.page.Current, s.page.Size)
}

// PageNumbers returns the page-button window for the current page.
func (s *Store[T]) PageNumbers() []int {
	return s.Window().Numbers()
}

// CurrentPage returns the 1-based current page.
func (s *Store[T]) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page.Current
}

// State returns the load state.
func (s *Store[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error of the last failed load, if the store is in StateError.
func (s *Store[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Message returns the user-facing message of the last failed load.
func (s *Store[T]) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Criteria returns a copy of the active criteria.
func (s *Store[T]) Criteria() Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria.Clone()
}

// Records returns a copy of every loaded record.
func (s *Store[T]) Records() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records)
}

// Filtered returns a copy of the full filtered set, unpaginated.
func (s *Store[T]) Filtered() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.filtered)
}

// Empty explains an empty filtered set.
func (s *Store[T]) Empty() EmptyKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case len(s.records) == 0:
		return EmptyNoData
	case len(s.filtered) == 0:
		return EmptyNoMatches
	}
	return EmptyNone
}

// Pending is a local patch awaiting the server's verdict. Exactly one of
// Commit or Rollback concludes it.
type Pending[T any] struct {
	s     *Store[T]
	id    string
	field string
	prev  T
	loads uint64
	done  bool
}

// Patch applies fn to the record with the given id right away. field names
// what fn changes; when an active filter reads it the filtered set is
// rebuilt and the page reset, otherwise the filtered copy is patched in place.
func (s *Store[T]) Patch(id, field string, fn func(*T)) (*Pending[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	prev := s.records[i]
	fn(&s.records[i])
	s.applyChange(id, field, s.records[i])
	s.logger.Debug("optimistic patch", "id", id, "field", field)
	return &Pending[T]{s: s, id: id, field: field, prev: prev, loads: s.loads}, nil
}

// Commit keeps the patched value.
func (p *Pending[T]) Commit() error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if p.done {
		return ErrConcluded
	}
	p.done = true
	return nil
}

// Rollback restores the value from before the patch. If a fresh load has
// landed since, its data is newer than the saved value and nothing is
// restored.
func (p *Pending[T]) Rollback() error {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.done {
		return ErrConcluded
	}
	p.done = true

	i := s.indexOf(p.id)
	if i < 0 || s.loads != p.loads {
		return nil
	}
	s.records[i] = p.prev
	s.applyChange(p.id, p.field, p.prev)
	s.logger.Debug("rolled back patch", "id", p.id, "field", p.field)
	return nil
}

// applyChange propagates a changed record into the filtered set. Callers hold mu.
func (s *Store[T]) applyChange(id, field string, v T) {
	if s.fields.Reads(s.criteria, field) {
		s.refilter()
		return
	}
	for j := range s.filtered {
		if s.id(s.filtered[j]) == id {
			s.filtered[j] = v
			return
		}
	}
}

func (s *Store[T]) indexOf(id string) int {
	for i := range s.records {
		if s.id(s.records[i]) == id {
			return i
		}
	}
	return -1
}
