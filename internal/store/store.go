// Package store holds per-entity state containers that sit between request
// handlers and the REST backend. A Store keeps the fetched list, the status
// flags and a draft form whose fields are validated through a static Schema.
package store

import (
	"context"
	"fmt"
	"sync"
)

// Backend is the REST surface a Store needs for one entity family.
type Backend[T any, D any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft D) (T, error)
}

// State is a point-in-time copy of a Store.
type State[T any, D any] struct {
	Items         []T              `json:"items"`
	Form          D                `json:"form"`
	Errors        map[Field]string `json:"errors"`
	IsLoading     bool             `json:"isLoading"`
	Error         *Error           `json:"error"`
	Success       string           `json:"success,omitempty"`
	IsInitialized bool             `json:"isInitialized"`
}

type Options[T any, D any] struct {
	// Entity names the family in user-facing messages, e.g. "Hotel".
	Entity  string
	Initial []T
	// Draft builds a blank form. The zero value of D is used when nil.
	Draft func() D
}

type Store[T any, D any] struct {
	mu      sync.Mutex
	backend Backend[T, D]
	schema  Schema[D]
	opts    Options[T, D]
	state   State[T, D]

	// gen stamps list snapshots; a Fetch applies only if gen is unchanged
	// when it returns. epoch changes on Reset only.
	gen      uint64
	epoch    uint64
	inflight int
}

func New[T any, D any](backend Backend[T, D], schema Schema[D], opts Options[T, D]) *Store[T, D] {
	if opts.Entity == "" {
		opts.Entity = "Item"
	}
	s := &Store[T, D]{
		backend: backend,
		schema:  schema,
		opts:    opts,
	}
	s.state = s.initialState()
	return s
}

func (s *Store[T, D]) initialState() State[T, D] {
	items := make([]T, len(s.opts.Initial))
	copy(items, s.opts.Initial)
	return State[T, D]{
		Items:  items,
		Form:   s.blankDraft(),
		Errors: map[Field]string{},
	}
}

func (s *Store[T, D]) blankDraft() D {
	if s.opts.Draft != nil {
		return s.opts.Draft()
	}
	var zero D
	return zero
}

func (s *Store[T, D]) Schema() Schema[D] {
	return s.schema
}

// Snapshot returns a copy of the current state that callers may keep.
func (s *Store[T, D]) Snapshot() State[T, D] {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.Items = make([]T, len(s.state.Items))
	copy(out.Items, s.state.Items)
	out.Errors = make(map[Field]string, len(s.state.Errors))
	for k, v := range s.state.Errors {
		out.Errors[k] = v
	}
	return out
}

func (s *Store[T, D]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, len(s.state.Items))
	copy(out, s.state.Items)
	return out
}

// Filter returns the held items matching keep, in list order.
func (s *Store[T, D]) Filter(keep func(T) bool) []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, 0)
	for _, item := range s.state.Items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Fetch replaces the held list with the backend's. Each call is stamped with
// a generation; if a newer Fetch started or a Create succeeded meanwhile this
// response is dropped and ErrSuperseded is returned. On failure the previous
// list is kept and the error is recorded in State.Error as well as returned.
func (s *Store[T, D]) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen, epoch := s.gen, s.epoch
	s.begin()
	s.state.Error = nil
	s.mu.Unlock()

	items, err := s.list(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		return ErrSuperseded
	}
	s.end()
	if gen != s.gen {
		return ErrSuperseded
	}

	if err != nil {
		e := WrapError(err)
		s.state.Error = e
		return e
	}

	if items == nil {
		items = []T{}
	}
	s.state.Items = items
	s.state.IsInitialized = true
	return nil
}

// begin and end track backend calls in flight; IsLoading holds while any is.
func (s *Store[T, D]) begin() {
	s.inflight++
	s.state.IsLoading = true
}

func (s *Store[T, D]) end() {
	s.inflight--
	s.state.IsLoading = s.inflight > 0
}

func (s *Store[T, D]) list(ctx context.Context) (items []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("list %s: panic: %v", s.opts.Entity, r)
		}
	}()
	return s.backend.List(ctx)
}

func (s *Store[T, D]) create(ctx context.Context, draft D) (item T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("create %s: panic: %v", s.opts.Entity, r)
		}
	}()
	return s.backend.Create(ctx, draft)
}

// SetField writes value into the draft without validating it.
func (s *Store[T, D]) SetField(f Field, value any) error {
	spec, ok := s.schema.lookup(f)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return spec.Set(&s.state.Form, value)
}

// ValidateField runs the field's rule against the draft and records or
// clears its entry in the error map.
func (s *Store[T, D]) ValidateField(f Field) bool {
	spec, ok := s.schema.lookup(f)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked(spec)
}

func (s *Store[T, D]) validateLocked(spec FieldSpec[D]) bool {
	if spec.Validate == nil {
		delete(s.state.Errors, spec.Name)
		return true
	}
	if err := spec.Validate(s.state.Form); err != nil {
		s.state.Errors[spec.Name] = err.Error()
		return false
	}
	delete(s.state.Errors, spec.Name)
	return true
}

// ValidateAll validates every field. Afterwards the error map holds exactly
// the fields that failed.
func (s *Store[T, D]) ValidateAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateAllLocked()
}

func (s *Store[T, D]) validateAllLocked() bool {
	s.state.Errors = map[Field]string{}
	ok := true
	for _, f := range s.schema.order {
		if !s.validateLocked(s.schema.specs[f]) {
			ok = false
		}
	}
	return ok
}

// Create submits the draft. The backend is only called when the whole draft
// validates. On success the new entity is appended and the draft cleared; on
// failure the draft is left untouched so the user can retry.
func (s *Store[T, D]) Create(ctx context.Context) (T, error) {
	var zero T

	s.mu.Lock()
	if !s.validateAllLocked() {
		s.state.Success = ""
		s.mu.Unlock()
		return zero, &Error{Kind: KindValidation, Message: fallbackMessages[KindValidation]}
	}
	draft := s.state.Form
	epoch := s.epoch
	s.begin()
	s.state.Error = nil
	s.state.Success = ""
	s.mu.Unlock()

	created, err := s.create(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		if err != nil {
			return zero, WrapError(err)
		}
		return created, nil
	}
	s.end()

	if err != nil {
		e := WrapError(err)
		s.state.Error = e
		return zero, e
	}

	// Lists requested before the entity existed must not overwrite it.
	s.gen++
	s.state.Items = append(s.state.Items, created)
	s.state.Form = s.blankDraft()
	s.state.Errors = map[Field]string{}
	s.state.Success = fmt.Sprintf("%s created successfully", s.opts.Entity)
	return created, nil
}

// ResetForm clears the draft and its field errors.
func (s *Store[T, D]) ResetForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Form = s.blankDraft()
	s.state.Errors = map[Field]string{}
}

// ResetMessages clears the error and success messages.
func (s *Store[T, D]) ResetMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = nil
	s.state.Success = ""
}

// Reset restores the state the store was constructed with. It is the
// teardown entry point; IsInitialized only goes back to false here.
func (s *Store[T, D]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.epoch++
	s.inflight = 0
	s.state = s.initialState()
}
