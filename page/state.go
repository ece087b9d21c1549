package page

import (
	"fmt"
	"sync/atomic"
)

// Kind identifies the variant of a State.
type Kind uint8

const (
	// KindProgress marks a page whose fetch is in flight.
	KindProgress Kind = iota + 1
	// KindSuccess marks a page fetched with at least one item.
	KindSuccess
	// KindEmpty marks a page fetched with legitimately zero items.
	KindEmpty
	// KindError marks a page whose last fetch failed.
	KindError
)

// String returns the kind name as used in logs and snapshots.
func (k Kind) String() string {
	switch k {
	case KindProgress:
		return "PROGRESS"
	case KindSuccess:
		return "SUCCESS"
	case KindEmpty:
		return "EMPTY"
	case KindError:
		return "ERROR"
	default:
		return fmt.Sprintf("KIND(%d)", uint8(k))
	}
}

// Sequence hands out identity numbers for states. Each cache owns its own
// Sequence so independent caches never share identity state. The zero
// value is ready to use.
type Sequence struct {
	n atomic.Uint64
}

// Next returns the next identity number, starting at 1.
func (s *Sequence) Next() uint64 {
	return s.n.Add(1)
}

// State is an immutable record of one page's last-known status and cached
// items. Construct states through NewProgress, NewSuccess, NewEmpty and
// NewError; the zero State is invalid.
type State[T any] struct {
	kind  Kind
	page  int
	items []T
	err   error
	id    uint64
}

// ErrEmptySuccess is returned when a Success state is constructed with an
// empty item list. Use NewEmpty for pages with zero items.
var ErrEmptySuccess = fmt.Errorf("page: success state requires a non-empty item list")

func validPage(p int) error {
	if p < 1 {
		return fmt.Errorf("page: index must be >= 1, got %d", p)
	}
	return nil
}

// NewProgress returns a Progress state for the given page. cached is the
// last known item list, kept for display continuity while the fetch runs;
// it may be nil.
func NewProgress[T any](seq *Sequence, p int, cached []T) (State[T], error) {
	if err := validPage(p); err != nil {
		return State[T]{}, err
	}
	return State[T]{kind: KindProgress, page: p, items: cloneItems(cached), id: seq.Next()}, nil
}

// NewSuccess returns a Success state for the given page. items must be
// non-empty; constructing a Success with zero items fails with
// ErrEmptySuccess.
func NewSuccess[T any](seq *Sequence, p int, items []T) (State[T], error) {
	if err := validPage(p); err != nil {
		return State[T]{}, err
	}
	if len(items) == 0 {
		return State[T]{}, ErrEmptySuccess
	}
	return State[T]{kind: KindSuccess, page: p, items: cloneItems(items), id: seq.Next()}, nil
}

// NewEmpty returns an Empty state: a successfully fetched page that holds
// zero items. This is the only success-like variant allowed to be empty.
func NewEmpty[T any](seq *Sequence, p int) (State[T], error) {
	if err := validPage(p); err != nil {
		return State[T]{}, err
	}
	return State[T]{kind: KindEmpty, page: p, items: []T{}, id: seq.Next()}, nil
}

// NewError returns an Error state carrying the fetch failure and the last
// known cached items for the page.
func NewError[T any](seq *Sequence, p int, cause error, cached []T) (State[T], error) {
	if err := validPage(p); err != nil {
		return State[T]{}, err
	}
	return State[T]{kind: KindError, page: p, items: cloneItems(cached), err: cause, id: seq.Next()}, nil
}

// Kind returns the state variant.
func (s State[T]) Kind() Kind { return s.kind }

// Page returns the 1-based page index.
func (s State[T]) Page() int { return s.page }

// Items returns the cached item list. The slice is owned by the state;
// callers must not mutate it.
func (s State[T]) Items() []T { return s.items }

// ID returns the identity number assigned at construction.
func (s State[T]) ID() uint64 { return s.id }

// Err returns the fetch failure for Error states, nil otherwise.
func (s State[T]) Err() error { return s.err }

// Valid reports whether the state was produced by a constructor.
func (s State[T]) Valid() bool { return s.kind != 0 }

// Equal reports identity equality: two states are equal iff they carry the
// same identity number, regardless of page or items.
func (s State[T]) Equal(o State[T]) bool { return s.id == o.id }

// Compare orders states by page index only: -1 if s precedes o, +1 if it
// follows, 0 for the same page.
func (s State[T]) Compare(o State[T]) int {
	switch {
	case s.page < o.page:
		return -1
	case s.page > o.page:
		return 1
	default:
		return 0
	}
}

// Less reports whether s orders before o by page index.
func (s State[T]) Less(o State[T]) bool { return s.page < o.page }

// CopyOption adjusts Copy behavior.
type CopyOption func(*copyConfig)

type copyConfig struct {
	seq *Sequence
}

// Renumber makes Copy assign a fresh identity from seq instead of
// retaining the original one.
func Renumber(seq *Sequence) CopyOption {
	return func(c *copyConfig) { c.seq = seq }
}

// Copy returns a new state preserving variant semantics. The copy retains
// the original identity unless Renumber is given, so by default it still
// compares Equal to the original. A Success whose item list is empty is
// normalized to Empty; an invalid Success is never produced.
func (s State[T]) Copy(opts ...CopyOption) State[T] {
	var cfg copyConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	out := State[T]{kind: s.kind, page: s.page, items: cloneItems(s.items), err: s.err, id: s.id}
	if out.kind == KindSuccess && len(out.items) == 0 {
		out.kind = KindEmpty
	}
	if cfg.seq != nil {
		out.id = cfg.seq.Next()
	}
	return out
}

func (s State[T]) String() string {
	if s.kind == KindError && s.err != nil {
		return fmt.Sprintf("%s(page=%d items=%d id=%d err=%v)", s.kind, s.page, len(s.items), s.id, s.err)
	}
	return fmt.Sprintf("%s(page=%d items=%d id=%d)", s.kind, s.page, len(s.items), s.id)
}

func cloneItems[T any](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
