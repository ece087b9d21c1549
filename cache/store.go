package cache

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pagekit/pagecore/page"
	"github.com/pagekit/pagecore/snapshot"
)

// DefaultCapacity is the expected item count per full page when none is
// configured.
const DefaultCapacity = 20

// Observer receives a notification for every observable page-state
// mutation.
type Observer[T any] func(page.State[T])

// LogSink records tagged messages. Implemented by logging.Logger.
type LogSink interface {
	Log(tag, message string)
}

// Store owns the page-index to page-state mapping, the dirty set, the
// context window bounds and the identity sequence. All mutation goes
// through its methods.
type Store[T any] struct {
	mu       sync.RWMutex
	seq      page.Sequence
	entries  map[int]page.State[T]
	dirty    map[int]bool
	start    int
	end      int
	capacity int
	epoch    uint64

	observer Observer[T]
	sink     LogSink
}

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithCapacity sets the expected item count per full page.
func WithCapacity[T any](n int) Option[T] {
	return func(s *Store[T]) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithObserver registers the page-state update notification callback.
func WithObserver[T any](fn Observer[T]) Option[T] {
	return func(s *Store[T]) { s.observer = fn }
}

// WithLogger sets the log sink.
func WithLogger[T any](sink LogSink) Option[T] {
	return func(s *Store[T]) { s.sink = sink }
}

// New creates an empty store with an unstarted (0,0) window.
func New[T any](opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		entries:  make(map[int]page.State[T]),
		dirty:    make(map[int]bool),
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sequence returns the identity sequence owned by this store. States
// written into the store must be numbered by it.
func (s *Store[T]) Sequence() *page.Sequence { return &s.seq }

// Get returns the current state for a page, if any. Dirty pages are still
// returned; check Dirty to decide whether to trust them.
func (s *Store[T]) Get(p int) (page.State[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.entries[p]
	return st, ok
}

// Put inserts or replaces the entry at st.Page(). A put adjacent to the
// window grows it; a far put relocates the window to the new page and
// marks every page left behind dirty. A Success or Empty put clears the
// page's dirty flag. Puts carrying an identity older than the current
// entry are dropped so a late fetch never overwrites fresher state.
// An optional true suppresses the observer notification.
func (s *Store[T]) Put(st page.State[T], silently ...bool) {
	quiet := len(silently) > 0 && silently[0]
	p := st.Page()

	s.mu.Lock()
	if cur, ok := s.entries[p]; ok && cur.ID() > st.ID() {
		s.mu.Unlock()
		s.logf("put: dropped stale state for page %d (id %d < %d)", p, st.ID(), cur.ID())
		return
	}

	switch {
	case s.start == 0 && s.end == 0:
		s.start, s.end = p, p
	case p >= s.start && p <= s.end:
		// in-window replace, bounds unchanged
	case p > s.end && page.Near(p, s.end):
		s.end = p
	case p < s.start && page.Near(p, s.start):
		s.start = p
	default:
		// far relocation: the old window is left behind dirty and the
		// gap is never backfilled
		for q := s.start; q <= s.end; q++ {
			if _, ok := s.entries[q]; ok {
				s.dirty[q] = true
			}
		}
		s.start, s.end = p, p
		s.epoch++
	}

	s.entries[p] = st
	if k := st.Kind(); k == page.KindSuccess || k == page.KindEmpty {
		delete(s.dirty, p)
	}
	s.mu.Unlock()

	if !quiet {
		s.notify(st)
	}
}

// Invalidate marks a cached page dirty without dropping its items.
func (s *Store[T]) Invalidate(p int) {
	s.mu.Lock()
	if _, ok := s.entries[p]; ok {
		s.dirty[p] = true
	}
	s.mu.Unlock()
}

// InvalidateAll marks every cached page dirty.
func (s *Store[T]) InvalidateAll() {
	s.mu.Lock()
	for p := range s.entries {
		s.dirty[p] = true
	}
	s.mu.Unlock()
}

// Dirty reports whether a page must be re-fetched before being trusted.
func (s *Store[T]) Dirty(p int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty[p]
}

// Window returns the current context window bounds. (0,0) means the cache
// has not started.
func (s *Store[T]) Window() (start, end int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.start, s.end
}

// Capacity returns the expected item count per full page.
func (s *Store[T]) Capacity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capacity
}

// Epoch returns the window epoch. The epoch increments whenever the window
// discontinuously relocates or the cache is reset/restored; fetches record
// it at launch and discard their result when it no longer matches.
func (s *Store[T]) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// Reset marks every cached page dirty and returns the window to the
// unstarted state. The cached items stay queryable.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	for p := range s.entries {
		s.dirty[p] = true
	}
	s.start, s.end = 0, 0
	s.epoch++
	s.mu.Unlock()
}

// SaveState produces a flat snapshot of the cache. Progress and Error
// entries are downgraded to SUCCESS (non-empty items) or EMPTY and flagged
// dirty; Success and Empty entries keep their current dirty flag. Entries
// are ordered by page index.
func (s *Store[T]) SaveState() *snapshot.Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pages := make([]int, 0, len(s.entries))
	for p := range s.entries {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	snap := &snapshot.Snapshot[T]{
		Entries:          make([]snapshot.Entry[T], 0, len(pages)),
		StartContextPage: s.start,
		EndContextPage:   s.end,
		Capacity:         s.capacity,
	}
	for _, p := range pages {
		st := s.entries[p]
		e := snapshot.Entry[T]{Page: p, Data: st.Items(), WasDirty: s.dirty[p]}
		switch st.Kind() {
		case page.KindSuccess:
			e.Type = snapshot.TypeSuccess
		case page.KindEmpty:
			e.Type = snapshot.TypeEmpty
			e.Data = nil
		default:
			// in-flight or failed pages are persisted as their cached
			// items and must be re-fetched after restore
			e.WasDirty = true
			if len(e.Data) == 0 {
				e.Type = snapshot.TypeEmpty
				e.Data = nil
			} else {
				e.Type = snapshot.TypeSuccess
			}
		}
		snap.Entries = append(snap.Entries, e)
	}
	return snap
}

// RestoreState atomically replaces all entries, dirty flags, window bounds
// and capacity from the snapshot. Restored states receive fresh identities;
// identities are never persisted. When silently is false, one notification
// fires per restored page after the replacement completes.
func (s *Store[T]) RestoreState(snap *snapshot.Snapshot[T], silently bool) error {
	if snap == nil {
		return fmt.Errorf("cache: restore: nil snapshot")
	}
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("cache: restore: %w", err)
	}

	s.mu.Lock()
	entries := make(map[int]page.State[T], len(snap.Entries))
	dirty := make(map[int]bool)
	restored := make([]page.State[T], 0, len(snap.Entries))
	for _, e := range snap.Entries {
		var st page.State[T]
		var err error
		if e.Type == snapshot.TypeEmpty || len(e.Data) == 0 {
			st, err = page.NewEmpty[T](&s.seq, e.Page)
		} else {
			st, err = page.NewSuccess(&s.seq, e.Page, e.Data)
		}
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("cache: restore page %d: %w", e.Page, err)
		}
		entries[e.Page] = st
		if e.WasDirty {
			dirty[e.Page] = true
		}
		restored = append(restored, st)
	}
	s.entries = entries
	s.dirty = dirty
	s.start = snap.StartContextPage
	s.end = snap.EndContextPage
	if snap.Capacity > 0 {
		s.capacity = snap.Capacity
	}
	s.epoch++
	s.mu.Unlock()

	if !silently {
		for _, st := range restored {
			s.notify(st)
		}
	}
	return nil
}

// notify emits the observer callback outside the store lock so observers
// may call back into the store.
func (s *Store[T]) notify(st page.State[T]) {
	if s.observer == nil {
		return
	}
	s.observer(st)
}

func (s *Store[T]) logf(format string, args ...any) {
	if s.sink == nil {
		return
	}
	s.sink.Log("cache", fmt.Sprintf(format, args...))
}
