package paginate

import (
	"context"
	"fmt"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/pagekit/pagecore/cache"
	"github.com/pagekit/pagecore/page"
)

// LogSink records tagged messages for operation entry, exit and failure.
// Implemented by logging.Logger. A panicking sink is recovered and
// ignored; sink failures never affect navigation outcome.
type LogSink interface {
	Log(tag, message string)
}

// Locks is the per-operation permission structure queried at call time.
// A set flag makes the corresponding operation fail before any fetch or
// mutation. The Jump flag also gates JumpForward and JumpBack.
type Locks struct {
	Jump           bool
	GoNextPage     bool
	GoPreviousPage bool
	Restart        bool
	Refresh        bool
}

// Option adjusts a single navigation call.
type Option func(*callOptions)

type callOptions struct {
	silentLoading bool
	silentResult  bool
}

// SilentLoading suppresses the intermediate Progress state: the fetch runs
// without an observable loading entry.
func SilentLoading() Option {
	return func(o *callOptions) { o.silentLoading = true }
}

// SilentResult caches the fetch result without announcing it, for silent
// prefetch and warm-up.
func SilentResult() Option {
	return func(o *callOptions) { o.silentResult = true }
}

// Silently combines SilentLoading and SilentResult.
func Silently() Option {
	return func(o *callOptions) {
		o.silentLoading = true
		o.silentResult = true
	}
}

func newCallOptions(opts []Option) callOptions {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}
	return co
}

type flight struct {
	done  chan struct{}
	epoch uint64
}

// Paginator orchestrates asynchronous fetches against exactly one cache
// store. The lock-check, in-flight-check and Progress-write sequence runs
// under an internal mutex so two concurrent calls cannot both pass the
// gate; the mutex is released across the fetch itself.
type Paginator[T any] struct {
	mu       sync.Mutex
	store    *cache.Store[T]
	fetch    Fetcher[T]
	locks    Locks
	inflight map[int]*flight
	prefetch int
	sink     LogSink
	id       string
}

// EngineOption configures a Paginator at construction.
type EngineOption[T any] func(*Paginator[T])

// WithSink sets the log sink.
func WithSink[T any](sink LogSink) EngineOption[T] {
	return func(pg *Paginator[T]) { pg.sink = sink }
}

// WithLocks sets the initial permission flags.
func WithLocks[T any](l Locks) EngineOption[T] {
	return func(pg *Paginator[T]) { pg.locks = l }
}

// WithPrefetch makes forward navigation silently warm up to n pages past
// the landed page, stopping at the first short, empty or failed page.
func WithPrefetch[T any](n int) EngineOption[T] {
	return func(pg *Paginator[T]) { pg.prefetch = n }
}

// New creates a Paginator over the given store and fetcher.
func New[T any](store *cache.Store[T], f Fetcher[T], opts ...EngineOption[T]) (*Paginator[T], error) {
	if store == nil {
		return nil, fmt.Errorf("paginate: nil store")
	}
	if f == nil {
		return nil, fmt.Errorf("paginate: nil fetcher")
	}
	pg := &Paginator[T]{
		store:    store,
		fetch:    f,
		inflight: make(map[int]*flight),
		id:       gonanoid.Must(8),
	}
	for _, opt := range opts {
		opt(pg)
	}
	return pg, nil
}

// Store returns the cache store owned by this paginator.
func (pg *Paginator[T]) Store() *cache.Store[T] { return pg.store }

// SetLocks replaces the permission flags.
func (pg *Paginator[T]) SetLocks(l Locks) {
	pg.mu.Lock()
	pg.locks = l
	pg.mu.Unlock()
}

// Locks returns the current permission flags.
func (pg *Paginator[T]) Locks() Locks {
	pg.mu.Lock()
	defer pg.mu.Unlock()
	return pg.locks
}

// Jump navigates to the page the bookmark resolves to.
func (pg *Paginator[T]) Jump(ctx context.Context, bm Bookmark, opts ...Option) error {
	return pg.jump(ctx, "jump", bm, opts...)
}

// JumpForward navigates the given number of pages past the window end.
func (pg *Paginator[T]) JumpForward(ctx context.Context, pages int, opts ...Option) error {
	if pages < 1 {
		return fmt.Errorf("%w: jump forward by %d", ErrPageOutOfRange, pages)
	}
	return pg.jump(ctx, "jump_forward", Relative(pages), opts...)
}

// JumpBack navigates the given number of pages before the window start.
func (pg *Paginator[T]) JumpBack(ctx context.Context, pages int, opts ...Option) error {
	if pages < 1 {
		return fmt.Errorf("%w: jump back by %d", ErrPageOutOfRange, pages)
	}
	return pg.jump(ctx, "jump_back", Relative(-pages), opts...)
}

func (pg *Paginator[T]) jump(ctx context.Context, op string, bm Bookmark, opts ...Option) error {
	pg.mu.Lock()
	if pg.locks.Jump {
		pg.mu.Unlock()
		pg.log(op, "blocked: jump is locked")
		return ErrJumpLocked
	}
	start, end := pg.store.Window()
	target, err := bm.Resolve(start, end)
	if err != nil {
		pg.mu.Unlock()
		pg.log(op, "resolve %s failed: %v", bm, err)
		return err
	}
	pg.log(op, "to page %d via %s", target, bm)
	if err := pg.fetchLocked(ctx, op, target, newCallOptions(opts)); err != nil {
		return err
	}
	pg.prefetchAfter(ctx, op, target)
	return nil
}

// GoNextPage fetches the page immediately after the window end. On an
// unstarted window this is page 1.
func (pg *Paginator[T]) GoNextPage(ctx context.Context, opts ...Option) error {
	pg.mu.Lock()
	if pg.locks.GoNextPage {
		pg.mu.Unlock()
		pg.log("go_next_page", "blocked: go next page is locked")
		return ErrGoNextPageLocked
	}
	_, end := pg.store.Window()
	target := end + 1
	pg.log("go_next_page", "to page %d", target)
	if err := pg.fetchLocked(ctx, "go_next_page", target, newCallOptions(opts)); err != nil {
		return err
	}
	pg.prefetchAfter(ctx, "go_next_page", target)
	return nil
}

// GoPreviousPage fetches the page immediately before the window start.
func (pg *Paginator[T]) GoPreviousPage(ctx context.Context, opts ...Option) error {
	pg.mu.Lock()
	if pg.locks.GoPreviousPage {
		pg.mu.Unlock()
		pg.log("go_previous_page", "blocked: go previous page is locked")
		return ErrGoPreviousPageLocked
	}
	start, _ := pg.store.Window()
	if start <= 1 {
		pg.mu.Unlock()
		pg.log("go_previous_page", "no page before window start %d", start)
		return fmt.Errorf("%w: no page before window start %d", ErrPageOutOfRange, start)
	}
	target := start - 1
	pg.log("go_previous_page", "to page %d", target)
	return pg.fetchLocked(ctx, "go_previous_page", target, newCallOptions(opts))
}

// Restart resets the cache (all pages dirty, window unstarted) and fetches
// page 1. Any in-flight fetch is superseded; its late result is dropped.
func (pg *Paginator[T]) Restart(ctx context.Context, opts ...Option) error {
	pg.mu.Lock()
	if pg.locks.Restart {
		pg.mu.Unlock()
		pg.log("restart", "blocked: restart is locked")
		return ErrRestartLocked
	}
	pg.log("restart", "resetting cache")
	pg.store.Reset()
	if err := pg.fetchLocked(ctx, "restart", 1, newCallOptions(opts)); err != nil {
		return err
	}
	pg.prefetchAfter(ctx, "restart", 1)
	return nil
}

// Refresh re-fetches the given pages in order. The page list is validated
// up front; an out-of-range page aborts before any mutation.
func (pg *Paginator[T]) Refresh(ctx context.Context, pages []int, opts ...Option) error {
	pg.mu.Lock()
	if pg.locks.Refresh {
		pg.mu.Unlock()
		pg.log("refresh", "blocked: refresh is locked")
		return ErrRefreshLocked
	}
	for _, p := range pages {
		if p < 1 {
			pg.mu.Unlock()
			pg.log("refresh", "invalid page %d", p)
			return fmt.Errorf("%w: refresh page %d", ErrPageOutOfRange, p)
		}
	}
	pg.mu.Unlock()

	co := newCallOptions(opts)
	pg.log("refresh", "refreshing %d pages", len(pages))
	for _, p := range pages {
		pg.mu.Lock()
		if err := pg.fetchLocked(ctx, "refresh", p, co); err != nil {
			return err
		}
	}
	return nil
}

// fetchLocked runs one page fetch. It is entered with pg.mu held and
// releases it before suspending on the fetcher. A page already in flight
// is coalesced: the call waits for the pending fetch instead of issuing a
// duplicate. A waiter that woke from a superseded flight fetches again,
// since the dropped result left the page unwritten.
func (pg *Paginator[T]) fetchLocked(ctx context.Context, op string, target int, co callOptions) error {
	for {
		fl, ok := pg.inflight[target]
		if !ok {
			break
		}
		pg.mu.Unlock()
		pg.log(op, "page %d already in flight, coalescing", target)
		select {
		case <-fl.done:
		case <-ctx.Done():
			return ctx.Err()
		}
		pg.mu.Lock()
		if pg.store.Epoch() == fl.epoch {
			pg.mu.Unlock()
			return nil
		}
		// the flight was superseded and wrote nothing; go around and
		// issue a fetch of our own instead of reporting a phantom result
		pg.log(op, "page %d flight was superseded, refetching", target)
	}

	fl := &flight{done: make(chan struct{})}
	pg.inflight[target] = fl

	if !co.silentLoading {
		var cached []T
		if cur, ok := pg.store.Get(target); ok {
			cached = cur.Items()
		}
		st, err := page.NewProgress(pg.store.Sequence(), target, cached)
		if err != nil {
			fl.epoch = pg.store.Epoch()
			delete(pg.inflight, target)
			close(fl.done)
			pg.mu.Unlock()
			return err
		}
		pg.store.Put(st)
	}
	// the epoch is read after the Progress write so a window relocation
	// caused by this very navigation does not supersede its own fetch
	fl.epoch = pg.store.Epoch()
	epoch := fl.epoch
	pg.mu.Unlock()

	items, ferr := pg.fetch.FetchPage(ctx, target)

	pg.mu.Lock()
	delete(pg.inflight, target)
	defer close(fl.done)
	defer pg.mu.Unlock()

	if pg.store.Epoch() != epoch {
		pg.log(op, "page %d superseded, result dropped", target)
		return nil
	}

	seq := pg.store.Sequence()
	var st page.State[T]
	var err error
	switch {
	case ferr != nil:
		var prior []T
		if cur, ok := pg.store.Get(target); ok {
			prior = cur.Items()
		}
		st, err = page.NewError(seq, target, ferr, prior)
	case len(items) == 0:
		st, err = page.NewEmpty[T](seq, target)
	default:
		st, err = page.NewSuccess(seq, target, items)
	}
	if err != nil {
		pg.log(op, "page %d state construction failed: %v", target, err)
		return err
	}
	pg.store.Put(st, co.silentResult)

	if ferr != nil {
		pg.log(op, "page %d failed: %v", target, ferr)
	} else {
		pg.log(op, "page %d done: %d items", target, len(items))
	}
	return nil
}

// prefetchAfter silently warms pages past a landed page. A page only
// counts as worth reading past when it is a full Success page; a short,
// Empty or Error page ends the run. Each warmed page extends the window
// end by one, so prefetch never relocates the window.
func (pg *Paginator[T]) prefetchAfter(ctx context.Context, op string, landed int) {
	for i := 1; i <= pg.prefetch; i++ {
		prev, ok := pg.store.Get(landed + i - 1)
		if !ok || prev.Kind() != page.KindSuccess || len(prev.Items()) < pg.store.Capacity() {
			return
		}
		next := landed + i
		if st, ok := pg.store.Get(next); ok && st.Kind() == page.KindSuccess && !pg.store.Dirty(next) {
			continue
		}
		pg.mu.Lock()
		if err := pg.fetchLocked(ctx, op+"_prefetch", next, callOptions{silentLoading: true, silentResult: true}); err != nil {
			return
		}
	}
}

// log reports through the sink, surviving a panicking sink.
func (pg *Paginator[T]) log(tag, format string, args ...any) {
	if pg.sink == nil {
		return
	}
	defer func() { _ = recover() }()
	pg.sink.Log(tag, fmt.Sprintf("pager %s: %s", pg.id, fmt.Sprintf(format, args...)))
}
