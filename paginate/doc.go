// Package paginate implements the navigation engine over a cache.Store:
// bookmark resolution, per-operation lock gating, fetch coordination and
// the typed failure taxonomy.
//
// # Operations
//
// Jump, JumpForward and JumpBack resolve a Bookmark against the current
// window; GoNextPage and GoPreviousPage walk the window edges; Restart
// resets the cache and starts over at page 1; Refresh re-fetches an
// explicit page list. Each operation is gated by a permission flag in
// Locks and fails fast with its own sentinel error when locked, before
// any fetch or mutation:
//
//	pg.SetLocks(paginate.Locks{Jump: true})
//	err := pg.Jump(ctx, paginate.AtPage(7)) // == ErrJumpLocked
//
// With WithPrefetch, landing on a fully populated page silently warms the
// pages after it, up to the configured distance, stopping at the first
// short, empty or failed page.
//
// # Failure taxonomy
//
// Locked-operation errors and ErrPageOutOfRange are returned synchronously
// and abort before mutation. Fetch failures are never returned from the
// navigation call: they are written into the cache as Error page states
// and observed through the state stream, so a caller can render an error
// row without the call itself failing.
//
// # Concurrency
//
// A Paginator assumes one logical owner, but internally serializes the
// lock-check-and-mutate sequence with a mutex, released only across the
// fetch. One fetch per page index is in flight at a time; concurrent
// requests for the same page coalesce onto the pending fetch. A fetch
// superseded by a window relocation (for example Restart during a pending
// Jump) has its late result discarded.
//
// Cache observers fire while a navigation call is in progress; they must
// not synchronously invoke the paginator that triggered them.
package paginate
