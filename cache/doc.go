// Package cache implements the paging core: the page-index to page-state
// mapping, the sliding context window, per-page dirty tracking and the
// snapshot save/restore protocol.
//
// # Context window
//
// The window is the contiguous range of page indices currently considered
// live. Putting a state adjacent to the window grows it; putting a state
// far from the window relocates it and marks the pages left behind dirty.
// Dirty pages keep their cached items so stale data stays displayable, but
// must be re-fetched before being trusted.
//
//	s := cache.New[Row](cache.WithCapacity(20))
//	st, _ := page.NewSuccess(s.Sequence(), 1, rows)
//	s.Put(st)            // window (1,1)
//
// # Snapshots
//
// SaveState produces a flat snapshot holding only SUCCESS/EMPTY entries:
// in-flight and failed pages are downgraded, keeping their cached items,
// and flagged dirty so a restore re-fetches them instead of trusting them.
// RestoreState replaces the whole cache from such a snapshot atomically.
//
// All mutation goes through Store methods; window updates are atomic with
// respect to concurrent readers.
package cache
