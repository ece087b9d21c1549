// Package page defines the immutable page-state model used by the cache
// and navigation layers.
//
// A State describes one page's last-known status: a fetch in flight
// (Progress), a completed fetch (Success, or Empty for a page that
// legitimately has zero items), or a failed fetch (Error). Every variant
// keeps the last known item list so stale data stays displayable while a
// re-fetch runs.
//
// # Identity
//
// Each State carries an identity number handed out by a Sequence at
// construction. Identity numbers are strictly increasing within one
// Sequence, never reused, and never persisted. Equality between states is
// identity based, not structural:
//
//	a.Equal(b) // true iff a and b carry the same identity number
//
// Copy retains the original identity by default, so a copied-and-updated
// state still compares equal to its origin. Callers tracking content
// changes must compare Page and Items directly; Equal is for instance
// tracking only.
//
// # Ordering
//
// States order solely by page index. Items and identity never participate
// in Compare or Less.
package page
