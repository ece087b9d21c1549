// Package snapshot defines the flat, persistable capture of a paging
// cache: the retained entries, the context window bounds and the page
// capacity. Snapshots are created on demand and consumed once on restore;
// they never carry Progress or Error entries: those are downgraded to
// SUCCESS/EMPTY and flagged dirty at save time so a restore knows to
// re-fetch them.
package snapshot

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// EntryType restricts persisted entries to the two trustable variants.
type EntryType string

const (
	TypeSuccess EntryType = "SUCCESS"
	TypeEmpty   EntryType = "EMPTY"
)

// Entry is one persisted page.
type Entry[T any] struct {
	Page     int       `json:"page" validate:"required,gte=1"`
	Type     EntryType `json:"type" validate:"required,oneof=SUCCESS EMPTY"`
	Data     []T       `json:"data"`
	WasDirty bool      `json:"wasDirty"`
}

// Snapshot is the flat wire record: entries in page order plus window
// bounds and capacity. (0,0) bounds denote a cache that never started.
type Snapshot[T any] struct {
	Entries          []Entry[T] `json:"entries" validate:"dive"`
	StartContextPage int        `json:"startContextPage" validate:"gte=0"`
	EndContextPage   int        `json:"endContextPage" validate:"gte=0"`
	Capacity         int        `json:"capacity" validate:"gte=0"`
}

var validate = validator.New()

// Validate checks structural constraints plus the cross-field rules the
// tags cannot express: EMPTY entries carry no data, SUCCESS entries carry
// at least one item, and the window bounds are consistent.
func (s *Snapshot[T]) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	for _, e := range s.Entries {
		switch e.Type {
		case TypeSuccess:
			if len(e.Data) == 0 {
				return fmt.Errorf("snapshot: page %d typed SUCCESS with no data", e.Page)
			}
		case TypeEmpty:
			if len(e.Data) != 0 {
				return fmt.Errorf("snapshot: page %d typed EMPTY with %d items", e.Page, len(e.Data))
			}
		}
	}
	if s.EndContextPage < s.StartContextPage {
		return fmt.Errorf("snapshot: window end %d before start %d", s.EndContextPage, s.StartContextPage)
	}
	if (s.StartContextPage == 0) != (s.EndContextPage == 0) {
		return fmt.Errorf("snapshot: window bounds (%d,%d) mix started and unstarted", s.StartContextPage, s.EndContextPage)
	}
	return nil
}
