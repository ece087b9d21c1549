package paginate

import "fmt"

// Bookmark is a navigation target: either an absolute page index or a
// signed offset relative to the current window. Bookmarks are resolved at
// navigation time and never stored as cache state.
type Bookmark struct {
	page     int
	offset   int
	relative bool
}

// AtPage targets an absolute 1-based page index.
func AtPage(n int) Bookmark {
	return Bookmark{page: n}
}

// Relative targets an offset from the window edge in the direction of
// travel: positive offsets anchor at the window end, negative offsets at
// the window start. On an unstarted window the anchor is 0, so
// Relative(1) resolves to page 1.
func Relative(offset int) Bookmark {
	return Bookmark{offset: offset, relative: true}
}

// IsRelative reports whether the bookmark is offset based.
func (b Bookmark) IsRelative() bool { return b.relative }

// Resolve maps the bookmark to a concrete page index given the current
// window bounds. Resolution is pure; a target below page 1 fails with
// ErrPageOutOfRange.
func (b Bookmark) Resolve(start, end int) (int, error) {
	target := b.page
	if b.relative {
		anchor := 0
		if b.offset > 0 {
			anchor = end
		} else {
			anchor = start
		}
		target = anchor + b.offset
	}
	if target < 1 {
		return 0, fmt.Errorf("%w: bookmark %s resolves to page %d", ErrPageOutOfRange, b, target)
	}
	return target, nil
}

func (b Bookmark) String() string {
	if b.relative {
		return fmt.Sprintf("Relative(%+d)", b.offset)
	}
	return fmt.Sprintf("AtPage(%d)", b.page)
}
