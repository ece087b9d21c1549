package page

// Gap returns the absolute difference between two page indices.
func Gap(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// Near reports whether two page indices are adjacent or identical.
func Near(a, b int) bool { return Gap(a, b) <= 1 }

// Far reports whether two page indices are separated by more than one page.
func Far(a, b int) bool { return !Near(a, b) }

// Gap returns the page-index gap between s and o.
func (s State[T]) Gap(o State[T]) int { return Gap(s.page, o.page) }

// Near reports whether s and o are on identical or adjacent pages.
func (s State[T]) Near(o State[T]) bool { return Near(s.page, o.page) }

// Far reports whether s and o are more than one page apart.
func (s State[T]) Far(o State[T]) bool { return Far(s.page, o.page) }
