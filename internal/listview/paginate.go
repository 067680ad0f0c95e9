package listview

import "fmt"

// DefaultWindow is the number of page buttons shown in a control strip.
const DefaultWindow = 5

// Page is the visible slice of a filtered collection plus the numbers a
// pagination footer needs. FirstIndex and LastIndex are 1-based.
type Page[T any] struct {
	Visible    []T
	Page       int
	Size       int
	Total      int
	TotalPages int
	FirstIndex int
	LastIndex  int
}

// TotalPages returns ceil(n/size), or 0 for an empty collection.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = 1
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate slices records for the given 1-based page. Non-positive page
// and size are treated as 1. A page past the end yields an empty window.
func Paginate[T any](records []T, page, size int) Page[T] {
	if size <= 0 {
		size = 1
	}
	if page <= 0 {
		page = 1
	}
	p := Page[T]{
		Visible:    []T{},
		Page:       page,
		Size:       size,
		Total:      len(records),
		TotalPages: TotalPages(len(records), size),
	}
	if p.Total == 0 {
		return p
	}

	start := (page - 1) * size
	end := min(page*size, p.Total)
	p.FirstIndex = start + 1
	p.LastIndex = end
	if start < end {
		p.Visible = append(p.Visible, records[start:end]...)
	}
	return p
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// Summary renders the "Showing X to Y of Z" footer line. A window with no
// visible records reads "Showing 0 of Z".
func (p Page[T]) Summary() string {
	if len(p.Visible) == 0 {
		return fmt.Sprintf("Showing 0 of %d", p.Total)
	}
	return fmt.Sprintf("Showing %d to %d of %d", p.FirstIndex, p.LastIndex, p.Total)
}

// Numbers returns the page-button window around the current page.
func (p Page[T]) Numbers() []int {
	return PageWindow(p.Page, p.TotalPages, DefaultWindow)
}

// PageWindow returns the page numbers to show in a control strip of the
// given width. All pages are shown when they fit; otherwise the window is
// pinned to the first or last pages near either end and centred on page in
// between. For width 5 that is: page <= 3 shows 1..5, page >= total-2 shows
// the last five, anything else shows page-2..page+2.
func PageWindow(page, total, width int) []int {
	if total <= 0 {
		return []int{}
	}
	if width <= 0 {
		width = DefaultWindow
	}
	if total <= width {
		return pageRange(1, total)
	}
	half := width / 2
	switch {
	case page <= half+1:
		return pageRange(1, width)
	case page >= total-half:
		return pageRange(total-width+1, total)
	default:
		start := page - half
		return pageRange(start, start+width-1)
	}
}

func pageRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// PageState is the current page and the view's fixed page size.
type PageState struct {
	Current int
	Size    int
}

// NewPageState returns a state on page 1. Non-positive sizes become 1.
func NewPageState(size int) PageState {
	if size <= 0 {
		size = 1
	}
	return PageState{Current: 1, Size: size}
}

// Goto moves to target when 1 <= target <= totalPages and reports whether
// the page changed. Out-of-range requests are no-ops.
func (s *PageState) Goto(target, totalPages int) bool {
	if target < 1 || target > totalPages || target == s.Current {
		return false
	}
	s.Current = target
	return true
}

// Next advances one page unless already on the last.
func (s *PageState) Next(totalPages int) bool {
	return s.Goto(s.Current+1, totalPages)
}

// Prev goes back one page unless already on the first.
func (s *PageState) Prev(totalPages int) bool {
	return s.Goto(s.Current-1, totalPages)
}

// Reset returns to page 1.
func (s *PageState) Reset() {
	s.Current = 1
}

// Clamp pulls Current into [1, max(1, totalPages)].
func (s *PageState) Clamp(totalPages int) {
	upper := max(1, totalPages)
	if s.Current > upper {
		s.Current = upper
	}
	if s.Current < 1 {
		s.Current = 1
	}
}
