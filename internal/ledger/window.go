package ledger

// GroupSize is the number of page buttons shown at once
const GroupSize = 5

// Window is the visible group of page buttons
type Window struct {
	Start   int
	End     int
	Current int
	HasPrev bool
	HasNext bool
}

// Pages lists the page numbers in the window
func (w Window) Pages() []int {
	if w.End < w.Start {
		return nil
	}
	pages := make([]int, 0, w.End-w.Start+1)
	for p := w.Start; p <= w.End; p++ {
		pages = append(pages, p)
	}
	return pages
}

// PageWindow computes the group of at most GroupSize pages containing page
func PageWindow(page, totalPages int) Window {
	if totalPages <= 0 {
		return Window{Start: 1, End: 0, Current: 1}
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page-1)/GroupSize*GroupSize + 1
	end := min(start+GroupSize-1, totalPages)
	return Window{
		Start:   start,
		End:     end,
		Current: page,
		HasPrev: start > 1,
		HasNext: end < totalPages,
	}
}
