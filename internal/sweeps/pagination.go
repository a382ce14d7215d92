package sweeps

// Unlimited is the page size meaning "everything on one page".
const Unlimited = -1

// maxPageButtons is how many page numbers a pager shows at once.
const maxPageButtons = 5

// TotalPages returns the page count for total rows at pageSize.
// Unlimited yields one page.
func TotalPages(total, pageSize int) int {
	if pageSize == Unlimited {
		return 1
	}
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// PageOffset returns the row offset of 1-based page. Unlimited starts at 0.
func PageOffset(page, pageSize int) int {
	if pageSize == Unlimited || pageSize <= 0 || page < 1 {
		return 0
	}
	return (page - 1) * pageSize
}

// PageWindow returns up to five page numbers centred on current, clamped
// to [1, totalPages].
func PageWindow(current, totalPages int) []int {
	n := min(maxPageButtons, totalPages)
	if n <= 0 {
		return nil
	}

	var first int
	switch {
	case totalPages <= maxPageButtons:
		first = 1
	case current <= 3:
		first = 1
	case current >= totalPages-2:
		first = totalPages - 4
	default:
		first = current - 2
	}

	pages := make([]int, n)
	for i := range pages {
		pages[i] = first + i
	}
	return pages
}

// Range returns the 1-based first and last row shown on a page, as in
// "Showing 51 to 100 of 120". Unlimited shows 1..total.
func Range(page, pageSize, total int) (from, to int) {
	if total <= 0 {
		return 0, 0
	}
	if pageSize == Unlimited {
		return 1, total
	}
	offset := PageOffset(page, pageSize)
	return offset + 1, min(offset+pageSize, total)
}
