package pagination

import (
	"math"
	"strconv"
	"strings"
)

// CardsPageSize is the fixed page size of the donation cards view.
const CardsPageSize = 10

// Window is the slice of rows that make up one page.
type Window struct {
	Page   int
	Size   int
	Offset int
	Limit  int
}

// Resolve parses a one-based page number. Anything that is not a positive
// integer resolves to page 1.
func Resolve(raw string, size int) Window {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		page = 1
	}
	return ForPage(page, size)
}

func ForPage(page, size int) Window {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = CardsPageSize
	}
	// Keep (page-1)*size representable; such a page is past any real
	// table and simply comes back empty.
	if page-1 > math.MaxInt/size {
		page = math.MaxInt/size + 1
	}
	return Window{
		Page:   page,
		Size:   size,
		Offset: (page - 1) * size,
		Limit:  size,
	}
}

// TotalPages is ceil(total / size), and 0 when there are no rows.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
