package pagination

import (
	"errors"
	"math"
	"strconv"
)

// Page is a 1-based page request over fixed-size pages.
type Page struct {
	Number int
	Size   int
}

// New clamps number to at least 1, and to at most the last page whose
// offset still fits in an int.
func New(number, size int) Page {
	if size < 1 {
		size = 1
	}
	if number < 1 {
		number = 1
	}
	if number-1 > math.MaxInt/size {
		number = math.MaxInt/size + 1
	}
	return Page{Number: number, Size: size}
}

// Parse reads a page number from a query string value; anything that is not a
// positive integer means the first page. Numbers too large for an int land
// past the last page.
func Parse(raw string, size int) Page {
	n, err := strconv.Atoi(raw)
	if err != nil && !(errors.Is(err, strconv.ErrRange) && n > 0) {
		n = 1
	}
	return New(n, size)
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) Limit() int {
	return p.Size
}

// TotalPages is ceil(total/size).
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
