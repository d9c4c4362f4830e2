// Package pagination turns a zero-based start offset into page metadata for
// routine listings.
package pagination

import (
	"errors"
	"math"
	"strconv"

	"github.com/mnuddindev/routinely/pkg/validation"
)

// PageSize is the number of routines shown per listing page.
const PageSize = 10

// MaxOffset is the largest start offset honoured; larger values are capped
// so that End and the next page offset stay representable.
const MaxOffset = math.MaxInt32 - PageSize

// Page describes one slice of a listing. Next and Prev are nil when there is
// no page in that direction.
type Page struct {
	Start       int   `json:"start"`
	End         int   `json:"end"`
	CurrentPage int   `json:"current_page"`
	NextStart   *int  `json:"next_start,omitempty"`
	NextPage    *int  `json:"next_page,omitempty"`
	PrevStart   *int  `json:"prev_start,omitempty"`
	PrevPage    *int  `json:"prev_page,omitempty"`
	Total       int64 `json:"total"`
}

// PageNumber maps a start offset to a 1-based page number.
func PageNumber(offset int) int {
	page := offset/PageSize + 1
	if page < 1 {
		return 1
	}
	return page
}

// ParseOffset reads a "start" query value. Anything that is not a
// non-negative integer literal yields 0; values past MaxOffset are capped.
func ParseOffset(raw string) int {
	if !validation.ValidDigit(raw) {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		return MaxOffset
	}
	if err != nil {
		return 0
	}
	return clampOffset(n)
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > MaxOffset {
		return MaxOffset
	}
	return offset
}

// ComputePage returns the slice bounds for offset and the neighbouring pages.
// A next page exists iff total-PageSize-offset > 0, i.e. rows remain past this
// page. A previous page exists iff offset-PageSize >= 0.
func ComputePage(offset int, total int64) Page {
	offset = clampOffset(offset)
	p := Page{
		Start:       offset,
		End:         offset + PageSize,
		CurrentPage: PageNumber(offset),
		Total:       total,
	}

	if int64(offset) < total-int64(PageSize) {
		next := offset + PageSize
		nextPage := PageNumber(next)
		p.NextStart, p.NextPage = &next, &nextPage
	}

	if prev := offset - PageSize; prev >= 0 {
		prevPage := PageNumber(prev)
		p.PrevStart, p.PrevPage = &prev, &prevPage
	}

	return p
}
