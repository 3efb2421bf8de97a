package posts

import "strconv"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage bounds the offset so it cannot overflow.
	MaxPage = 1_000_000
)

// ParsePagination reads page and pageSize query values. Missing, non-numeric
// or non-positive values fall back to the defaults; pageSize is capped.
func ParsePagination(pageRaw, pageSizeRaw string) (page, pageSize int) {
	page = parsePositive(pageRaw, DefaultPage)
	if page > MaxPage {
		page = MaxPage
	}

	pageSize = parsePositive(pageSizeRaw, DefaultPageSize)
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func parsePositive(raw string, def int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return def
	}
	return v
}
