package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/trip-dashboard/pkg/common"
)

const (
	// DefaultPage is the first page; pages are 1-indexed
	DefaultPage = 1
	// PageSize is the fixed number of records per page
	PageSize = 10
)

// Params holds page selection parsed from a request
type Params struct {
	Page     int
	Provided bool
}

// ParseParams reads the page query parameter. Provided is false when the
// parameter is absent or not an integer; out-of-range values are returned
// as-is for the caller to clamp.
func ParseParams(c *gin.Context) Params {
	raw, ok := c.GetQuery("page")
	if !ok || raw == "" {
		return Params{}
	}

	page, err := strconv.Atoi(raw)
	if err != nil {
		return Params{}
	}
	return Params{Page: page, Provided: true}
}

// TotalPages returns ceil(total/size), or 0 when there is nothing to show
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Clamp returns page when it addresses an existing page, otherwise DefaultPage
func Clamp(page, size, total int) int {
	if page < DefaultPage || page > TotalPages(total, size) {
		return DefaultPage
	}
	return page
}

// Window returns the half-open [start, end) index range of page within a
// collection of total records. Out-of-range pages yield an empty window.
func Window(page, size, total int) (int, int) {
	if page < DefaultPage || size <= 0 || total <= 0 {
		return 0, 0
	}

	start := (page - 1) * size
	if start >= total {
		return total, total
	}

	end := start + size
	if end > total {
		end = total
	}
	return start, end
}

// HasMore reports whether pages exist after page
func HasMore(page, size, total int) bool {
	return page < TotalPages(total, size)
}

// BuildMeta builds the response meta for a page
func BuildMeta(page, size int, total int64) *common.Meta {
	return &common.Meta{
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: TotalPages(int(total), size),
	}
}
