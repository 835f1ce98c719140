package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// PageParams holds the page/limit query values with defaults applied.
type PageParams struct {
	Page  int
	Limit int
}

// Skip is the number of documents to pass over before the current page.
func (p PageParams) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// Pages is the total page count for a result set of total documents.
func (p PageParams) Pages(total int64) int64 {
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) > 0 {
		pages++
	}
	return pages
}

// PageParamsFromQuery reads ?page= and ?limit= off the request, falling back
// to page 1 / limit 10 and capping limit at 100.
func PageParamsFromQuery(c *gin.Context) PageParams {
	p := PageParams{Page: defaultPage, Limit: defaultLimit}

	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= maxLimit {
		p.Limit = v
	}
	return p
}
