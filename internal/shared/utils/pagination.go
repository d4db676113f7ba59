package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageLimit = 25
	MaxPageLimit     = 100
)

// Pagination is the parsed page/limit pair of a list request.
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePagination đọc ?page & ?limit, giá trị sai thì dùng mặc định
func ParsePagination(c *gin.Context) Pagination {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageLimit)))
	if err != nil || limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	return Pagination{Page: page, Limit: limit}
}

// OrderBy builds an ORDER BY body from "?sort=-price,title".
// Only fields present in allowed (api field → column) are used; a leading
// "-" means descending. Falls back to def when nothing valid remains.
func OrderBy(sort string, allowed map[string]string, def string) string {
	parts := make([]string, 0, 2)
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = field[1:]
		}
		column, ok := allowed[field]
		if !ok {
			continue
		}
		parts = append(parts, column+" "+dir)
	}
	if len(parts) == 0 {
		return def
	}
	return strings.Join(parts, ", ")
}

// QueryFloat parses an optional float query parameter.
func QueryFloat(c *gin.Context, key string) (*float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}
