package repositories

import (
	"fmt"
	"strings"
)

// ListOptions carries the paging/sorting query contract shared by every
// listing endpoint (show, orderBy, order, page).
type ListOptions struct {
	Limit   int
	Offset  int
	OrderBy string
	Order   string
}

// orderClause builds an ORDER BY fragment from caller-supplied column and
// direction. Columns outside the allow-list fall back to created_at so query
// params can never inject SQL.
func orderClause(opts ListOptions, allowed map[string]bool) string {
	column := opts.OrderBy
	if !allowed[column] {
		column = "created_at"
	}
	direction := strings.ToLower(opts.Order)
	if direction != "asc" {
		direction = "desc"
	}
	return fmt.Sprintf("%s %s", column, direction)
}
