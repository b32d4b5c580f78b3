package employee

import (
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// listQuery is the in-memory search and ordering applied to GET /employees.
type listQuery struct {
	Search string
	SortBy string
	Desc   bool
}

func listQueryFromRequest(c *gin.Context) listQuery {
	return listQuery{
		Search: strings.ToLower(strings.TrimSpace(c.Query("q"))),
		SortBy: strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_by", "name"))),
		Desc:   strings.EqualFold(strings.TrimSpace(c.Query("sort_dir")), "desc"),
	}
}

// applyListQuery filters by name or email substring, then sorts stably by
// name, email, id or hourly_rate. Employees without a rate sort as zero.
func applyListQuery(items []EmployeeResponse, q listQuery) []EmployeeResponse {
	if q.Search != "" {
		filtered := make([]EmployeeResponse, 0, len(items))
		for _, e := range items {
			if strings.Contains(strings.ToLower(e.FullName), q.Search) ||
				strings.Contains(strings.ToLower(e.Email), q.Search) {
				filtered = append(filtered, e)
			}
		}
		items = filtered
	}

	key := sortKey(q.SortBy)
	sort.SliceStable(items, func(i, j int) bool {
		if q.Desc {
			return key(items[j], items[i])
		}
		return key(items[i], items[j])
	})
	return items
}

func sortKey(field string) func(a, b EmployeeResponse) bool {
	switch field {
	case "email":
		return func(a, b EmployeeResponse) bool {
			return strings.ToLower(a.Email) < strings.ToLower(b.Email)
		}
	case "id":
		return func(a, b EmployeeResponse) bool { return a.ID < b.ID }
	case "hourly_rate":
		return func(a, b EmployeeResponse) bool { return rateOf(a) < rateOf(b) }
	default:
		return func(a, b EmployeeResponse) bool {
			return strings.ToLower(a.FullName) < strings.ToLower(b.FullName)
		}
	}
}

func rateOf(e EmployeeResponse) float64 {
	if e.HourlyRate == nil {
		return 0
	}
	return *e.HourlyRate
}
