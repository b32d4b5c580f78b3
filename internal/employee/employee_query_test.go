package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(items []EmployeeResponse) []string {
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, e.FullName)
	}
	return out
}

func TestApplyListQuery(t *testing.T) {
	rate := func(v float64) *float64 { return &v }
	base := func() []EmployeeResponse {
		return []EmployeeResponse{
			{ID: "3", FullName: "cara", Email: "c@sparks.io", HourlyRate: rate(30)},
			{ID: "1", FullName: "Alice", Email: "alice@volt.io"},
			{ID: "2", FullName: "Bob", Email: "bob@sparks.io", HourlyRate: rate(22.5)},
		}
	}

	tests := []struct {
		name  string
		query listQuery
		want  []string
	}{
		{"default sorts by name ignoring case", listQuery{}, []string{"Alice", "Bob", "cara"}},
		{"search matches email", listQuery{Search: "sparks"}, []string{"Bob", "cara"}},
		{"rate descending puts missing rate last", listQuery{SortBy: "hourly_rate", Desc: true}, []string{"cara", "Bob", "Alice"}},
		{"id ascending", listQuery{SortBy: "id"}, []string{"Alice", "Bob", "cara"}},
		{"no match", listQuery{Search: "zed"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(applyListQuery(base(), tt.query)))
		})
	}
}
