package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name        string
		params      PaginationParams
		wantPage    int
		wantPerPage int
	}{
		{name: "zero values fall back to defaults", params: PaginationParams{}, wantPage: 1, wantPerPage: 15},
		{name: "negative page clamps to first", params: PaginationParams{Page: -3, PerPage: 20}, wantPage: 1, wantPerPage: 20},
		{name: "oversized per_page clamps to cap", params: PaginationParams{Page: 2, PerPage: 500}, wantPage: 2, wantPerPage: 100},
		{name: "valid values untouched", params: PaginationParams{Page: 4, PerPage: 25}, wantPage: 4, wantPerPage: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Validate()
			assert.Equal(t, tt.wantPage, tt.params.Page)
			assert.Equal(t, tt.wantPerPage, tt.params.PerPage)
		})
	}
}

func TestPaginationParams_Offset(t *testing.T) {
	p := PaginationParams{Page: 3, PerPage: 15}
	assert.Equal(t, 30, p.Offset())

	first := DefaultPagination()
	assert.Equal(t, 0, first.Offset())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 15, 31)

	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(31), p.Total)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := NewPagination(3, 15, 31)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	empty := NewPagination(1, 15, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestNewPaginatedResult(t *testing.T) {
	items := []string{"a", "b"}
	result := NewPaginatedResult(items, NewPagination(1, 15, 2))

	assert.Equal(t, items, result.Items)
	assert.Equal(t, int64(2), result.Pagination.Total)
}
