package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompile_Paging(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		wantSkip int
		wantTake int
	}{
		{name: "second page", page: 2, pageSize: 25, wantSkip: 25, wantTake: 25},
		{name: "page zero clamps to first", page: 0, pageSize: 10, wantSkip: 0, wantTake: 10},
		{name: "negative page clamps to first", page: -3, pageSize: 10, wantSkip: 0, wantTake: 10},
		{name: "negative size defaults", page: 1, pageSize: -1, wantSkip: 0, wantTake: 50},
		{name: "zero size defaults", page: 1, pageSize: 0, wantSkip: 0, wantTake: 50},
		{name: "first page explicit size", page: 1, pageSize: 10, wantSkip: 0, wantTake: 10},
		{name: "default size applies to skip", page: 3, pageSize: 0, wantSkip: 100, wantTake: 50},
		{name: "no cap on large sizes", page: 1, pageSize: 10000, wantSkip: 0, wantTake: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := Compile(RawQuery{Page: tt.page, PageSize: tt.pageSize})
			assert.Equal(t, tt.wantSkip, criteria.Skip)
			assert.Equal(t, tt.wantTake, criteria.Take)
		})
	}
}

func TestCompile_FiltersPassThroughVerbatim(t *testing.T) {
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	criteria := Compile(RawQuery{
		Type:          "book",
		OwnerID:       "user-1",
		SearchText:    "dune",
		SortField:     "createdAt",
		SortDirection: "desc",
		CreatedAfter:  &after,
		CreatedBefore: &before,
	})

	assert.Equal(t, "book", criteria.Type)
	assert.Equal(t, "user-1", criteria.OwnerID)
	assert.Equal(t, "dune", criteria.SearchText)
	assert.Equal(t, "createdAt", criteria.SortField)
	assert.Equal(t, "desc", criteria.SortDirection)
	assert.Equal(t, &after, criteria.CreatedAfter)
	assert.Equal(t, &before, criteria.CreatedBefore)
}

func TestCompile_EmptyStringIsNotAbsent(t *testing.T) {
	// An empty string is a valid filter value at this layer; dropping it
	// is the persistence layer's call, not the compiler's
	criteria := Compile(RawQuery{Type: "", OwnerID: "", SearchText: ""})

	assert.Equal(t, "", criteria.Type)
	assert.Equal(t, "", criteria.OwnerID)
	assert.Equal(t, "", criteria.SearchText)
}

func TestCompile_IsPure(t *testing.T) {
	raw := RawQuery{Type: "book", Page: 4, PageSize: 20}

	first := Compile(raw)
	second := Compile(raw)

	assert.Equal(t, first, second)
	// The input is untouched
	assert.Equal(t, 4, raw.Page)
	assert.Equal(t, 20, raw.PageSize)
}
