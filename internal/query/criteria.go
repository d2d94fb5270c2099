// Package query compiles raw, untrusted list-query parameters into
// normalized, bounded criteria for the persistence layer.
package query

import "time"

// DefaultPageSize is the page size applied when the client supplies none
// or a non-positive value
const DefaultPageSize = 50

// RawQuery is the flat, untrusted record bound from URL query parameters.
// Zero values mean "not supplied" for the numeric paging fields; the
// string filters distinguish absent (zero value never reaches this layer
// for them) from empty, and both pass through as-is.
type RawQuery struct {
	Type          string
	OwnerID       string
	SearchText    string
	SortField     string
	SortDirection string
	Page          int
	PageSize      int
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// Criteria is the normalized query consumed by the persistence layer.
// It is constructed fresh per request and immutable thereafter.
type Criteria struct {
	Type          string
	OwnerID       string
	SearchText    string
	SortField     string
	SortDirection string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time

	// Skip is the number of records to skip; always >= 0
	Skip int

	// Take is the page size; always > 0
	Take int
}

// Compile normalizes a raw query into bounded criteria. It is a pure,
// total function: any page below 1 becomes page 1, any page size of zero
// or less becomes DefaultPageSize, and no upper cap is enforced here (the
// persistence layer may impose its own). Filter values pass through
// verbatim, including empty strings; treating an empty string as "no
// filter" is a persistence-layer decision, not this compiler's.
func Compile(raw RawQuery) Criteria {
	page := raw.Page
	if page < 1 {
		page = 1
	}

	size := raw.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	return Criteria{
		Type:          raw.Type,
		OwnerID:       raw.OwnerID,
		SearchText:    raw.SearchText,
		SortField:     raw.SortField,
		SortDirection: raw.SortDirection,
		CreatedAfter:  raw.CreatedAfter,
		CreatedBefore: raw.CreatedBefore,
		Skip:          (page - 1) * size,
		Take:          size,
	}
}
