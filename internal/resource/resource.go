// Package resource defines the stored resource envelope.
package resource

import (
	"time"
)

// Resource is the id/type/owner/timestamps envelope wrapping an untyped
// JSON payload. The payload's shape is governed by the type's descriptor.
type Resource struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OwnerID    string         `json:"ownerId"`
	Payload    map[string]any `json:"payload"`
	SearchText *string        `json:"searchText,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
