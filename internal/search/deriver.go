// Package search derives a denormalized search string from a resource
// payload, driven by the type's descriptor. The derived text feeds the
// stored resource's search column; lookup against it is plain substring
// containment, not full-text ranking.
package search

import (
	"sort"
	"strings"

	"github.com/RamiObaid92/AIProjectTest/internal/schema"
)

// Deriver builds search text for payloads using descriptors from a Lookup.
// Derivation is best-effort and never fails: a payload that is not a JSON
// object simply contributes no terms.
type Deriver struct {
	lookup *schema.Lookup
}

// NewDeriver creates a search-text deriver backed by the given lookup
func NewDeriver(lookup *schema.Lookup) *Deriver {
	return &Deriver{lookup: lookup}
}

// Derive produces the search text for a payload. With a descriptor, terms
// are collected from the UI-hint title field first, then each full-text
// field in declared order. Without one, every top-level string property is
// collected in sorted key order. Extra metadata terms from the caller come
// last. Terms are trimmed, blanks dropped, and duplicates removed
// case-insensitively (first occurrence wins).
//
// The second return value is false when no terms survive; callers must
// treat that as "no search index for this resource", not an empty index.
func (d *Deriver) Derive(typeKey string, payload any, extra ...string) (string, bool) {
	object, _ := payload.(map[string]any)

	var terms []string
	if descriptor, ok := d.lookup.Get(typeKey); ok {
		terms = descriptorTerms(descriptor, object)
	} else {
		terms = fallbackTerms(object)
	}
	terms = append(terms, extra...)

	joined := joinTerms(terms)
	if joined == "" {
		return "", false
	}
	return joined, true
}

// descriptorTerms collects the title field value then each full-text
// field value, keeping only string-valued properties
func descriptorTerms(descriptor *schema.TypeDescriptor, object map[string]any) []string {
	var terms []string

	if title := descriptor.TitleField(); title != "" {
		if value, ok := object[title].(string); ok {
			terms = append(terms, value)
		}
	}

	for _, name := range descriptor.FullTextFields() {
		if value, ok := object[name].(string); ok {
			terms = append(terms, value)
		}
	}

	return terms
}

// fallbackTerms collects every top-level string property of the payload.
// Keys are sorted so the derived text is deterministic.
func fallbackTerms(object map[string]any) []string {
	keys := make([]string, 0, len(object))
	for key := range object {
		if _, ok := object[key].(string); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	terms := make([]string, 0, len(keys))
	for _, key := range keys {
		terms = append(terms, object[key].(string))
	}
	return terms
}

// joinTerms trims, drops blanks, de-duplicates case-insensitively, and
// joins the survivors with single spaces
func joinTerms(terms []string) string {
	seen := make(map[string]struct{}, len(terms))
	kept := make([]string, 0, len(terms))

	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		folded := strings.ToLower(term)
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		kept = append(kept, term)
	}

	return strings.Join(kept, " ")
}
