package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrDescriptorNotFound is returned by Require when no descriptor matches
// the requested type key
var ErrDescriptorNotFound = errors.New("type descriptor not found")

// Lookup is a read-only, case-insensitive map from type key to descriptor.
// It is built once at startup and never mutated afterward, so it is safe
// for unsynchronized concurrent reads. A schema change means constructing
// a new Lookup and swapping it in at the composition root.
type Lookup struct {
	descriptors map[string]*TypeDescriptor
}

// NewLookup builds a Lookup from the given descriptors. It fails fast on
// configuration errors: an empty type key, or two descriptors whose keys
// fold to the same lowercase form. These abort startup rather than surface
// as per-request validation errors.
func NewLookup(descriptors []*TypeDescriptor) (*Lookup, error) {
	m := make(map[string]*TypeDescriptor, len(descriptors))

	for _, d := range descriptors {
		if d.TypeKey == "" {
			return nil, fmt.Errorf("descriptor %q has an empty type key", d.DisplayName)
		}

		key := strings.ToLower(d.TypeKey)
		if existing, ok := m[key]; ok {
			return nil, fmt.Errorf("duplicate type key %q (conflicts with %q)", d.TypeKey, existing.TypeKey)
		}
		m[key] = d
	}

	return &Lookup{descriptors: m}, nil
}

// Get retrieves a descriptor by type key, case-insensitively
func (l *Lookup) Get(typeKey string) (*TypeDescriptor, bool) {
	d, ok := l.descriptors[strings.ToLower(typeKey)]
	return d, ok
}

// Require retrieves a descriptor by type key and fails when it is absent
func (l *Lookup) Require(typeKey string) (*TypeDescriptor, error) {
	d, ok := l.Get(typeKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDescriptorNotFound, typeKey)
	}
	return d, nil
}

// Exists checks whether a descriptor is registered for the type key
func (l *Lookup) Exists(typeKey string) bool {
	_, ok := l.Get(typeKey)
	return ok
}

// Keys returns the normalized type keys in sorted order
func (l *Lookup) Keys() []string {
	keys := make([]string, 0, len(l.descriptors))
	for key := range l.descriptors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// All returns the registered descriptors ordered by normalized type key
func (l *Lookup) All() []*TypeDescriptor {
	result := make([]*TypeDescriptor, 0, len(l.descriptors))
	for _, key := range l.Keys() {
		result = append(result, l.descriptors[key])
	}
	return result
}

// Count returns the number of registered descriptors
func (l *Lookup) Count() int {
	return len(l.descriptors)
}
