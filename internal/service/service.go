// Package service coordinates the resource pipeline: payload validation,
// search-text derivation, persistence, and the optional read cache.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RamiObaid92/AIProjectTest/internal/query"
	"github.com/RamiObaid92/AIProjectTest/internal/resource"
	"github.com/RamiObaid92/AIProjectTest/internal/schema"
	"github.com/RamiObaid92/AIProjectTest/internal/search"
	"github.com/RamiObaid92/AIProjectTest/internal/validation"
)

// Store is the persistence surface the service depends on
type Store interface {
	Insert(ctx context.Context, r *resource.Resource) error
	Get(ctx context.Context, id string) (*resource.Resource, error)
	Update(ctx context.Context, r *resource.Resource) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, c query.Criteria) ([]*resource.Resource, error)
	Count(ctx context.Context, c query.Criteria) (int, error)
}

// Cache is the optional read-through cache for Get-by-ID
type Cache interface {
	Get(ctx context.Context, id string) (*resource.Resource, bool)
	Set(ctx context.Context, r *resource.Resource) error
	Invalidate(ctx context.Context, id string) error
}

// Page is a listed slice of resources together with the total match count
type Page struct {
	Items []*resource.Resource `json:"items"`
	Total int                  `json:"total"`
	Skip  int                  `json:"skip"`
	Take  int                  `json:"take"`
}

// Service implements the resource operations exposed over HTTP
type Service struct {
	lookup  *schema.Lookup
	engine  *validation.Engine
	deriver *search.Deriver
	store   Store
	cache   Cache
	logger  *zap.Logger
}

// New creates a resource service. The cache may be nil, in which case all
// reads go straight to the store.
func New(lookup *schema.Lookup, st Store, cache Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		lookup:  lookup,
		engine:  validation.NewEngine(lookup),
		deriver: search.NewDeriver(lookup),
		store:   st,
		cache:   cache,
		logger:  logger,
	}
}

// Lookup exposes the descriptor lookup for introspection endpoints
func (s *Service) Lookup() *schema.Lookup {
	return s.lookup
}

// Create validates the payload, derives its search text, and persists a
// new resource. An invalid payload is reported through the returned
// validation result, not an error.
func (s *Service) Create(ctx context.Context, typeKey, ownerID string, payload any) (*resource.Resource, *validation.Result, error) {
	result := s.engine.Validate(typeKey, payload)
	if !result.IsValid() {
		return nil, result, nil
	}

	// Validation succeeding implies the descriptor exists and the
	// payload is an object; store the canonical key the descriptor
	// declares, not the client's casing
	descriptor, _ := s.lookup.Get(typeKey)
	object, _ := payload.(map[string]any)

	now := time.Now().UTC()
	r := &resource.Resource{
		ID:        uuid.NewString(),
		Type:      descriptor.TypeKey,
		OwnerID:   ownerID,
		Payload:   object,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if text, ok := s.deriver.Derive(typeKey, payload); ok {
		r.SearchText = &text
	}

	if err := s.store.Insert(ctx, r); err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	s.logger.Info("resource created",
		zap.String("id", r.ID),
		zap.String("type", r.Type),
		zap.String("owner_id", r.OwnerID))

	return r, result, nil
}

// Get retrieves a resource by ID, consulting the cache first
func (s *Service) Get(ctx context.Context, id string) (*resource.Resource, error) {
	if s.cache != nil {
		if r, hit := s.cache.Get(ctx, id); hit {
			return r, nil
		}
	}

	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, r); err != nil {
			s.logger.Warn("failed to cache resource", zap.String("id", id), zap.Error(err))
		}
	}

	return r, nil
}

// Update replaces the payload of an existing resource after re-validating
// it against the resource's stored type, re-deriving the search text
func (s *Service) Update(ctx context.Context, id string, payload any) (*resource.Resource, *validation.Result, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	result := s.engine.Validate(existing.Type, payload)
	if !result.IsValid() {
		return nil, result, nil
	}

	object, _ := payload.(map[string]any)
	existing.Payload = object
	existing.SearchText = nil
	if text, ok := s.deriver.Derive(existing.Type, payload); ok {
		existing.SearchText = &text
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, existing); err != nil {
		return nil, nil, fmt.Errorf("failed to update resource: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.logger.Warn("failed to invalidate cached resource", zap.String("id", id), zap.Error(err))
		}
	}

	s.logger.Info("resource updated", zap.String("id", id), zap.String("type", existing.Type))

	return existing, result, nil
}

// Delete removes a resource by ID
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.logger.Warn("failed to invalidate cached resource", zap.String("id", id), zap.Error(err))
		}
	}

	s.logger.Info("resource deleted", zap.String("id", id))
	return nil
}

// List compiles the raw query into criteria and returns the matching page
func (s *Service) List(ctx context.Context, raw query.RawQuery) (*Page, error) {
	criteria := query.Compile(raw)

	items, err := s.store.List(ctx, criteria)
	if err != nil {
		return nil, err
	}

	total, err := s.store.Count(ctx, criteria)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []*resource.Resource{}
	}

	return &Page{
		Items: items,
		Total: total,
		Skip:  criteria.Skip,
		Take:  criteria.Take,
	}, nil
}
