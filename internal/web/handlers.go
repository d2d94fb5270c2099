package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/RamiObaid92/AIProjectTest/internal/query"
	"github.com/RamiObaid92/AIProjectTest/internal/schema"
	"github.com/RamiObaid92/AIProjectTest/internal/service"
	"github.com/RamiObaid92/AIProjectTest/internal/store"
	"github.com/RamiObaid92/AIProjectTest/internal/web/middleware"
)

// ownerHeader names the fallback header for the owner ID when requests
// are not authenticated
const ownerHeader = "X-Owner-Id"

// Handler serves the resource API endpoints
type Handler struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewHandler creates the API handler
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListTypes returns every registered type descriptor
func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	descriptors := h.svc.Lookup().All()

	dtos := make([]descriptorDTO, 0, len(descriptors))
	for _, d := range descriptors {
		dtos = append(dtos, toDescriptorDTO(d))
	}

	writeJSON(w, http.StatusOK, dtos)
}

// GetType returns a single type descriptor
func (h *Handler) GetType(w http.ResponseWriter, r *http.Request) {
	typeKey := chi.URLParam(r, "typeKey")

	descriptor, ok := h.svc.Lookup().Get(typeKey)
	if !ok {
		notFound(w, "Unknown resource type: "+typeKey)
		return
	}

	writeJSON(w, http.StatusOK, toDescriptorDTO(descriptor))
}

// CreateResource validates the request body against the type's descriptor
// and persists a new resource
func (h *Handler) CreateResource(w http.ResponseWriter, r *http.Request) {
	typeKey := chi.URLParam(r, "typeKey")

	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	created, result, err := h.svc.Create(r.Context(), typeKey, ownerID(r), payload)
	if err != nil {
		h.logger.Error("create failed", zap.String("type", typeKey), zap.Error(err))
		internalError(w)
		return
	}
	if !result.IsValid() {
		if isUnknownType(result) {
			notFound(w, "Unknown resource type: "+typeKey)
			return
		}
		writeValidationErrors(w, result)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetResource returns a resource by ID
func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(w, "")
			return
		}
		h.logger.Error("get failed", zap.String("id", id), zap.Error(err))
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// UpdateResource replaces a resource's payload after re-validation
func (h *Handler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	updated, result, err := h.svc.Update(r.Context(), id, payload)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(w, "")
			return
		}
		h.logger.Error("update failed", zap.String("id", id), zap.Error(err))
		internalError(w)
		return
	}
	if !result.IsValid() {
		writeValidationErrors(w, result)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteResource removes a resource by ID
func (h *Handler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(w, "")
			return
		}
		h.logger.Error("delete failed", zap.String("id", id), zap.Error(err))
		internalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListResources returns a page of resources matching the query parameters
func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	raw, ok := bindListQuery(w, r)
	if !ok {
		return
	}

	page, err := h.svc.List(r.Context(), raw)
	if err != nil {
		h.logger.Error("list failed", zap.String("type", raw.Type), zap.Error(err))
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// decodePayload reads the request body as JSON. A body that is valid
// JSON but not an object is passed through so the validation engine can
// reject it with an InvalidPayloadShape error; only malformed JSON is
// rejected here.
func decodePayload(w http.ResponseWriter, r *http.Request) (any, bool) {
	var raw any
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	if err := decoder.Decode(&raw); err != nil {
		badRequest(w, "Request body must be valid JSON")
		return nil, false
	}

	return raw, true
}

// ownerID resolves the owner of a created resource: the authenticated
// user when auth is enabled, otherwise the X-Owner-Id header
func ownerID(r *http.Request) string {
	if userID := middleware.GetUserID(r.Context()); userID != "" {
		return userID
	}
	return r.Header.Get(ownerHeader)
}

// bindListQuery parses the list endpoint's query parameters into a raw
// query for the criteria compiler
func bindListQuery(w http.ResponseWriter, r *http.Request) (query.RawQuery, bool) {
	params := r.URL.Query()

	raw := query.RawQuery{
		Type:          chi.URLParam(r, "typeKey"),
		OwnerID:       params.Get("ownerId"),
		SearchText:    params.Get("search"),
		SortField:     params.Get("sort"),
		SortDirection: params.Get("order"),
	}

	var ok bool
	if raw.Page, ok = intParam(w, params.Get("page"), "page"); !ok {
		return raw, false
	}
	if raw.PageSize, ok = intParam(w, params.Get("pageSize"), "pageSize"); !ok {
		return raw, false
	}
	if raw.CreatedAfter, ok = timeParam(w, params.Get("createdAfter"), "createdAfter"); !ok {
		return raw, false
	}
	if raw.CreatedBefore, ok = timeParam(w, params.Get("createdBefore"), "createdBefore"); !ok {
		return raw, false
	}

	return raw, true
}

// intParam parses an optional integer query parameter
func intParam(w http.ResponseWriter, value, name string) (int, bool) {
	if value == "" {
		return 0, true
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		badRequest(w, "Query parameter "+name+" must be an integer")
		return 0, false
	}
	return n, true
}

// timeParam parses an optional RFC 3339 timestamp query parameter
func timeParam(w http.ResponseWriter, value, name string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		badRequest(w, "Query parameter "+name+" must be an RFC 3339 timestamp")
		return nil, false
	}
	return &t, true
}

// descriptorDTO is the wire shape of a type descriptor
type descriptorDTO struct {
	TypeKey       string         `json:"typeKey"`
	DisplayName   string         `json:"displayName"`
	SchemaVersion int            `json:"schemaVersion"`
	Fields        []fieldDTO     `json:"fields"`
	Indexing      *indexingDTO   `json:"indexing,omitempty"`
	UIHints       *uiHintsDTO    `json:"uiHints,omitempty"`
}

type fieldDTO struct {
	Name      string `json:"name"`
	DataType  string `json:"dataType"`
	Required  bool   `json:"required"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
}

type indexingDTO struct {
	FilterFields   []string `json:"filterFields,omitempty"`
	SortFields     []string `json:"sortFields,omitempty"`
	FullTextFields []string `json:"fullTextFields,omitempty"`
}

type uiHintsDTO struct {
	TitleField string   `json:"titleField,omitempty"`
	ListFields []string `json:"listFields,omitempty"`
}

// toDescriptorDTO maps the schema model to its wire shape. Policy is
// intentionally not exposed.
func toDescriptorDTO(d *schema.TypeDescriptor) descriptorDTO {
	dto := descriptorDTO{
		TypeKey:       d.TypeKey,
		DisplayName:   d.DisplayName,
		SchemaVersion: d.SchemaVersion,
		Fields:        make([]fieldDTO, 0, len(d.Fields)),
	}

	for _, f := range d.Fields {
		dto.Fields = append(dto.Fields, fieldDTO{
			Name:      f.Name,
			DataType:  f.DataType.String(),
			Required:  f.Required,
			MaxLength: f.MaxLength,
			Pattern:   f.Pattern,
		})
	}

	if d.Indexing != nil {
		dto.Indexing = &indexingDTO{
			FilterFields:   d.Indexing.FilterFields,
			SortFields:     d.Indexing.SortFields,
			FullTextFields: d.Indexing.FullTextFields,
		}
	}
	if d.UIHints != nil {
		dto.UIHints = &uiHintsDTO{
			TitleField: d.UIHints.TitleField,
			ListFields: d.UIHints.ListFields,
		}
	}

	return dto
}
