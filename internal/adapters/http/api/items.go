// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ItemsHandler handles the /toplist collection.
type ItemsHandler struct {
	deps Dependencies
}

// NewItemsHandler creates a new collection handler.
func NewItemsHandler(deps Dependencies) *ItemsHandler {
	return &ItemsHandler{deps: deps}
}

// HandleCollection handles GET /toplist and POST /toplist.
func (h *ItemsHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ItemsHandler) list(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_items"
	items, err := h.deps.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemsHandler) create(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_item"
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", WrapKind(op, ErrBadRequest, err))
		return
	}

	item, err := h.deps.Create(r.Context(), req.Title, req.Category, req.Description, req.ImageURL)
	if err != nil {
		writeStoreError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// ItemHandler handles single-item routes under /toplist/{id}.
type ItemHandler struct {
	deps Dependencies
}

// NewItemHandler creates a new item handler.
func NewItemHandler(deps Dependencies) *ItemHandler {
	return &ItemHandler{deps: deps}
}

// HandleItem handles GET/PUT/DELETE /toplist/{id} and POST /toplist/{id}/vote.
func (h *ItemHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/toplist/")

	if id, ok := strings.CutSuffix(path, "/vote"); ok && r.Method == http.MethodPost {
		h.vote(w, r, id)
		return
	}
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, path)
	case http.MethodPut:
		h.update(w, r, path)
	case http.MethodDelete:
		h.delete(w, r, path)
	default:
		http.NotFound(w, r)
	}
}

func (h *ItemHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.get_item"
	item, err := h.deps.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.update_item"
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	item, err := h.deps.Update(r.Context(), id, req.patch())
	if err != nil {
		writeStoreError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.delete_item"
	if err := h.deps.Delete(r.Context(), id); err != nil {
		writeStoreError(w, Wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) vote(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.vote_item"
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	item, err := h.deps.Vote(r.Context(), id)
	if err != nil {
		writeStoreError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, item)
}
