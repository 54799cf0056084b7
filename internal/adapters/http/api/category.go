// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	repository "github.com/okian/toplist/internal/adapters/repository"
)

// CategoriesHandler handles the distinct-category listing.
type CategoriesHandler struct {
	deps Dependencies
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(deps Dependencies) *CategoriesHandler {
	return &CategoriesHandler{deps: deps}
}

// HandleList handles GET /toplist/categories.
func (h *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_categories"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	categories, err := h.deps.Categories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// CategoryHandler handles category-scoped routes under /toplist/category/.
type CategoryHandler struct {
	deps Dependencies
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(deps Dependencies) *CategoryHandler {
	return &CategoryHandler{deps: deps}
}

// HandleCategory dispatches:
//
//	GET /toplist/category/{category}           -> items in rank order
//	GET /toplist/category/{category}/by-votes  -> items in vote order
//	PUT /toplist/category/{category}/reorder   -> apply a full ordered id list
func (h *CategoryHandler) HandleCategory(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/toplist/category/")

	if category, ok := strings.CutSuffix(path, "/by-votes"); ok {
		h.items(w, r, category, repository.VoteOrder)
		return
	}
	if category, ok := strings.CutSuffix(path, "/reorder"); ok {
		h.reorder(w, r, category)
		return
	}
	h.items(w, r, path, repository.RankOrder)
}

func (h *CategoryHandler) items(w http.ResponseWriter, r *http.Request, category string, order repository.Order) {
	const op = "api.items_by_category"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if category == "" || strings.Contains(category, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	items, err := h.deps.ItemsByCategory(r.Context(), category, order)
	if err != nil {
		writeStoreError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// reorder handles PUT /toplist/category/{category}/reorder. The body is the
// category's full ordered id list. A 409 means the list no longer matches the
// live membership; callers must refetch before trying again.
func (h *CategoryHandler) reorder(w http.ResponseWriter, r *http.Request, category string) {
	const op = "api.reorder_category"
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	if category == "" || strings.Contains(category, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	var orderedIDs []string
	if err := json.NewDecoder(r.Body).Decode(&orderedIDs); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if orderedIDs == nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("body must be an id array")))
		return
	}

	items, err := h.deps.Reorder(r.Context(), category, orderedIDs)
	if err != nil {
		writeStoreError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, items)
}
