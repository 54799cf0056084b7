// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
)

// TopVotedHandler handles the global top-voted query.
type TopVotedHandler struct {
	deps Dependencies
}

// NewTopVotedHandler creates a new top-voted handler.
func NewTopVotedHandler(deps Dependencies) *TopVotedHandler {
	return &TopVotedHandler{deps: deps}
}

// HandleTopVoted handles GET /toplist/top-voted?limit=N. The limit is
// optional; the service applies its default and maximum.
func (h *TopVotedHandler) HandleTopVoted(w http.ResponseWriter, r *http.Request) {
	const op = "api.top_voted"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	items, err := h.deps.TopVoted(r.Context(), limit)
	if err != nil {
		writeStoreError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, items)
}
