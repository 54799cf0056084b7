// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	repository "github.com/okian/toplist/internal/adapters/repository"
	"github.com/okian/toplist/internal/domain/model"
)

// Item mirrors the read shape returned by toplist queries.
type Item = model.Item

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id string) (Item, error)
	Create(ctx context.Context, title, category, description, imageURL string) (Item, error)
	Update(ctx context.Context, id string, patch model.Patch) (Item, error)
	Delete(ctx context.Context, id string) error
	Vote(ctx context.Context, id string) (Item, error)
	Reorder(ctx context.Context, category string, orderedIDs []string) ([]Item, error)
	Categories(ctx context.Context) ([]string, error)
	ItemsByCategory(ctx context.Context, category string, order repository.Order) ([]Item, error)
	TopVoted(ctx context.Context, limit int) ([]Item, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	itemsHandler      *ItemsHandler
	itemHandler       *ItemHandler
	categoryHandler   *CategoryHandler
	categoriesHandler *CategoriesHandler
	topVotedHandler   *TopVotedHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		itemsHandler:      NewItemsHandler(deps),
		itemHandler:       NewItemHandler(deps),
		categoryHandler:   NewCategoryHandler(deps),
		categoriesHandler: NewCategoriesHandler(deps),
		topVotedHandler:   NewTopVotedHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
// Specific paths are registered alongside prefixes; net/http picks the most
// specific pattern, so /toplist/categories wins over /toplist/.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/toplist", MetricsMiddleware(s.itemsHandler.HandleCollection, "toplist"))
	mux.HandleFunc("/toplist/categories", MetricsMiddleware(s.categoriesHandler.HandleList, "categories"))
	mux.HandleFunc("/toplist/top-voted", MetricsMiddleware(s.topVotedHandler.HandleTopVoted, "top_voted"))
	mux.HandleFunc("/toplist/category/", MetricsMiddleware(s.categoryHandler.HandleCategory, "category"))
	mux.HandleFunc("/toplist/", MetricsMiddleware(s.itemHandler.HandleItem, "item"))
}

// createRequest mirrors the JSON body of POST /toplist.
type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
}

func (c createRequest) validate() error {
	var missing []string
	if strings.TrimSpace(c.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(c.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return errors.New("missing " + strings.Join(missing, ", "))
	}
	return nil
}

// updateRequest mirrors the JSON body of PUT /toplist/{id}. Absent fields are
// left unchanged. A rank field, if supplied, is deliberately ignored: the
// reorder endpoint is the only path that accepts caller-supplied ordering.
type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"imageUrl"`
}

func (u updateRequest) patch() model.Patch {
	return model.Patch{
		Title:       u.Title,
		Description: u.Description,
		Category:    u.Category,
		ImageURL:    u.ImageURL,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeStoreError translates store error kinds 1:1 to response codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_error", err)
	case errors.Is(err, repository.ErrInvalidLimit):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, repository.ErrCategoryBusy):
		writeError(w, http.StatusConflict, "busy", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
