// Package repository defines the item store interface and errors.
package repository

import (
	"context"

	"github.com/okian/toplist/internal/domain/model"
)

// Order selects the ordering of category-scoped queries.
type Order int

const (
	// RankOrder returns items ascending by rank.
	RankOrder Order = iota
	// VoteOrder returns items descending by vote count, ties ascending by rank.
	VoteOrder
)

// Store provides read/write access to the toplist state. All mutations keep
// every category's ranks contiguous (1..N) before returning.
type Store interface {
	// Create adds an item at the end of its category's toplist.
	// Returns ErrValidation if title or category is empty.
	Create(ctx context.Context, title, category, description, imageURL string) (model.Item, error)

	// Get returns an item by id. Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (model.Item, error)

	// Update applies a partial update. A category change removes the item
	// from its old category (closing the rank gap) and appends it to the new
	// one. Returns ErrNotFound or ErrValidation.
	Update(ctx context.Context, id string, patch model.Patch) (model.Item, error)

	// Delete removes an item and closes the rank gap it leaves behind.
	// Returns ErrNotFound if the id is unknown.
	Delete(ctx context.Context, id string) error

	// List returns all items across categories.
	List(ctx context.Context) ([]model.Item, error)

	// Vote increments an item's vote counter by one.
	// Returns ErrNotFound if the id is unknown.
	Vote(ctx context.Context, id string) (model.Item, error)

	// Reorder atomically reassigns ranks in category following orderedIDs,
	// which must be an exact permutation of the category's current members.
	// Returns ErrConflict otherwise, leaving ranks untouched.
	Reorder(ctx context.Context, category string, orderedIDs []string) ([]model.Item, error)

	// Categories returns the distinct categories across all items.
	Categories(ctx context.Context) ([]string, error)

	// ItemsByCategory returns a category's items in the requested order.
	ItemsByCategory(ctx context.Context, category string, order Order) ([]model.Item, error)

	// TopVoted returns up to limit items across all categories, descending by
	// vote count. Returns ErrInvalidLimit if limit < 1.
	TopVoted(ctx context.Context, limit int) ([]model.Item, error)

	// Count returns the number of items tracked in the store.
	Count(ctx context.Context) int
}
