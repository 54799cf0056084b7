package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/toplist/internal/domain/model"
	"github.com/okian/toplist/internal/domain/ranking"
	"github.com/okian/toplist/pkg/metrics"
)

// In-memory Store implementation.
//
// Concurrency model:
//   - mu guards the byID map and the rank/category fields of records.
//   - locks serializes rank-affecting operations (create, delete, reorder,
//     category moves) per category, with a bounded wait. Operations on
//     different categories never block each other on the lock table.
//   - Vote counters are atomic and bypass the category locks entirely.
//
// Readers take mu.RLock, so a reorder's full rank reassignment (done under
// mu.Lock) is observed either completely or not at all.

const defaultCategoryLockWait = 250 * time.Millisecond

// record is the store's single owned copy of an item. Rank and category are
// guarded by MemStore.mu; votes is independently atomic.
type record struct {
	id          string
	title       string
	description string
	category    string
	imageURL    string
	rank        int
	votes       atomic.Int64
}

func (r *record) snapshot() model.Item {
	return model.Item{
		ID:          r.id,
		Title:       r.title,
		Description: r.description,
		Category:    r.category,
		Rank:        r.rank,
		VoteCount:   r.votes.Load(),
		ImageURL:    r.imageURL,
	}
}

// MemStore keeps all toplist state in memory.
type MemStore struct {
	mu    sync.RWMutex
	byID  map[string]*record
	locks *lockTable

	lockWait time.Duration
}

// NewMemStore constructs an in-memory store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		byID:     make(map[string]*record),
		lockWait: defaultCategoryLockWait,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.locks = newLockTable(s.lockWait)
	return s
}

// Create implements Store.Create. The new item is ranked after every current
// member of its category.
func (s *MemStore) Create(ctx context.Context, title, category, description, imageURL string) (model.Item, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := validateFields(title, category); err != nil {
		return model.Item{}, err
	}

	if err := s.locks.acquire(ctx, category); err != nil {
		return model.Item{}, err
	}
	defer s.locks.release(category)

	id, err := uuid.NewV7()
	if err != nil {
		return model.Item{}, fmt.Errorf("generate item id: %w", err)
	}

	s.mu.Lock()
	rec := &record{
		id:          id.String(),
		title:       title,
		description: description,
		category:    category,
		imageURL:    imageURL,
		rank:        ranking.NextRank(s.categorySizeLocked(category)),
	}
	s.byID[rec.id] = rec
	item := rec.snapshot()
	s.updateTotalsLocked()
	s.mu.Unlock()

	metrics.RecordItemCreated()
	return item, nil
}

// Get implements Store.Get.
func (s *MemStore) Get(ctx context.Context, id string) (model.Item, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return model.Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec.snapshot(), nil
}

// Update implements Store.Update. A category change closes the rank gap in
// the old category and appends the item to the new one; other field changes
// leave ranks alone.
func (s *MemStore) Update(ctx context.Context, id string, patch model.Patch) (model.Item, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := validatePatch(patch); err != nil {
		return model.Item{}, err
	}

	if patch.Empty() {
		// Nothing to apply; behaves like a read, including the not-found case.
		return s.Get(ctx, id)
	}

	for {
		s.mu.RLock()
		rec, ok := s.byID[id]
		var oldCategory string
		if ok {
			oldCategory = rec.category
		}
		s.mu.RUnlock()
		if !ok {
			return model.Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		if patch.Category == nil || *patch.Category == oldCategory {
			item, retry, err := s.updateInPlace(id, patch)
			if retry {
				continue
			}
			if err != nil {
				return model.Item{}, err
			}
			metrics.RecordItemUpdated()
			return item, nil
		}

		item, retry, err := s.moveCategory(ctx, id, oldCategory, patch)
		if retry {
			continue
		}
		if err != nil {
			return model.Item{}, err
		}
		metrics.RecordItemUpdated()
		return item, nil
	}
}

// updateInPlace applies a patch that does not move the item between
// categories. retry is set when the item's category changed concurrently.
func (s *MemStore) updateInPlace(id string, patch model.Patch) (model.Item, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return model.Item{}, false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if patch.Category != nil && rec.category != *patch.Category {
		// Raced with a concurrent category move; re-evaluate.
		return model.Item{}, true, nil
	}

	applyFields(rec, patch)
	return rec.snapshot(), false, nil
}

// moveCategory applies a patch that moves the item from oldCategory to the
// patch's category, holding both category locks for the duration.
func (s *MemStore) moveCategory(ctx context.Context, id, oldCategory string, patch model.Patch) (model.Item, bool, error) {
	newCategory := *patch.Category

	if err := s.locks.acquireAll(ctx, oldCategory, newCategory); err != nil {
		return model.Item{}, false, err
	}
	defer s.locks.releaseAll(oldCategory, newCategory)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return model.Item{}, false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if rec.category != oldCategory {
		// The item moved while we were waiting on the locks; retry with the
		// category it lives in now.
		return model.Item{}, true, nil
	}

	s.closeGapLocked(oldCategory, rec.rank)
	rec.category = newCategory
	rec.rank = ranking.NextRank(s.categorySizeLocked(newCategory) - 1) // rec already counts itself
	applyFields(rec, patch)
	s.updateTotalsLocked()
	return rec.snapshot(), false, nil
}

// Delete implements Store.Delete.
func (s *MemStore) Delete(ctx context.Context, id string) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	for {
		s.mu.RLock()
		rec, ok := s.byID[id]
		var category string
		if ok {
			category = rec.category
		}
		s.mu.RUnlock()
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		if err := s.locks.acquire(ctx, category); err != nil {
			return err
		}

		s.mu.Lock()
		rec, ok = s.byID[id]
		if !ok {
			s.mu.Unlock()
			s.locks.release(category)
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if rec.category != category {
			// The item moved to another category while we were waiting.
			s.mu.Unlock()
			s.locks.release(category)
			continue
		}

		removedRank := rec.rank
		delete(s.byID, id)
		s.closeGapLocked(category, removedRank)
		s.updateTotalsLocked()
		s.mu.Unlock()
		s.locks.release(category)

		metrics.RecordItemDeleted()
		return nil
	}
}

// List implements Store.List. Items come back in creation order.
func (s *MemStore) List(ctx context.Context) ([]model.Item, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	items := make([]model.Item, 0, len(s.byID))
	for _, rec := range s.byID {
		items = append(items, rec.snapshot())
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// Vote implements Store.Vote. It only needs atomicity on the counter and
// never touches the category locks.
func (s *MemStore) Vote(ctx context.Context, id string) (model.Item, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return model.Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	votes := rec.votes.Add(1)
	item := rec.snapshot()
	item.VoteCount = votes

	metrics.RecordVoteCast()
	return item, nil
}

// Reorder implements Store.Reorder. The permutation check and the rank
// reassignment happen under the category's lock, so the supplied ordering is
// validated against the exact member set it is applied to.
func (s *MemStore) Reorder(ctx context.Context, category string, orderedIDs []string) ([]model.Item, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := s.locks.acquire(ctx, category); err != nil {
		return nil, err
	}
	defer s.locks.release(category)

	s.mu.RLock()
	current := make([]string, 0, len(orderedIDs))
	for _, rec := range s.byID {
		if rec.category == category {
			current = append(current, rec.id)
		}
	}
	s.mu.RUnlock()

	if err := ranking.ValidatePermutation(current, orderedIDs); err != nil {
		metrics.RecordReorderConflict()
		return nil, fmt.Errorf("%w: %w", ErrConflict, err)
	}

	s.mu.Lock()
	items := make([]model.Item, len(orderedIDs))
	for id, rank := range ranking.Positions(orderedIDs) {
		rec := s.byID[id]
		rec.rank = rank
		items[rank-1] = rec.snapshot()
	}
	s.mu.Unlock()

	metrics.RecordReorderApplied()
	return items, nil
}

// Categories implements Store.Categories. The set is derived from the items;
// nothing caches it independently.
func (s *MemStore) Categories(ctx context.Context) ([]string, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	seen := make(map[string]bool)
	for _, rec := range s.byID {
		seen[rec.category] = true
	}
	s.mu.RUnlock()

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

// ItemsByCategory implements Store.ItemsByCategory.
func (s *MemStore) ItemsByCategory(ctx context.Context, category string, order Order) ([]model.Item, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	items := make([]model.Item, 0)
	for _, rec := range s.byID {
		if rec.category == category {
			items = append(items, rec.snapshot())
		}
	}
	s.mu.RUnlock()

	switch order {
	case RankOrder:
		ranking.SortByRank(items)
	case VoteOrder:
		ranking.SortByVotes(items)
	default:
		return nil, fmt.Errorf("%w: unknown order %d", ErrValidation, order)
	}
	return items, nil
}

// TopVoted implements Store.TopVoted.
func (s *MemStore) TopVoted(ctx context.Context, limit int) ([]model.Item, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if limit < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	s.mu.RLock()
	items := make([]model.Item, 0, len(s.byID))
	for _, rec := range s.byID {
		items = append(items, rec.snapshot())
	}
	s.mu.RUnlock()

	ranking.SortByVotesGlobal(items)
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// Count implements Store.Count.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// categorySizeLocked counts the items in category. Callers hold mu.
func (s *MemStore) categorySizeLocked(category string) int {
	n := 0
	for _, rec := range s.byID {
		if rec.category == category {
			n++
		}
	}
	return n
}

// closeGapLocked shifts down every rank above removedRank in category.
// Callers hold mu and the category's lock.
func (s *MemStore) closeGapLocked(category string, removedRank int) {
	for _, rec := range s.byID {
		if rec.category == category {
			rec.rank = ranking.ShiftAfterRemoval(rec.rank, removedRank)
		}
	}
}

// updateTotalsLocked refreshes the item and category gauges. Callers hold mu.
func (s *MemStore) updateTotalsLocked() {
	seen := make(map[string]bool)
	for _, rec := range s.byID {
		seen[rec.category] = true
	}
	metrics.UpdateTotalItems(len(s.byID))
	metrics.UpdateTotalCategories(len(seen))
}

func applyFields(rec *record, patch model.Patch) {
	if patch.Title != nil {
		rec.title = *patch.Title
	}
	if patch.Description != nil {
		rec.description = *patch.Description
	}
	if patch.ImageURL != nil {
		rec.imageURL = *patch.ImageURL
	}
}

// validateFields enforces the required item fields, naming every offender.
func validateFields(title, category string) error {
	var missing []string
	if strings.TrimSpace(title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s must not be empty", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// validatePatch rejects patches that would blank a required field.
func validatePatch(patch model.Patch) error {
	var blanked []string
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		blanked = append(blanked, "title")
	}
	if patch.Category != nil && strings.TrimSpace(*patch.Category) == "" {
		blanked = append(blanked, "category")
	}
	if len(blanked) > 0 {
		return fmt.Errorf("%w: %s must not be empty", ErrValidation, strings.Join(blanked, ", "))
	}
	return nil
}
