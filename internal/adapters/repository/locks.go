package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// lockTable provides mutual exclusion scoped by category key with a bounded
// wait. A category's slot channel holds at most one token; holding the token
// means holding the category's rank sequence.
type lockTable struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
	wait  time.Duration
}

func newLockTable(wait time.Duration) *lockTable {
	return &lockTable{
		slots: make(map[string]chan struct{}),
		wait:  wait,
	}
}

func (t *lockTable) slot(category string) chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[category]
	if !ok {
		s = make(chan struct{}, 1)
		t.slots[category] = s
	}
	return s
}

// acquire takes the category's lock, failing with ErrCategoryBusy once the
// bounded wait elapses so callers never block indefinitely.
func (t *lockTable) acquire(ctx context.Context, category string) error {
	slot := t.slot(category)

	select {
	case slot <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(t.wait)
	defer timer.Stop()

	select {
	case slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		// A caller-side deadline expiring mid-wait is the same outcome as
		// our own bounded wait elapsing: the category stayed busy.
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", ErrCategoryBusy, ctx.Err())
		}
		return ctx.Err()
	case <-timer.C:
		return ErrCategoryBusy
	}
}

func (t *lockTable) release(category string) {
	<-t.slot(category)
}

// acquireAll takes the locks of several categories in sorted order so two
// cross-category operations can never deadlock. On failure it releases every
// lock taken so far.
func (t *lockTable) acquireAll(ctx context.Context, categories ...string) error {
	unique := make([]string, 0, len(categories))
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if !seen[c] {
			seen[c] = true
			unique = append(unique, c)
		}
	}
	sort.Strings(unique)

	for i, c := range unique {
		if err := t.acquire(ctx, c); err != nil {
			for _, held := range unique[:i] {
				t.release(held)
			}
			return err
		}
	}
	return nil
}

func (t *lockTable) releaseAll(categories ...string) {
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if !seen[c] {
			seen[c] = true
			t.release(c)
		}
	}
}
