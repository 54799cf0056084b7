// Package repository defines the item store interface and errors.
package repository

import "time"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithCategoryLockWait bounds how long a mutation waits for a category's
// rank sequence before failing with ErrCategoryBusy.
func WithCategoryLockWait(wait time.Duration) Option {
	return func(s *MemStore) {
		if wait > 0 {
			s.lockWait = wait
		}
	}
}
