// Package ranking holds the rank sequence rules for category toplists.
//
// Every category's items carry ranks forming the contiguous sequence 1..N.
// Create and delete derive ranks deterministically; an explicit reorder is
// the only operation that accepts a caller-supplied ordering, and it must be
// an exact permutation of the category's current members.
package ranking

import (
	"fmt"
	"sort"

	"github.com/okian/toplist/internal/domain/model"
)

// NextRank returns the rank assigned to an item appended to a category that
// currently holds size items.
func NextRank(size int) int {
	return size + 1
}

// ShiftAfterRemoval returns the rank an item holds after the item at rank
// removed left its category.
func ShiftAfterRemoval(rank, removed int) int {
	if rank > removed {
		return rank - 1
	}
	return rank
}

// ValidatePermutation checks that proposed is exactly a permutation of
// current: same size, same members, no duplicates. It returns an error
// wrapping ErrMembershipMismatch describing the first violation found.
func ValidatePermutation(current, proposed []string) error {
	if len(proposed) != len(current) {
		return fmt.Errorf("%w: got %d ids, category has %d items", ErrMembershipMismatch, len(proposed), len(current))
	}

	members := make(map[string]bool, len(current))
	for _, id := range current {
		members[id] = true
	}

	seen := make(map[string]bool, len(proposed))
	for _, id := range proposed {
		if seen[id] {
			return fmt.Errorf("%w: duplicate id %s", ErrMembershipMismatch, id)
		}
		seen[id] = true
		if !members[id] {
			return fmt.Errorf("%w: id %s is not a member of the category", ErrMembershipMismatch, id)
		}
	}
	return nil
}

// Positions maps each id in orderedIDs to its 1-based rank.
func Positions(orderedIDs []string) map[string]int {
	positions := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		positions[id] = i + 1
	}
	return positions
}

// SortByRank orders items ascending by rank. Ranks are unique within a
// category, so the result is total.
func SortByRank(items []model.Item) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Rank < items[j].Rank
	})
}

// SortByVotes orders items descending by vote count, breaking ties by
// ascending rank so equal-vote items keep a stable, reproducible order.
func SortByVotes(items []model.Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].VoteCount != items[j].VoteCount {
			return items[i].VoteCount > items[j].VoteCount
		}
		return items[i].Rank < items[j].Rank
	})
}

// SortByVotesGlobal orders items across categories descending by vote count,
// breaking ties by ascending id. Ids are time-ordered, so the tie break
// follows creation order.
func SortByVotesGlobal(items []model.Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].VoteCount != items[j].VoteCount {
			return items[i].VoteCount > items[j].VoteCount
		}
		return items[i].ID < items[j].ID
	})
}

// CheckContiguous verifies that the ranks in items form exactly 1..N.
// It returns an error wrapping ErrRankGap naming the first violation.
func CheckContiguous(items []model.Item) error {
	seen := make(map[int]string, len(items))
	for _, item := range items {
		if item.Rank < 1 || item.Rank > len(items) {
			return fmt.Errorf("%w: item %s has rank %d outside 1..%d", ErrRankGap, item.ID, item.Rank, len(items))
		}
		if other, dup := seen[item.Rank]; dup {
			return fmt.Errorf("%w: items %s and %s share rank %d", ErrRankGap, other, item.ID, item.Rank)
		}
		seen[item.Rank] = item.ID
	}
	return nil
}
