package ranking

import (
	"errors"
	"testing"

	"github.com/okian/toplist/internal/domain/model"
)

func TestNextRank(t *testing.T) {
	if got := NextRank(0); got != 1 {
		t.Errorf("expected rank 1 for empty category, got %d", got)
	}
	if got := NextRank(4); got != 5 {
		t.Errorf("expected rank 5, got %d", got)
	}
}

func TestShiftAfterRemoval(t *testing.T) {
	cases := []struct {
		rank, removed, want int
	}{
		{1, 2, 1},
		{2, 2, 2}, // the removed rank itself is gone; callers never keep it
		{3, 2, 2},
		{5, 1, 4},
	}
	for _, c := range cases {
		if got := ShiftAfterRemoval(c.rank, c.removed); got != c.want {
			t.Errorf("ShiftAfterRemoval(%d, %d) = %d, want %d", c.rank, c.removed, got, c.want)
		}
	}
}

func TestValidatePermutation(t *testing.T) {
	current := []string{"a", "b", "c"}

	if err := ValidatePermutation(current, []string{"c", "a", "b"}); err != nil {
		t.Errorf("valid permutation rejected: %v", err)
	}

	if err := ValidatePermutation(current, []string{"a", "b"}); !errors.Is(err, ErrMembershipMismatch) {
		t.Errorf("expected membership mismatch for missing member, got %v", err)
	}

	if err := ValidatePermutation(current, []string{"a", "b", "x"}); !errors.Is(err, ErrMembershipMismatch) {
		t.Errorf("expected membership mismatch for foreign id, got %v", err)
	}

	if err := ValidatePermutation(current, []string{"a", "a", "b"}); !errors.Is(err, ErrMembershipMismatch) {
		t.Errorf("expected membership mismatch for duplicate id, got %v", err)
	}

	if err := ValidatePermutation(nil, nil); err != nil {
		t.Errorf("empty category with empty ordering should pass, got %v", err)
	}
}

func TestPositions(t *testing.T) {
	positions := Positions([]string{"x", "y", "z"})
	if positions["x"] != 1 || positions["y"] != 2 || positions["z"] != 3 {
		t.Errorf("unexpected positions: %v", positions)
	}
}

func TestSortByRank(t *testing.T) {
	items := []model.Item{
		{ID: "b", Rank: 2},
		{ID: "c", Rank: 3},
		{ID: "a", Rank: 1},
	}
	SortByRank(items)
	for i, want := range []string{"a", "b", "c"} {
		if items[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, items[i].ID)
		}
	}
}

func TestSortByVotesTieBreak(t *testing.T) {
	items := []model.Item{
		{ID: "low", Rank: 3, VoteCount: 1},
		{ID: "tied-late", Rank: 2, VoteCount: 5},
		{ID: "tied-early", Rank: 1, VoteCount: 5},
	}
	SortByVotes(items)
	if items[0].ID != "tied-early" || items[1].ID != "tied-late" || items[2].ID != "low" {
		t.Errorf("unexpected vote order: %v", items)
	}
}

func TestSortByVotesGlobalTieBreak(t *testing.T) {
	items := []model.Item{
		{ID: "002", VoteCount: 5},
		{ID: "001", VoteCount: 5},
		{ID: "003", VoteCount: 9},
	}
	SortByVotesGlobal(items)
	if items[0].ID != "003" || items[1].ID != "001" || items[2].ID != "002" {
		t.Errorf("unexpected global vote order: %v", items)
	}
}

func TestCheckContiguous(t *testing.T) {
	ok := []model.Item{
		{ID: "a", Rank: 2},
		{ID: "b", Rank: 1},
		{ID: "c", Rank: 3},
	}
	if err := CheckContiguous(ok); err != nil {
		t.Errorf("contiguous ranks rejected: %v", err)
	}

	gap := []model.Item{
		{ID: "a", Rank: 1},
		{ID: "b", Rank: 3},
	}
	if err := CheckContiguous(gap); !errors.Is(err, ErrRankGap) {
		t.Errorf("expected rank gap error, got %v", err)
	}

	dup := []model.Item{
		{ID: "a", Rank: 1},
		{ID: "b", Rank: 1},
	}
	if err := CheckContiguous(dup); !errors.Is(err, ErrRankGap) {
		t.Errorf("expected rank gap error for duplicates, got %v", err)
	}

	if err := CheckContiguous(nil); err != nil {
		t.Errorf("empty category should be contiguous, got %v", err)
	}
}
