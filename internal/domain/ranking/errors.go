package ranking

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrMembershipMismatch = errors.New("ordering does not match category membership")
	ErrRankGap            = errors.New("rank sequence is not contiguous")
)
