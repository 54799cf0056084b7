// Package model contains domain models passed between layers.
package model

// Item is a ranked, votable entry in a category's toplist.
// Fields mirror the JSON shape served by the REST API.
type Item struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Rank        int    `json:"rank"`
	VoteCount   int64  `json:"voteCount"`
	ImageURL    string `json:"imageUrl"`
}

// Patch describes a partial update of an item. Nil fields are left unchanged.
// Rank is deliberately absent: ordering changes go through reorder only.
type Patch struct {
	Title       *string
	Description *string
	Category    *string
	ImageURL    *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil && p.ImageURL == nil
}
