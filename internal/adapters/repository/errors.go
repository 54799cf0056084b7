package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("item not found")
	ErrValidation   = errors.New("invalid item")
	ErrConflict     = errors.New("reorder conflict")
	ErrCategoryBusy = errors.New("category busy")
	ErrInvalidLimit = errors.New("invalid limit")
)
