package domain

import "errors"

// Error kinds shared by every layer. Storage and usecase code wrap these with
// %w; transport code only needs errors.Is to pick a status.
var (
	ErrUnauthorized = errors.New("not authorized")
	ErrConflict     = errors.New("already exists")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)
