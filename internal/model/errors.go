package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrMissingID      = errors.New("player id is required")

	// Viewer errors
	ErrInvalidViewer = errors.New("invalid viewer token")
)
