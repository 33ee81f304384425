package model

import "errors"

// Common errors used across the application
var (
	// Sanction errors
	ErrAlreadySanctioned  = errors.New("subject already has an active punishment of this kind")
	ErrInvalidDuration    = errors.New("duration must be positive")
	ErrPunishmentNotFound = errors.New("punishment not found")

	// Store errors
	ErrStoreUnavailable = errors.New("store unavailable")

	// Freeze errors
	ErrPlayerOffline = errors.New("player is not connected")
)
