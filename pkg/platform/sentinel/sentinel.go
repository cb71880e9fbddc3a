package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Repositories and API adapters return
// these (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: session, poll or catalog entry does not exist
//   - ErrExpired: session or polling token has expired
//   - ErrAlreadyUsed: one-time token (verification, reset) already consumed
//   - ErrInvalidState: entity in wrong state for requested operation
//   - ErrUnavailable: backend or geocoder temporarily unavailable
//
// For validation errors use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
