package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and the backend client return
// these (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: entity does not exist in store or backend
//   - ErrExpired: token or session has expired
//   - ErrInvalidState: entity in wrong state for requested operation
//   - ErrUnavailable: backend or resource temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
