// Package common defines shared constants and sentinel errors used across
// the gating server layers. Callers should use errors.Is to match these
// values; the HTTP layer maps each sentinel to a status code.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level marker for unexpected store faults. The HTTP layer
	// turns anything carrying it into a bare 500.
	ErrorInternal = errors.New("internal error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Gating-rule errors. Expected outcomes, never treated as faults:
	// the previous step in the track is incomplete, or the step's tier
	// is beyond the caller's entitlement.
	ErrPrerequisiteMissing = errors.New("prerequisite missing")
	ErrPaymentRequired     = errors.New("payment required")
)
