package service

import "errors"

// Error taxonomy surfaced to handlers. NotFound cases propagate
// repository.ErrNotFound; everything unexpected is wrapped and logged.
var (
	// ErrUnauthorized means no authenticated user is present
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoActiveClinic means the session has no resolved clinic
	ErrNoActiveClinic = errors.New("no active clinic selected")

	// ErrAccessDenied means the user is authenticated but not a member of
	// the target clinic
	ErrAccessDenied = errors.New("access denied")
)
