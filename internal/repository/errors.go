package repository

import "errors"

// ErrNotFound is returned when a record does not exist or is not owned by
// the clinic named in the query. Callers cannot distinguish the two cases,
// which keeps cross-tenant probing from leaking record existence.
var ErrNotFound = errors.New("record not found")
