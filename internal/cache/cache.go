package cache

import (
	"context"
	"time"
)

// Cache is the dependent-view cache. Appointment list responses are
// stored under clinic-scoped keys and invalidated on every mutation.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
}

// AppointmentListKey builds the cache key for a clinic's appointment list.
// date may be empty for the unfiltered list.
func AppointmentListKey(clinicID, date string) string {
	if date != "" {
		return "clinic:" + clinicID + ":appointments:" + date
	}
	return "clinic:" + clinicID + ":appointments"
}

// AppointmentListPattern matches every appointment list key of a clinic
func AppointmentListPattern(clinicID string) string {
	return "clinic:" + clinicID + ":appointments*"
}
