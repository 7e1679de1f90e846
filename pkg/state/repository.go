package state

import "context"

// Repository loads and saves the last-event marker.
type Repository interface {
	// Load returns the stored marker, or an empty marker and nil error if
	// none exists.
	Load(ctx context.Context) (Marker, error)

	// Save replaces the stored marker atomically.
	Save(ctx context.Context, m Marker) error
}
