package city

import "context"

// UseCase is the city store as seen by request handling. Storage errors are
// logged and reported as false or an empty list, never returned.
type UseCase interface {
	// Initialize ensures the store schema exists. Unlike the other
	// operations it returns the error so start-up can abort.
	Initialize(ctx context.Context) error

	// AddCity stores the city unless present and reports whether the store now contains it
	AddCity(ctx context.Context, name string) bool

	// ListCities returns the stored names in insertion order
	ListCities(ctx context.Context) []string

	// RemoveCity deletes the city and reports whether a row was removed
	RemoveCity(ctx context.Context, name string) bool
}
