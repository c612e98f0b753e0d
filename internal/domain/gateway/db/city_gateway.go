package db

import (
	"context"

	"go-weather/internal/domain/entity"
)

// CityGateway persists the set of queried city names. Names are canonicalized
// with entity.CanonicalCityName before every insert and delete.
type CityGateway interface {
	// Initialize creates the cities table when missing
	Initialize(ctx context.Context) error

	// Add inserts the city unless it is already stored
	Add(ctx context.Context, name string) error

	// FindAll returns every stored city in insertion order
	FindAll(ctx context.Context) ([]entity.City, error)

	// Remove deletes the city and reports whether a row was removed
	Remove(ctx context.Context, name string) (bool, error)
}
