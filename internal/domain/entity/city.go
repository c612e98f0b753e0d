package entity

import "strings"

// City is a previously queried city name. Name is always canonical.
type City struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdDate"`
}

// CanonicalCityName trims and lower-cases name. Every insert, lookup and
// delete goes through it so "London", " london " and "LONDON" are one city.
func CanonicalCityName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
