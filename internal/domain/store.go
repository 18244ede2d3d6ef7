package domain

// Store is one retail location returned by the nearest-stores lookup.
// IDs are unique within a single locator response.
type Store struct {
	ID             string
	Name           string
	DistanceMeters float64
}

// DistanceKm returns the store distance in kilometers.
func (s Store) DistanceKm() float64 { return s.DistanceMeters / 1000.0 }
