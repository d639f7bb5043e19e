package geocode

import "context"

// Place is the result of a coordinate-to-place-name lookup. Each field is
// independently nil when the provider has no matching feature for that
// category.
type Place struct {
	City    *string
	State   *string
	Country *string
}

// Geocoder looks up the place names for a WGS84 coordinate. Failures come
// back as a single error; callers are expected to degrade gracefully and
// leave location fields blank rather than blocking the surrounding action.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (Place, error)
}
