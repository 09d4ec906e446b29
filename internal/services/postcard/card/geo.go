package card

import "math"

// Position is a latitude/longitude pair in degrees.
type Position struct {
	Latitude  float64
	Longitude float64
}

// ValidCoordinates reports whether lat/lng are finite and within range.
func ValidCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// ApplyGeolocation moves the stamp of an editable card to pos.
//
// Shared cards and invalid positions are returned unchanged.
func ApplyGeolocation(s State, pos Position) State {
	if !s.Editable || !ValidCoordinates(pos.Latitude, pos.Longitude) {
		return s
	}
	s.Latitude = pos.Latitude
	s.Longitude = pos.Longitude
	return s
}
