package geo

import (
	"fmt"
	"math"
	"strconv"
)

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ValidateCoordinates checks if latitude and longitude are valid
// Latitude must be between -90 and 90
// Longitude must be between -180 and 180
func ValidateCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// HasValidCoordinates is ValidateCoordinates that also rejects (0, 0),
// which LLM output uses as a "don't know" marker.
func HasValidCoordinates(lat, lng float64) bool {
	if lat == 0 && lng == 0 {
		return false
	}
	return ValidateCoordinates(lat, lng)
}

// Valid reports whether p lies within WGS84 bounds.
func (p Point) Valid() bool {
	return ValidateCoordinates(p.Lat, p.Lng)
}

// ProximityParam encodes p the way geocoding providers expect it:
// longitude first, then latitude.
func (p Point) ProximityParam() string {
	return strconv.FormatFloat(p.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
}

// CalculateCenterPoint calculates the center point of multiple coordinates.
// Longitude is a circular mean, so points either side of the antimeridian
// centre near ±180 rather than 0. ok is false when no valid coordinate was
// given.
func CalculateCenterPoint(points []Point) (center Point, ok bool) {
	var latSum, sinSum, cosSum float64
	n := 0
	for _, p := range points {
		if !HasValidCoordinates(p.Lat, p.Lng) {
			continue
		}
		rad := p.Lng * math.Pi / 180
		latSum += p.Lat
		sinSum += math.Sin(rad)
		cosSum += math.Cos(rad)
		n++
	}
	if n == 0 {
		return Point{}, false
	}
	lng := math.Atan2(sinSum, cosSum) * 180 / math.Pi
	return Point{Lat: latSum / float64(n), Lng: lng}, true
}

// Bounds is a bounding box.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLng float64 `json:"minLng"`
	MaxLng float64 `json:"maxLng"`
}

// CalculateBounds returns the bounding box for a set of coordinates.
func CalculateBounds(points []Point) (Bounds, bool) {
	b := Bounds{
		MinLat: math.MaxFloat64,
		MaxLat: -math.MaxFloat64,
		MinLng: math.MaxFloat64,
		MaxLng: -math.MaxFloat64,
	}
	found := false
	for _, p := range points {
		if !HasValidCoordinates(p.Lat, p.Lng) {
			continue
		}
		found = true
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
		b.MinLng = math.Min(b.MinLng, p.Lng)
		b.MaxLng = math.Max(b.MaxLng, p.Lng)
	}
	if !found {
		return Bounds{}, false
	}
	return b, true
}

// FormatCoordinatesDisplay formats coordinates for display
// Returns "Lat, Lng" or "Location TBD" if invalid
func FormatCoordinatesDisplay(lat, lng float64) string {
	if !HasValidCoordinates(lat, lng) {
		return "Location TBD"
	}
	return fmt.Sprintf("%.4f, %.4f", lat, lng)
}
