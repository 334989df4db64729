package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProximityParamIsLongitudeFirst(t *testing.T) {
	tokyoStation := Point{Lat: 35.681, Lng: 139.767}
	assert.Equal(t, "139.767,35.681", tokyoStation.ProximityParam())

	negative := Point{Lat: -33.8688, Lng: 151.2093}
	assert.Equal(t, "151.2093,-33.8688", negative.ProximityParam())
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		valid    bool
	}{
		{"tokyo", 35.68, 139.76, true},
		{"equator meridian", 0, 0, true},
		{"lat too high", 91, 0, false},
		{"lng too low", 0, -181, false},
		{"nan", math.NaN(), 10, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidateCoordinates(tc.lat, tc.lng))
		})
	}
	assert.False(t, HasValidCoordinates(0, 0))
}

func TestCalculateCenterPoint(t *testing.T) {
	center, ok := CalculateCenterPoint([]Point{
		{Lat: 35.0, Lng: 139.0},
		{Lat: 36.0, Lng: 140.0},
		{Lat: 0, Lng: 0}, // ignored
	})
	require.True(t, ok)
	assert.InDelta(t, 35.5, center.Lat, 1e-9)
	assert.InDelta(t, 139.5, center.Lng, 1e-9)

	_, ok = CalculateCenterPoint(nil)
	assert.False(t, ok)
}

func TestCalculateCenterPointAcrossAntimeridian(t *testing.T) {
	center, ok := CalculateCenterPoint([]Point{
		{Lat: -16.8, Lng: 179.9},
		{Lat: -17.2, Lng: -179.9},
	})
	require.True(t, ok)
	assert.InDelta(t, -17.0, center.Lat, 1e-9)
	assert.InDelta(t, 180.0, math.Abs(center.Lng), 1e-6)
}

func TestCalculateBounds(t *testing.T) {
	b, ok := CalculateBounds([]Point{{Lat: 35.6, Lng: 139.7}, {Lat: 35.7, Lng: 139.8}})
	require.True(t, ok)
	assert.Equal(t, Bounds{MinLat: 35.6, MaxLat: 35.7, MinLng: 139.7, MaxLng: 139.8}, b)

	_, ok = CalculateBounds([]Point{{Lat: 0, Lng: 0}})
	assert.False(t, ok)
}

func TestFormatCoordinatesDisplay(t *testing.T) {
	assert.Equal(t, "35.6812, 139.7671", FormatCoordinatesDisplay(35.68123, 139.76712))
	assert.Equal(t, "Location TBD", FormatCoordinatesDisplay(0, 0))
}
