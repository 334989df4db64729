package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKm(t *testing.T) {
	assert.InDelta(t, 111.195, HaversineKm(Point{0, 0}, Point{0, 1}), 0.01)
	assert.Zero(t, HaversineKm(Point{35.68, 139.76}, Point{35.68, 139.76}))

	tokyoStation := Point{Lat: 35.681236, Lng: 139.767125}
	shinjuku := Point{Lat: 35.690921, Lng: 139.700258}
	assert.InDelta(t, 6.134, HaversineKm(tokyoStation, shinjuku), 0.01)
	assert.InDelta(t, HaversineKm(tokyoStation, shinjuku), HaversineKm(shinjuku, tokyoStation), 1e-9)
}

func TestEstimateTravelMinutes(t *testing.T) {
	const km = 6.1343846
	tests := []struct {
		mode TravelMode
		want int
	}{
		{ModeWalk, 92},
		{ModeTransit, 28},
		{ModeCar, 17},
		{TravelMode("hover"), 92},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateTravelMinutes(km, tt.mode))
		})
	}
}

func TestParseTravelMode(t *testing.T) {
	m, err := ParseTravelMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeWalk, m)

	m, err = ParseTravelMode("car")
	require.NoError(t, err)
	assert.Equal(t, ModeCar, m)

	_, err = ParseTravelMode("teleport")
	assert.Error(t, err)
}
