package geo

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

// TravelMode is how a traveller moves between two stops.
type TravelMode string

const (
	ModeWalk    TravelMode = "walk"
	ModeTransit TravelMode = "transit"
	ModeCar     TravelMode = "car"
)

// Rough urban averages, conservative on purpose.
var speedKmph = map[TravelMode]float64{
	ModeWalk:    4.0,
	ModeTransit: 20.0,
	ModeCar:     30.0,
}

// Waiting / transfer / parking overhead in minutes.
var modePenalty = map[TravelMode]int{
	ModeWalk:    0,
	ModeTransit: 10,
	ModeCar:     5,
}

// ParseTravelMode maps a string to a TravelMode, defaulting to walking.
func ParseTravelMode(s string) (TravelMode, error) {
	if s == "" {
		return ModeWalk, nil
	}
	m := TravelMode(s)
	if _, ok := speedKmph[m]; !ok {
		return "", fmt.Errorf("unknown travel mode %q", s)
	}
	return m, nil
}

// HaversineKm returns the great-circle distance between a and b.
func HaversineKm(a, b Point) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)
	h := math.Pow(math.Sin(dLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLng/2), 2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// EstimateTravelMinutes converts a distance into minutes for the given mode.
func EstimateTravelMinutes(km float64, mode TravelMode) int {
	speed, ok := speedKmph[mode]
	if !ok {
		speed = speedKmph[ModeWalk]
	}
	hours := km / speed
	return int(math.Round(hours*60)) + modePenalty[mode]
}
