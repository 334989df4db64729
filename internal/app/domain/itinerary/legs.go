package itinerary

import (
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/geo"
)

// Leg is the estimated hop between two consecutive located items of a day.
type Leg struct {
	FromID     string  `json:"fromId"`
	ToID       string  `json:"toId"`
	DistanceKm float64 `json:"distanceKm"`
	Minutes    int     `json:"minutes"`
}

// DayLegs estimates travel between consecutive items of day that both have
// coordinates. Items without coordinates are skipped, so a leg may bridge
// over an unresolved stop.
func DayLegs(day models.DayPlan, mode geo.TravelMode) []Leg {
	legs := []Leg{}
	var prev *models.TripItem
	for i := range day.Items {
		it := &day.Items[i]
		if !it.Place.HasCoordinates() {
			continue
		}
		if prev != nil {
			km := geo.HaversineKm(pointOf(prev.Place), pointOf(it.Place))
			legs = append(legs, Leg{
				FromID:     prev.ID,
				ToID:       it.ID,
				DistanceKm: km,
				Minutes:    geo.EstimateTravelMinutes(km, mode),
			})
		}
		prev = it
	}
	return legs
}

// PlanLegs returns the legs of every day, in day order.
func PlanLegs(plan models.TripPlan, mode geo.TravelMode) [][]Leg {
	out := make([][]Leg, len(plan.Days))
	for i, d := range plan.Days {
		out[i] = DayLegs(d, mode)
	}
	return out
}

// LocatedPoints returns the coordinates of every located item in plan order.
func LocatedPoints(plan models.TripPlan) []geo.Point {
	var pts []geo.Point
	for _, d := range plan.Days {
		for _, it := range d.Items {
			if it.Place.HasCoordinates() {
				pts = append(pts, pointOf(it.Place))
			}
		}
	}
	return pts
}

func pointOf(p models.Place) geo.Point {
	return geo.Point{Lat: *p.Lat, Lng: *p.Lng}
}
