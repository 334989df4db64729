package geocode

import (
	"encoding/json"

	"github.com/FACorreiaa/go-tripplanner/internal/pkg/geo"
)

// mapboxResponse holds the only parts of a Mapbox places response we read.
type mapboxResponse struct {
	Features []mapboxFeature `json:"features"`
}

type mapboxFeature struct {
	Center    []float64 `json:"center"` // [lng, lat]
	Text      string    `json:"text"`
	PlaceName string    `json:"place_name"`
}

// parseResponse decodes body against the schema above. Anything that does
// not fit (wrong types, no features, a center that is not a valid
// [lng, lat] pair) is reported as an unresolved result, never an error.
func parseResponse(body []byte) Result {
	var resp mapboxResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Result{}
	}
	if len(resp.Features) == 0 {
		return Result{}
	}
	f := resp.Features[0]
	if len(f.Center) != 2 {
		return Result{}
	}
	lng, lat := f.Center[0], f.Center[1]
	if !geo.ValidateCoordinates(lat, lng) {
		return Result{}
	}
	return Result{
		Resolved:    true,
		Lat:         lat,
		Lng:         lng,
		Name:        f.Text,
		DisplayName: f.PlaceName,
	}
}
