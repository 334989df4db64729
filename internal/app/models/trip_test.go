package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCloneIsIndependent(t *testing.T) {
	plan := TripPlan{
		Title:         "Seoul",
		Summary:       []string{"day trip"},
		OverallBudget: Float64(120000),
		Days: []DayPlan{{Items: []TripItem{{
			ID: "a",
			Place: Place{
				Name:            "Gyeongbokgung",
				Category:        CategorySight,
				Lat:             Float64(37.5796),
				Lng:             Float64(126.9770),
				DurationMinutes: Int(90),
				Notes:           []string{"closed tuesdays"},
			},
		}}}},
	}

	clone := plan.Clone()
	require.Equal(t, plan, clone)

	*clone.Days[0].Items[0].Place.Lat = 0
	*clone.Days[0].Items[0].Place.DurationMinutes = 1
	clone.Days[0].Items[0].Place.Notes[0] = "changed"
	clone.Summary[0] = "changed"
	*clone.OverallBudget = 1

	assert.Equal(t, 37.5796, *plan.Days[0].Items[0].Place.Lat)
	assert.Equal(t, 90, *plan.Days[0].Items[0].Place.DurationMinutes)
	assert.Equal(t, "closed tuesdays", plan.Days[0].Items[0].Place.Notes[0])
	assert.Equal(t, "day trip", plan.Summary[0])
	assert.Equal(t, 120000.0, *plan.OverallBudget)
}

func TestWithCoordinates(t *testing.T) {
	p := Place{Name: "N Seoul Tower", Category: CategorySight}
	located := p.WithCoordinates(37.5512, 126.9882)
	assert.False(t, p.HasCoordinates())
	assert.True(t, located.HasCoordinates())
	assert.Equal(t, 126.9882, *located.Lng)
}

func TestFindItem(t *testing.T) {
	plan := TripPlan{Days: []DayPlan{{}, {Items: []TripItem{{ID: "x"}, {ID: "y"}}}}}
	d, i, ok := plan.FindItem("y")
	assert.True(t, ok)
	assert.Equal(t, 1, d)
	assert.Equal(t, 1, i)

	_, _, ok = plan.FindItem("")
	assert.False(t, ok)
}

func TestPlaceValidate(t *testing.T) {
	tests := []struct {
		name  string
		place Place
		field string
	}{
		{"valid", Place{Name: "Cafe", Category: CategoryCafe}, ""},
		{"missing name", Place{Name: "  ", Category: CategoryCafe}, "place.name"},
		{"bad category", Place{Name: "Spa", Category: "spa"}, "place.category"},
		{"lat without lng", Place{Name: "A", Category: CategoryShop, Lat: Float64(1)}, "place"},
		{"lat out of range", Place{Name: "A", Category: CategoryShop, Lat: Float64(100), Lng: Float64(1)}, "place.lat"},
		{"negative cost", Place{Name: "A", Category: CategoryFood, EstimatedCost: Float64(-1)}, "place.estimatedCostKRW"},
		{"negative duration", Place{Name: "A", Category: CategoryFood, DurationMinutes: Int(-5)}, "place.durationMin"},
		{"relative image url", Place{Name: "A", Category: CategoryFood, ImageURL: "/img.png"}, "place.imageUrl"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.place.Validate()
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidShape)
			var ve ValidationErrors
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve[0].Field)
		})
	}
}

func TestDecodePlan(t *testing.T) {
	raw := `{
		"title": "Tokyo",
		"summary": ["food", "gardens"],
		"days": [
			{"date": "D1", "items": [
				{"time": "09:00", "place": {"name": "Blue Bottle Kiyosumi", "category": "cafe"}},
				{"place": {"name": "Imperial Palace", "category": "sight", "lat": 35.70, "lng": 139.75}, "locked": true}
			]}
		],
		"overallBudgetKRW": 350000,
		"extra": "ignored"
	}`

	plan, err := DecodePlan([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", plan.Title)
	require.Len(t, plan.Days[0].Items, 2)
	assert.False(t, plan.Days[0].Items[0].Place.HasCoordinates())
	assert.True(t, plan.Days[0].Items[1].Locked)
	assert.Equal(t, 35.70, *plan.Days[0].Items[1].Place.Lat)
}

func TestDecodePlanShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `title: x`},
		{"wrong type", `{"title": 1, "days": []}`},
		{"missing title", `{"days": []}`},
		{"missing days", `{"title": "x"}`},
		{"missing items", `{"title": "x", "days": [{"date": "d"}]}`},
		{"missing place", `{"title": "x", "days": [{"items": [{"time": "9"}]}]}`},
		{"lat as string", `{"title": "x", "days": [{"items": [{"place": {"name": "a", "category": "food", "lat": "1", "lng": 2}}]}]}`},
		{"fractional duration", `{"title": "x", "days": [{"items": [{"place": {"name": "a", "category": "food", "durationMin": 1.5}}]}]}`},
		{"bad category", `{"title": "x", "days": [{"items": [{"place": {"name": "a", "category": "bar"}}]}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePlan([]byte(tc.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidShape)
		})
	}
}

func TestDecodeItems(t *testing.T) {
	items, err := DecodeItems([]byte(`[
		{"place": {"name": "A", "category": "food"}},
		{"place": {"name": "B", "category": "shop"}, "tips": "cash only"}
	]`))
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = DecodeItems([]byte(`[{"place": {"name": "A", "category": "food"}}, {"time": "x"}]`))
	require.Error(t, err)
	var ve ValidationErrors
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "[1].place", ve[0].Field)

	_, err = DecodeItems([]byte(`{"place": {}}`))
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestTripInputNormalize(t *testing.T) {
	in, err := TripInput{Regions: []string{" Tokyo "}, Days: 3}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, 1, in.Travelers)
	assert.Equal(t, []string{}, in.Interests)
	assert.Equal(t, "Tokyo", in.Regions[0])

	_, err = TripInput{Days: 0, BudgetTier: "lavish", Pace: "frantic"}.Normalize()
	var ve ValidationErrors
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve, 4)
}
