package itinerary

import (
	"fmt"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

// ReplaceItem swaps the item identified by itemID on day dayIndex for
// replacement and returns the new plan. The replacement inherits the
// replaced item's id so references held by the caller stay valid.
// Replacements that fail shape validation are rejected before anything
// is spliced in.
func ReplaceItem(plan models.TripPlan, dayIndex int, itemID string, replacement models.TripItem) (models.TripPlan, error) {
	if err := replacement.Validate(); err != nil {
		return plan, err
	}
	if dayIndex < 0 || dayIndex >= len(plan.Days) {
		return plan, fmt.Errorf("%w: day index %d out of range", models.ErrBadRequest, dayIndex)
	}

	pos := -1
	for i, it := range plan.Days[dayIndex].Items {
		if it.ID == itemID && itemID != "" {
			pos = i
			break
		}
	}
	if pos < 0 {
		return plan, fmt.Errorf("%w: item %q on day %d", models.ErrNotFound, itemID, dayIndex)
	}

	out := plan.Clone()
	swapped := replacement.Clone()
	swapped.ID = itemID
	out.Days[dayIndex].Items[pos] = swapped
	return out, nil
}
