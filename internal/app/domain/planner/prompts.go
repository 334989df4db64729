package planner

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

const systemPrompt = `You are a meticulous trip planner that answers with STRICT JSON only.
No markdown, no code fences, no comments, no trailing commas.
Write in Korean unless another language is requested.
Build realistic daily plans clustered by area, with transport and cost notes.`

const placeShape = `"place": {
    "name": string,
    "category": "food"|"sight"|"activity"|"cafe"|"shop"|"transport"|"hotel",
    "address"?: string,
    "lat"?: number,
    "lng"?: number,
    "estimatedCostKRW"?: number,
    "durationMin"?: number,
    "openHoursNote"?: string,
    "notes"?: string[],
    "imageUrl"?: string
  }`

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func joinOr(values []string, def string) string {
	if len(values) == 0 {
		return def
	}
	return strings.Join(values, ", ")
}

// planPrompt builds the user prompt for a whole draft itinerary.
func planPrompt(in models.TripInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Make a %d-day itinerary for: %s.\n", in.Days, strings.Join(in.Regions, ", "))
	if in.Origin != "" {
		fmt.Fprintf(&b, "Travellers depart from: %s.\n", in.Origin)
	}
	if in.StartDate != "" {
		fmt.Fprintf(&b, "The first day is %s; fill in each day's date.\n", in.StartDate)
	}
	fmt.Fprintf(&b, "Interests: %s. Pace: %s.\n", joinOr(in.Interests, "general sightseeing"), orDefault(in.Pace, "balanced"))
	fmt.Fprintf(&b, "Budget tier: %s. Travelers: %d.\n", orDefault(in.BudgetTier, "mid"), in.Travelers)
	fmt.Fprintf(&b, "Dietary: %s.\n", joinOr(in.Dietary, "none"))
	fmt.Fprintf(&b, "Language: %s.\n\n", orDefault(in.Language, "ko"))
	b.WriteString(`Return JSON with shape:
{
  "title": string,
  "summary": string[],
  "days": [
    {
      "date"?: string,
      "theme"?: string,
      "items": [
        {
          "time"?: string,
          ` + placeShape + `,
          "tips"?: string
        }
      ]
    }
  ],
  "overallBudgetKRW"?: number,
  "cautions"?: string[]
}

Rules:
- Cluster nearby spots per day; minimise travel time.
- Add brief transit hints in notes.
- Estimate costs conservatively in KRW.
- If concrete hours are unknown, add a generic "check hours" caution.`)
	return b.String()
}

// regeneratePrompt asks for one replacement of item.
func regeneratePrompt(dayIndex int, item models.TripItem) string {
	return fmt.Sprintf(`Replace ONE itinerary block with a similar or better option.
Constraints:
- Keep the category (%s) and general theme similar.
- Prefer alternatives near "%s" in the same city or region.
- Give coordinates (lat, lng) only if confidently known; otherwise omit them.
- Output one JSON object:
{
  "time"?: string,
  "locked"?: boolean,
  %s,
  "tips"?: string
}
Context: dayIndex=%d, replacing "%s".
No commentary. Return only the JSON object.`,
		item.Place.Category, item.Place.Name, placeShape, dayIndex, item.Place.Name)
}

// alternativesPrompt asks for alternativeCount candidates. item is optional context.
func alternativesPrompt(dayIndex int, item *models.TripItem) string {
	var ctx string
	if item != nil {
		ctx = fmt.Sprintf("\nThey replace \"%s\" (category %s) on day %d; stay in the same area.",
			item.Place.Name, item.Place.Category, dayIndex+1)
	}
	return fmt.Sprintf(`Suggest exactly %d alternative itinerary items as a JSON array.%s
Each item has the shape:
{
  "time"?: string,
  %s,
  "tips"?: string
}
No commentary. JSON array only.`, alternativeCount, ctx, placeShape)
}
