package models

// Category is the kind of place an itinerary item visits.
type Category string

const (
	CategoryFood      Category = "food"
	CategorySight     Category = "sight"
	CategoryActivity  Category = "activity"
	CategoryCafe      Category = "cafe"
	CategoryShop      Category = "shop"
	CategoryTransport Category = "transport"
	CategoryHotel     Category = "hotel"
)

var validCategories = map[Category]bool{
	CategoryFood:      true,
	CategorySight:     true,
	CategoryActivity:  true,
	CategoryCafe:      true,
	CategoryShop:      true,
	CategoryTransport: true,
	CategoryHotel:     true,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return validCategories[c]
}

// Place is a point of interest. Lat and Lng are either both set or both nil.
type Place struct {
	Name            string   `json:"name"`
	Category        Category `json:"category"`
	Address         string   `json:"address,omitempty"`
	Lat             *float64 `json:"lat,omitempty"`
	Lng             *float64 `json:"lng,omitempty"`
	EstimatedCost   *float64 `json:"estimatedCostKRW,omitempty"`
	DurationMinutes *int     `json:"durationMin,omitempty"`
	OpenHoursNote   string   `json:"openHoursNote,omitempty"`
	Notes           []string `json:"notes,omitempty"`
	ImageURL        string   `json:"imageUrl,omitempty"`
}

// HasCoordinates reports whether the place is fully located.
func (p Place) HasCoordinates() bool {
	return p.Lat != nil && p.Lng != nil
}

// WithCoordinates returns a copy of p located at lat/lng.
func (p Place) WithCoordinates(lat, lng float64) Place {
	out := p.Clone()
	out.Lat = &lat
	out.Lng = &lng
	return out
}

// Clone returns a deep copy that shares no memory with p.
func (p Place) Clone() Place {
	out := p
	out.Lat = cloneFloat(p.Lat)
	out.Lng = cloneFloat(p.Lng)
	out.EstimatedCost = cloneFloat(p.EstimatedCost)
	if p.DurationMinutes != nil {
		d := *p.DurationMinutes
		out.DurationMinutes = &d
	}
	out.Notes = cloneStrings(p.Notes)
	return out
}

// TripItem is one scheduled visit within a day.
type TripItem struct {
	ID     string `json:"id,omitempty"`
	Time   string `json:"time,omitempty"`
	Place  Place  `json:"place"`
	Tips   string `json:"tips,omitempty"`
	Locked bool   `json:"locked,omitempty"`
}

func (i TripItem) Clone() TripItem {
	out := i
	out.Place = i.Place.Clone()
	return out
}

// DayPlan is one calendar day. Items are kept in travel order.
type DayPlan struct {
	Date  string     `json:"date,omitempty"`
	Theme string     `json:"theme,omitempty"`
	Items []TripItem `json:"items"`
}

func (d DayPlan) Clone() DayPlan {
	out := d
	if d.Items == nil {
		return out
	}
	out.Items = make([]TripItem, len(d.Items))
	for i, it := range d.Items {
		out.Items[i] = it.Clone()
	}
	return out
}

// TripPlan is the root itinerary document. It is owned by the caller and
// every operation in this module returns a new value instead of mutating it.
type TripPlan struct {
	Title         string    `json:"title"`
	Summary       []string  `json:"summary,omitempty"`
	Days          []DayPlan `json:"days"`
	OverallBudget *float64  `json:"overallBudgetKRW,omitempty"`
	Cautions      []string  `json:"cautions,omitempty"`
}

// Clone returns a deep copy of the plan.
func (p TripPlan) Clone() TripPlan {
	out := p
	out.Summary = cloneStrings(p.Summary)
	out.Cautions = cloneStrings(p.Cautions)
	out.OverallBudget = cloneFloat(p.OverallBudget)
	if p.Days == nil {
		return out
	}
	out.Days = make([]DayPlan, len(p.Days))
	for i, d := range p.Days {
		out.Days[i] = d.Clone()
	}
	return out
}

// ItemCount returns the number of items across all days.
func (p TripPlan) ItemCount() int {
	n := 0
	for _, d := range p.Days {
		n += len(d.Items)
	}
	return n
}

// FindItem returns the day and item index of the item with the given id.
func (p TripPlan) FindItem(id string) (dayIndex, itemIndex int, ok bool) {
	if id == "" {
		return -1, -1, false
	}
	for di, d := range p.Days {
		for ii, it := range d.Items {
			if it.ID == id {
				return di, ii, true
			}
		}
	}
	return -1, -1, false
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
