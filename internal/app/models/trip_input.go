package models

import "strings"

// TripInput is the user request a draft plan is generated from.
type TripInput struct {
	Origin     string   `json:"origin,omitempty"`
	Regions    []string `json:"regions"`
	StartDate  string   `json:"startDate,omitempty"`
	Days       int      `json:"days"`
	Travelers  int      `json:"travelers,omitempty"`
	BudgetTier string   `json:"budgetTier,omitempty"` // low | mid | high
	Interests  []string `json:"interests"`
	Pace       string   `json:"pace,omitempty"` // relaxed | balanced | tight
	Dietary    []string `json:"dietary,omitempty"`
	Language   string   `json:"language,omitempty"`
}

// Normalize fills defaults and validates the input.
func (in TripInput) Normalize() (TripInput, error) {
	out := in
	out.Regions = cloneStrings(in.Regions)
	out.Interests = cloneStrings(in.Interests)
	out.Dietary = cloneStrings(in.Dietary)
	if out.Travelers == 0 {
		out.Travelers = 1
	}
	if out.Interests == nil {
		out.Interests = []string{}
	}

	var errs ValidationErrors
	if len(out.Regions) == 0 {
		errs.add("regions", "at least one region is required")
	}
	for i, r := range out.Regions {
		out.Regions[i] = strings.TrimSpace(r)
	}
	if out.Days < 1 {
		errs.add("days", "must be at least 1")
	}
	if out.Travelers < 1 {
		errs.add("travelers", "must be at least 1")
	}
	switch out.BudgetTier {
	case "", "low", "mid", "high":
	default:
		errs.add("budgetTier", "must be one of low, mid, high")
	}
	switch out.Pace {
	case "", "relaxed", "balanced", "tight":
	default:
		errs.add("pace", "must be one of relaxed, balanced, tight")
	}
	if err := errs.orNil(); err != nil {
		return TripInput{}, err
	}
	return out, nil
}
