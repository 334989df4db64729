package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"
)

// FieldError describes one structural problem in a plan or item.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the list of issues found while checking a shape.
// It matches ErrInvalidShape with errors.Is.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidShape, strings.Join(parts, "; "))
}

func (v ValidationErrors) Unwrap() error { return ErrInvalidShape }

func (v *ValidationErrors) add(field, format string, args ...any) {
	*v = append(*v, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Validate checks the structural rules of a place.
func (p Place) Validate() error {
	var errs ValidationErrors
	p.validate("place", &errs)
	return errs.orNil()
}

func (p Place) validate(prefix string, errs *ValidationErrors) {
	if strings.TrimSpace(p.Name) == "" {
		errs.add(prefix+".name", "is required")
	}
	if !p.Category.Valid() {
		errs.add(prefix+".category", "unknown category %q", p.Category)
	}
	switch {
	case (p.Lat == nil) != (p.Lng == nil):
		errs.add(prefix, "lat and lng must be set together")
	case p.Lat != nil:
		if !finite(*p.Lat) || *p.Lat < -90 || *p.Lat > 90 {
			errs.add(prefix+".lat", "out of range")
		}
		if !finite(*p.Lng) || *p.Lng < -180 || *p.Lng > 180 {
			errs.add(prefix+".lng", "out of range")
		}
	}
	if p.EstimatedCost != nil && (!finite(*p.EstimatedCost) || *p.EstimatedCost < 0) {
		errs.add(prefix+".estimatedCostKRW", "must be a non-negative number")
	}
	if p.DurationMinutes != nil && *p.DurationMinutes < 0 {
		errs.add(prefix+".durationMin", "must be non-negative")
	}
	if p.ImageURL != "" {
		u, err := url.Parse(p.ImageURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs.add(prefix+".imageUrl", "must be an absolute URL")
		}
	}
}

// Validate checks the structural rules of an item.
func (i TripItem) Validate() error {
	var errs ValidationErrors
	i.Place.validate("place", &errs)
	return errs.orNil()
}

// Validate checks the structural rules of the whole plan.
func (p TripPlan) Validate() error {
	var errs ValidationErrors
	if p.OverallBudget != nil && (!finite(*p.OverallBudget) || *p.OverallBudget < 0) {
		errs.add("overallBudgetKRW", "must be a non-negative number")
	}
	for di, d := range p.Days {
		for ii, it := range d.Items {
			it.Place.validate(fmt.Sprintf("days[%d].items[%d].place", di, ii), &errs)
		}
	}
	return errs.orNil()
}

// presence probes for keys that must exist even when empty.
type planPresence struct {
	Title *string `json:"title"`
	Days  *[]struct {
		Items *[]itemPresence `json:"items"`
	} `json:"days"`
}

type itemPresence struct {
	Place *json.RawMessage `json:"place"`
}

// DecodePlan parses raw JSON into a TripPlan and validates its shape.
// Wrong field types, missing required keys and rule violations all
// come back as ValidationErrors.
func DecodePlan(data []byte) (TripPlan, error) {
	var plan TripPlan
	if err := decodeStrict(data, &plan); err != nil {
		return TripPlan{}, err
	}

	var probe planPresence
	_ = json.Unmarshal(data, &probe)
	var errs ValidationErrors
	if probe.Title == nil {
		errs.add("title", "is required")
	}
	if probe.Days == nil {
		errs.add("days", "is required")
	} else {
		for di, d := range *probe.Days {
			if d.Items == nil {
				errs.add(fmt.Sprintf("days[%d].items", di), "is required")
				continue
			}
			for ii, it := range *d.Items {
				if it.Place == nil {
					errs.add(fmt.Sprintf("days[%d].items[%d].place", di, ii), "is required")
				}
			}
		}
	}
	if len(errs) > 0 {
		return TripPlan{}, errs
	}
	if err := plan.Validate(); err != nil {
		return TripPlan{}, err
	}
	return plan, nil
}

// DecodeItem parses raw JSON into a TripItem and validates its shape.
func DecodeItem(data []byte) (TripItem, error) {
	var item TripItem
	if err := decodeStrict(data, &item); err != nil {
		return TripItem{}, err
	}
	var probe itemPresence
	_ = json.Unmarshal(data, &probe)
	if probe.Place == nil {
		return TripItem{}, ValidationErrors{{Field: "place", Message: "is required"}}
	}
	if err := item.Validate(); err != nil {
		return TripItem{}, err
	}
	return item, nil
}

// DecodeItems parses a JSON array of items, validating each one.
func DecodeItems(data []byte) ([]TripItem, error) {
	var raws []json.RawMessage
	if err := decodeStrict(data, &raws); err != nil {
		return nil, err
	}
	items := make([]TripItem, 0, len(raws))
	var errs ValidationErrors
	for i, raw := range raws {
		item, err := DecodeItem(raw)
		if err != nil {
			if ve, ok := err.(ValidationErrors); ok {
				for _, fe := range ve {
					errs.add(fmt.Sprintf("[%d].%s", i, fe.Field), "%s", fe.Message)
				}
				continue
			}
			return nil, err
		}
		items = append(items, item)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return items, nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return ValidationErrors{{Field: "$", Message: err.Error()}}
	}
	if dec.More() {
		return ValidationErrors{{Field: "$", Message: "unexpected trailing data"}}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
