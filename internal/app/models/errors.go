package models

import "errors"

// Domain specific errors. Handlers map them to HTTP statuses.
var (
	ErrNotFound   = errors.New("requested item not found")
	ErrBadRequest = errors.New("bad request")

	// Input errors: rejected before any network call.
	ErrEmptyQuery      = errors.New("query must not be empty")
	ErrEmptyBatch      = errors.New("items must not be empty")
	ErrInvalidLanguage = errors.New("invalid language tag")

	// Configuration errors.
	ErrMissingToken  = errors.New("MISSING_MAPBOX_TOKEN")
	ErrMissingAPIKey = errors.New("generative AI api key is not set")

	// Runtime failures of external collaborators.
	ErrGeocodeFailed = errors.New("GEOCODE_FAILED")
	ErrBatchFailed   = errors.New("batch resolution failed")
	ErrGeneration    = errors.New("generation failed")

	// Shape validation of plans, items and model output.
	ErrInvalidShape = errors.New("invalid shape")
)
