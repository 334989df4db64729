package geocode

import (
	"fmt"
	"unicode/utf8"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

const maxDetailLen = 300

// GeocodeFailedError is returned when the HTTP exchange with the provider
// did not complete: a non-2xx status, a transport error or a body that is
// not JSON. It matches models.ErrGeocodeFailed with errors.Is.
type GeocodeFailedError struct {
	Status int    // upstream HTTP status, 0 when no response was received
	Detail string // truncated upstream body or transport error
	err    error
}

func (e *GeocodeFailedError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: upstream status %d: %s", models.ErrGeocodeFailed, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: %s", models.ErrGeocodeFailed, e.Detail)
}

func (e *GeocodeFailedError) Unwrap() error { return e.err }

func (e *GeocodeFailedError) UpstreamStatus() int { return e.Status }

func (e *GeocodeFailedError) Is(target error) bool {
	return target == models.ErrGeocodeFailed
}

func newFailure(status int, detail string, cause error) *GeocodeFailedError {
	return &GeocodeFailedError{Status: status, Detail: truncateDetail(detail), err: cause}
}

// truncateDetail cuts s to at most maxDetailLen bytes on a rune boundary.
func truncateDetail(s string) string {
	if len(s) <= maxDetailLen {
		return s
	}
	cut := maxDetailLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
