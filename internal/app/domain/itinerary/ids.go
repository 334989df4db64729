package itinerary

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

const fallbackIDPrefix = "trip-item-"

// IDAssigner gives itinerary items process-unique identifiers.
//
// Random UUIDs are preferred. When the random source fails the assigner falls
// back to "trip-item-<n>" using its own counter. The counter starts at zero on
// first use, is never reset and is not persisted, so fallback ids are only
// unique for the lifetime of the process. An IDAssigner is safe for concurrent
// use; the zero value is ready to use.
type IDAssigner struct {
	counter atomic.Uint64
	newUUID func() (uuid.UUID, error)
}

// IDOption configures an IDAssigner.
type IDOption func(*IDAssigner)

// WithUUIDSource replaces the random UUID generator.
func WithUUIDSource(fn func() (uuid.UUID, error)) IDOption {
	return func(a *IDAssigner) { a.newUUID = fn }
}

func NewIDAssigner(opts ...IDOption) *IDAssigner {
	a := &IDAssigner{newUUID: uuid.NewRandom}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assign returns a copy of plan in which every item has a non-empty id.
// Existing ids are kept as they are. The input plan is never modified.
func (a *IDAssigner) Assign(plan models.TripPlan) models.TripPlan {
	out := plan.Clone()

	taken := make(map[string]struct{}, out.ItemCount())
	for _, d := range out.Days {
		for _, it := range d.Items {
			if it.ID != "" {
				taken[it.ID] = struct{}{}
			}
		}
	}

	for di := range out.Days {
		items := out.Days[di].Items
		for ii := range items {
			if items[ii].ID != "" {
				continue
			}
			id := a.Next()
			for {
				if _, dup := taken[id]; !dup {
					break
				}
				id = a.Next()
			}
			taken[id] = struct{}{}
			items[ii].ID = id
		}
	}
	return out
}

// AssignItem returns item with an id, generating one only if it has none.
func (a *IDAssigner) AssignItem(item models.TripItem) models.TripItem {
	out := item.Clone()
	if out.ID == "" {
		out.ID = a.Next()
	}
	return out
}

// Next returns a fresh identifier.
func (a *IDAssigner) Next() string {
	gen := a.newUUID
	if gen == nil {
		gen = uuid.NewRandom
	}
	if id, err := gen(); err == nil {
		return id.String()
	}
	n := a.counter.Add(1) - 1
	return fallbackIDPrefix + strconv.FormatUint(n, 10)
}
