package assistant

import (
	"sync"

	"github.com/strelka-labs/meeting-assistant/internal/geocode"
)

// LocationRegistry remembers the last reported position per owner so
// route replies can start from the requester. In-process only; owners
// re-report after a restart.
type LocationRegistry struct {
	mu     sync.RWMutex
	points map[string]geocode.Point
}

func NewLocationRegistry() *LocationRegistry {
	return &LocationRegistry{points: make(map[string]geocode.Point)}
}

func (r *LocationRegistry) Set(ownerID string, p geocode.Point) {
	r.mu.Lock()
	r.points[ownerID] = p
	r.mu.Unlock()
}

func (r *LocationRegistry) Get(ownerID string) (geocode.Point, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.points[ownerID]
	return p, ok
}
