package application

import "sync"

// InflightRegistry tracks invitation ids with a mutation currently in flight.
// At most one mutating request per invitation id is admitted at a time;
// distinct invitations proceed concurrently.
type InflightRegistry struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewInflightRegistry() *InflightRegistry {
	return &InflightRegistry{ids: make(map[string]struct{})}
}

// Acquire reserves the id. It returns false when a mutation for the same id
// is already in flight.
func (r *InflightRegistry) Acquire(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, busy := r.ids[id]; busy {
		return false
	}
	r.ids[id] = struct{}{}
	return true
}

func (r *InflightRegistry) Release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.ids, id)
}

func (r *InflightRegistry) InFlight(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, busy := r.ids[id]
	return busy
}
