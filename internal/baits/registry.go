package baits

import (
	"fmt"
	"sync"

	"github.com/BraianBarraza/tarnished-maze-bot/internal/grid"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/mazeerr"
)

// Registry mirrors server bait appear/vanish events. Writers are event
// handlers; readers take a point-in-time copy via Snapshot. The guard is a
// plain sync.RWMutex rather than the teacher's BadgerDB-backed
// internal/storage (see DESIGN.md §"Dropped teacher modules") — the
// registry must serve a sub-10ms decision tick and has no cross-game
// persistence requirement.
type Registry struct {
	mu sync.RWMutex
	m  map[uint64]Bait

	// everSeenW/H is the union of bounds across every maze ever published,
	// per spec.md §4.2's InvalidCoordinate rule: a coordinate fails only if
	// it falls outside every maze this registry has ever observed, not
	// necessarily the current one.
	everSeenW, everSeenH int
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{m: make(map[uint64]Bait)}
}

// ObserveMazeBounds extends the "ever seen" bounds union. Call this whenever
// the Grid Model publishes a new snapshot.
func (r *Registry) ObserveMazeBounds(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width > r.everSeenW {
		r.everSeenW = width
	}
	if height > r.everSeenH {
		r.everSeenH = height
	}
}

// Insert adds or overwrites the bait at its coordinate. Insertion of an
// existing coordinate overwrites, per spec.md §4.2.
func (r *Registry) Insert(b Bait) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.everSeenW > 0 && r.everSeenH > 0 {
		if b.Cell.X < 0 || b.Cell.Y < 0 || b.Cell.X >= r.everSeenW || b.Cell.Y >= r.everSeenH {
			return fmt.Errorf("%w: bait at (%d,%d) outside any maze ever seen", mazeerr.ErrInvalidInput, b.Cell.X, b.Cell.Y)
		}
	}
	r.m[b.Cell.Key()] = b
	return nil
}

// RemoveAt deletes any bait at (x,y). Removing an absent coordinate is a
// no-op.
func (r *Registry) RemoveAt(x, y int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, grid.Cell{X: x, Y: y}.Key())
}

// Get returns the bait at (x,y), if any.
func (r *Registry) Get(x, y int) (Bait, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.m[grid.Cell{X: x, Y: y}.Key()]
	return b, ok
}

// Snapshot returns a stable, insertion-order-irrelevant copy of every live
// bait, safe to read after concurrent Insert/RemoveAt calls return.
func (r *Registry) Snapshot() []Bait {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Bait, 0, len(r.m))
	for _, b := range r.m {
		out = append(out, b)
	}
	return out
}

// Len reports the number of live baits.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}
