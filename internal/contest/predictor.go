// Package contest implements the Contest Predictor of spec.md §4.6: for
// each of the N geometrically-nearest opponents, an Oriented Search field
// free of this agent's own biases (no danger memory, no self-occupancy),
// used to estimate who reaches a given bait first.
//
// The parallel fan-out is grounded on the teacher's per-worker scratch
// buffer discipline (internal/engine/worker.go: one Worker per goroutine,
// no shared mutable state) but uses golang.org/x/sync/errgroup instead of
// the teacher's hand-rolled channel/atomic-flag plumbing — see
// SPEC_FULL.md §3.1, grounded on niceyeti-tabular's
// tabular/server/fastview/client.go.
package contest

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/BraianBarraza/tarnished-maze-bot/internal/agents"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/config"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/grid"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/search"
)

// Predictor runs one Oriented Search per sampled opponent and answers
// min-ticks-to-cell queries across all of them.
type Predictor struct {
	cfg config.Config
}

// New returns a Predictor configured per cfg.
func New(cfg config.Config) *Predictor {
	return &Predictor{cfg: cfg}
}

// Result is the outcome of one Predict call: the sampled opponents' fields.
type Result struct {
	fields []*search.Field
}

// MinOpponentTicksTo returns the minimum, over every sampled opponent, of
// the number of actions that opponent needs to reach (x,y) under any
// facing — search.Unreached if no sampled opponent can reach it.
func (r *Result) MinOpponentTicksTo(x, y int) int32 {
	best := search.Unreached
	for _, f := range r.fields {
		d := f.DistanceTo(x, y)
		if d == search.Unreached {
			continue
		}
		if best == search.Unreached || d < best {
			best = d
		}
	}
	return best
}

// Predict runs Oriented Search for up to cfg.MaxOpponentsConsidered
// opponents, preferring the geometrically nearest to self, in parallel.
func (p *Predictor) Predict(snap *grid.Snapshot, self grid.Cell, opponents []agents.Snapshot) *Result {
	sampled := sampleNearest(snap, opponents, self, p.cfg.MaxOpponentsConsidered)
	if len(sampled) == 0 {
		return &Result{}
	}

	fields := make([]*search.Field, len(sampled))
	var g errgroup.Group
	for i, opp := range sampled {
		i, opp := i, opp
		g.Go(func() error {
			// Each goroutine owns its own Arrays: grounded on the teacher's
			// per-worker scratch buffers (internal/engine/worker.go), which
			// never share mutable search state across goroutines.
			arrays := search.NewArrays(snap.Width, snap.Height)

			origin := grid.OrientedState{Cell: opp.Cell, Facing: opp.Facing}
			// No overlay: the predictor must not carry this agent's own
			// danger memory or occupancy biases, per spec.md §4.6.
			admissible := func(x, y int) bool { return snap.Walkable(x, y) }

			fields[i] = search.Run(arrays, snap.Width, snap.Height, origin, admissible)
			return nil
		})
	}
	_ = g.Wait() // no goroutine above can return an error

	return &Result{fields: fields}
}

// sampleNearest returns up to n opponents with a valid position, ordered by
// squared Euclidean distance to self ascending. A position is valid when it
// lies inside snap.
func sampleNearest(snap *grid.Snapshot, opponents []agents.Snapshot, self grid.Cell, n int) []agents.Snapshot {
	if n <= 0 {
		return nil
	}
	candidates := make([]agents.Snapshot, 0, len(opponents))
	for _, o := range opponents {
		if snap.InBounds(o.Cell.X, o.Cell.Y) {
			candidates = append(candidates, o)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return sqDist(candidates[i].Cell, self) < sqDist(candidates[j].Cell, self)
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

func sqDist(a, b grid.Cell) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
