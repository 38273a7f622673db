// Package stabilizer implements the Target Stabilizer of spec.md §4.7:
// commit-window hysteresis over the Reward Planner's tick-by-tick target,
// so the reported target doesn't thrash between near-equal candidates every
// tick. It stabilizes only the target the coordinator reports to the
// visualization sink; the action the coordinator emits is the current
// plan's first action whatever the committed target is.
//
// Grounded on the teacher's internal/engine/timeman.go "soft" time budget
// idiom (commit to a decision and only abandon it under a clear
// improvement or an elapsed deadline, never on every recomputation) and on
// internal/engine/search.go's iterative-deepening "keep the previous best
// move unless the new iteration's score clearly beats it" discipline.
package stabilizer

import (
	"sync"

	"github.com/BraianBarraza/tarnished-maze-bot/internal/baits"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/config"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/grid"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/planner"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/search"
)

// commit is the process-state the stabilizer keeps between ticks: the
// committed bait's identity (its cell, which doubles as its key per
// baits.Bait's doc) and the tick its commit window expires.
type commit struct {
	cell      grid.Cell
	label     string
	untilTick int64
}

// Stabilizer holds the single committed target across calls to Decide.
type Stabilizer struct {
	mu  sync.Mutex
	cur *commit
}

// New returns a Stabilizer with no committed target.
func New() *Stabilizer {
	return &Stabilizer{}
}

// Decision is what the coordinator acts on this tick: the stabilized
// target, and whether the commit changed from the previous tick.
type Decision struct {
	Target    grid.Cell
	Label     string
	HasTarget bool
	Switched  bool
}

// Decide applies spec.md §4.7's switch rule. snap/self/blocked let the
// stabilizer re-derive the committed target's current utility (u_prev);
// liveByKey is the current bait snapshot keyed by grid.Cell.Key, used to
// detect an immediately-vanished commit.
func (s *Stabilizer) Decide(
	cfg config.Config,
	tick int64,
	snap *grid.Snapshot,
	self grid.OrientedState,
	blocked func(x, y int) bool,
	liveByKey map[uint64]baits.Bait,
	newPlan *planner.PlanResult,
) Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur != nil {
		if _, stillLive := liveByKey[s.cur.cell.Key()]; !stillLive {
			// "When the committed bait vanishes, the commit is dropped
			// immediately."
			s.cur = nil
		}
	}

	newHasTarget := newPlan != nil && newPlan.HasTarget

	if s.cur == nil {
		if !newHasTarget {
			return Decision{}
		}
		s.commitTo(newPlan.Target, newPlan.TargetLabel, tick, cfg)
		return Decision{Target: s.cur.cell, Label: s.cur.label, HasTarget: true, Switched: true}
	}

	uPrev, reachable := s.reevaluate(cfg, snap, self, blocked, liveByKey)
	windowExpired := tick >= s.cur.untilTick

	shouldSwitch := !reachable || windowExpired
	if !shouldSwitch && newHasTarget {
		threshold := uPrev * (1 + cfg.SwitchMarginPercent/100)
		if newPlan.Utility >= threshold {
			shouldSwitch = true
		}
	}

	if shouldSwitch && newHasTarget {
		s.commitTo(newPlan.Target, newPlan.TargetLabel, tick, cfg)
		return Decision{Target: s.cur.cell, Label: s.cur.label, HasTarget: true, Switched: true}
	}

	// Either nothing beat the margin, or the window/commit is stale but no
	// replacement plan exists this tick: keep reporting the old commit
	// rather than leaving the agent with no target at all.
	return Decision{Target: s.cur.cell, Label: s.cur.label, HasTarget: true, Switched: false}
}

func (s *Stabilizer) commitTo(cell grid.Cell, label string, tick int64, cfg config.Config) {
	s.cur = &commit{cell: cell, label: label, untilTick: tick + int64(cfg.CommitWindowTicks)}
}

// reevaluate computes u_prev: the utility of a hypothetical plan that does
// nothing but travel to the already-committed cell and collect it, per
// spec.md S5's worked arithmetic (score - moveCost*distance). This
// deliberately bypasses the full Reward Planner — the committed bait is a
// single known cell, not a multi-candidate search.
func (s *Stabilizer) reevaluate(
	cfg config.Config,
	snap *grid.Snapshot,
	self grid.OrientedState,
	blocked func(x, y int) bool,
	liveByKey map[uint64]baits.Bait,
) (utility float64, reachable bool) {
	bait, ok := liveByKey[s.cur.cell.Key()]
	if !ok {
		return 0, false
	}
	if snap == nil {
		return 0, false
	}

	arrays := search.NewArrays(snap.Width, snap.Height)
	admissible := search.Compose(snap, blocked, self.Cell)
	field := search.Run(arrays, snap.Width, snap.Height, self, admissible)

	dist := field.DistanceTo(bait.Cell.X, bait.Cell.Y)
	if dist == search.Unreached {
		return 0, false
	}
	return float64(bait.Score) - cfg.MoveCost*float64(dist), true
}
