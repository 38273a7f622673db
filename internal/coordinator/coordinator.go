// Package coordinator implements the Decision Coordinator of spec.md §4.9
// and the last-mile Collision Avoidance of spec.md §4.8: the single
// next_move entry point that wires the Grid Model, Bait/Agent registries,
// Contest Predictor, Reward Planner, Target Stabilizer, and visualization
// sink together into one legal action per tick.
//
// Grounded on internal/engine/engine.go's Engine (owns every subsystem,
// exposes one Search entry point the driver calls each turn) and on
// internal/uci/uci.go's command-dispatch loop: a small set of named states
// driven by exactly one external call per tick, never blocking on I/O.
package coordinator

import (
	"log"

	"github.com/BraianBarraza/tarnished-maze-bot/internal/agents"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/baits"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/config"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/contest"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/grid"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/planner"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/search"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/stabilizer"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/visual"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/world"
)

// State names the coordinator's per-tick state, per spec.md §4.9. It is
// recomputed fresh every tick (there is no persisted "Executing" phase
// spanning ticks, since the planner is cheap enough to rerun every time);
// State is exposed only for logging/diagnostics.
type State int

const (
	Idle State = iota
	Paused
	Planning
	Executing
	Fallback
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Paused:
		return "PAUSED"
	case Planning:
		return "PLANNING"
	case Executing:
		return "EXECUTING"
	case Fallback:
		return "FALLBACK"
	default:
		return "UNKNOWN"
	}
}

// Coordinator is the decision core's single tick entry point.
type Coordinator struct {
	cfg        config.Config
	predictor  *contest.Predictor
	stabilizer *stabilizer.Stabilizer
	sink       visual.Sink

	// Blocked is an optional danger-memory/occupancy overlay supplied by
	// the caller (spec.md §9's open question on danger-memory TTL: this
	// core never invents a TTL policy, it only exposes the hook).
	Blocked func(x, y int) bool

	Debug bool

	tick      int64
	lastState State
}

// New returns a Coordinator wired to sink for visualization output. cfg is
// clamped so a caller-built Config can never push CandidateBaits past
// config.MaxCandidateBaits, which would overflow the planner's uint64
// collected-mask (spec.md §3).
func New(cfg config.Config, sink visual.Sink) *Coordinator {
	cfg = cfg.Clamp()
	return &Coordinator{
		cfg:        cfg,
		predictor:  contest.New(cfg),
		stabilizer: stabilizer.New(),
		sink:       sink,
	}
}

// LastState reports the state the most recent NextMove call resolved to.
func (c *Coordinator) LastState() State { return c.lastState }

// NextMove runs one full decision tick against p and returns the one legal
// action to emit, per spec.md §6.
func (c *Coordinator) NextMove(p world.Provider) world.Action {
	defer func() { c.tick++ }()

	if p.Paused() {
		c.lastState = Paused
		return world.DoNothing
	}

	snap := p.Grid().Current()
	self, haveSelf := p.Agents().Self()
	if snap == nil || !haveSelf {
		c.lastState = Idle
		return world.DoNothing
	}

	c.lastState = Planning
	selfState := grid.OrientedState{Cell: self.Cell, Facing: self.Facing}
	liveBaits := p.Baits().Snapshot()
	liveByKey := make(map[uint64]baits.Bait, len(liveBaits))
	for _, b := range liveBaits {
		liveByKey[b.Cell.Key()] = b
	}

	others := p.Agents().Others()
	contestResult := c.predictor.Predict(snap, self.Cell, others)

	plan, err := planner.Plan(c.cfg, snap, selfState, liveBaits, c.Blocked, contestResult)
	if err != nil {
		c.lastState = Fallback
		return c.fallback(snap, self, liveByKey)
	}
	c.lastState = Executing

	decision := c.stabilizer.Decide(c.cfg, c.tick, snap, selfState, c.Blocked, liveByKey, plan)
	if decision.HasTarget {
		c.sink.SetTarget(decision.Target, decision.Label)
		c.sink.SetPlannedPath(plan.Path)
	} else {
		c.sink.ClearTarget()
	}

	action := mapAction(plan.FirstAction)
	return c.avoidCollision(snap, self, others, liveByKey, plan.TrapPhase, action)
}

func mapAction(a search.Action) world.Action {
	switch a {
	case search.RotateLeft:
		return world.TurnLeft
	case search.RotateRight:
		return world.TurnRight
	case search.StepForward:
		return world.StepForward
	default:
		return world.DoNothing
	}
}

// fallback implements spec.md §4.9's Fallback state: step if the forward
// cell is admissible, otherwise turn left. Traps are treated as forbidden
// here — with no plan to consult, the conservative (phase-one) admissibility
// rule applies, per DESIGN.md's resolution of this open point.
func (c *Coordinator) fallback(snap *grid.Snapshot, self agents.Snapshot, liveByKey map[uint64]baits.Bait) world.Action {
	forward := self.Cell.Step(self.Facing)
	if c.admissible(snap, forward, liveByKey, true) {
		return world.StepForward
	}
	return world.TurnLeft
}

// admissible composes in-bounds/walkable, the caller's danger overlay, and
// (when trapsForbidden) a trap-cell check against liveByKey.
func (c *Coordinator) admissible(snap *grid.Snapshot, cell grid.Cell, liveByKey map[uint64]baits.Bait, trapsForbidden bool) bool {
	if !snap.Walkable(cell.X, cell.Y) {
		return false
	}
	if c.Blocked != nil && c.Blocked(cell.X, cell.Y) {
		return false
	}
	if trapsForbidden && liveByKey != nil {
		if b, ok := liveByKey[cell.Key()]; ok && b.IsTrap() {
			return false
		}
	}
	return true
}

// avoidCollision implements spec.md §4.8: before returning a Step, verify
// the forward cell is still admissible under the plan's trap mode and that
// no opponent's predicted forward cell coincides with ours. On failure,
// substitute a rotation whose forward cell is admissible (left preferred);
// if neither rotation clears, the original Step is returned unchanged.
func (c *Coordinator) avoidCollision(
	snap *grid.Snapshot,
	self agents.Snapshot,
	others []agents.Snapshot,
	liveByKey map[uint64]baits.Bait,
	trapPhase bool,
	action world.Action,
) world.Action {
	if action != world.StepForward {
		return action
	}

	forward := self.Cell.Step(self.Facing)
	trapsForbidden := !trapPhase
	stillAdmissible := c.admissible(snap, forward, liveByKey, trapsForbidden)

	collision := false
	for _, o := range others {
		if o.Cell.Step(o.Facing) == forward {
			collision = true
			break
		}
	}

	if stillAdmissible && !collision {
		return action
	}

	if c.Debug {
		log.Printf("[Coordinator] last-mile collision check failed (admissible=%v collision=%v), substituting a rotation", stillAdmissible, collision)
	}

	leftForward := self.Cell.Step(self.Facing.RotateLeft())
	rightForward := self.Cell.Step(self.Facing.RotateRight())
	leftOK := c.admissible(snap, leftForward, liveByKey, trapsForbidden)
	rightOK := c.admissible(snap, rightForward, liveByKey, trapsForbidden)

	switch {
	case leftOK:
		return world.TurnLeft
	case rightOK:
		return world.TurnRight
	default:
		return action
	}
}
