package coordinator

import (
	"testing"

	"github.com/BraianBarraza/tarnished-maze-bot/internal/agents"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/baits"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/config"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/grid"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/visual"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/world"
)

func corridorRows(n int) []string {
	row := make([]byte, n)
	for i := range row {
		row[i] = '.'
	}
	return []string{string(row)}
}

func TestNextMoveIsIdleBeforeMazeOrSelfKnown(t *testing.T) {
	d := world.NewDispatcher()
	c := New(config.Default(), visual.NewMemorySink())

	if a := c.NextMove(d); a != world.DoNothing {
		t.Errorf("action = %v, want DoNothing before any maze is known", a)
	}
	if c.LastState() != Idle {
		t.Errorf("state = %v, want Idle", c.LastState())
	}
}

func TestNextMoveRespectsPause(t *testing.T) {
	d := world.NewDispatcher()
	d.OnMaze(5, 1, corridorRows(5))
	d.OnSelfLogin(agents.Snapshot{ID: "self", Cell: grid.Cell{X: 0, Y: 0}, Facing: grid.East})
	d.OnPauseToggle(true)

	c := New(config.Default(), visual.NewMemorySink())
	if a := c.NextMove(d); a != world.DoNothing {
		t.Errorf("action = %v, want DoNothing while paused", a)
	}
	if c.LastState() != Paused {
		t.Errorf("state = %v, want Paused", c.LastState())
	}
}

func TestNextMoveStepsTowardReachableGem(t *testing.T) {
	d := world.NewDispatcher()
	d.OnMaze(5, 1, corridorRows(5))
	d.OnSelfLogin(agents.Snapshot{ID: "self", Cell: grid.Cell{X: 0, Y: 0}, Facing: grid.East})
	d.OnBaitAppeared(baits.Bait{Cell: grid.Cell{X: 3, Y: 0}, Score: baits.ScoreGem, Kind: baits.Gem})

	sink := visual.NewMemorySink()
	c := New(config.Default(), sink)

	a := c.NextMove(d)
	if a != world.StepForward {
		t.Errorf("action = %v, want StepForward toward the Gem", a)
	}
	if c.LastState() != Executing {
		t.Errorf("state = %v, want Executing", c.LastState())
	}
	tgt, ok := sink.CurrentTarget()
	if !ok || tgt.Cell != (grid.Cell{X: 3, Y: 0}) {
		t.Errorf("sink target = %v (ok=%v), want (3,0)", tgt, ok)
	}
}

func TestNextMoveFallsBackWhenNoCandidatesExist(t *testing.T) {
	d := world.NewDispatcher()
	d.OnMaze(5, 1, corridorRows(5))
	d.OnSelfLogin(agents.Snapshot{ID: "self", Cell: grid.Cell{X: 0, Y: 0}, Facing: grid.East})
	// No baits at all: the planner must report NoPlan and the coordinator
	// falls back, per spec.md §4.9.

	c := New(config.Default(), visual.NewMemorySink())
	a := c.NextMove(d)
	if a != world.StepForward {
		t.Errorf("action = %v, want StepForward (forward cell is open corridor)", a)
	}
	if c.LastState() != Fallback {
		t.Errorf("state = %v, want Fallback", c.LastState())
	}
}

func TestNextMoveFallbackTurnsWhenForwardBlocked(t *testing.T) {
	rows := []string{"##", ".."}
	d := world.NewDispatcher()
	d.OnMaze(2, 2, rows)
	// Facing North with a wall directly ahead.
	d.OnSelfLogin(agents.Snapshot{ID: "self", Cell: grid.Cell{X: 0, Y: 1}, Facing: grid.North})

	c := New(config.Default(), visual.NewMemorySink())
	a := c.NextMove(d)
	if a != world.TurnLeft {
		t.Errorf("action = %v, want TurnLeft when the forward cell is a wall", a)
	}
}

func TestAvoidCollisionSubstitutesRotationWhenOpponentSharesForwardCell(t *testing.T) {
	// A 5x3 open room, so that after a rotation self faces an open cell; in
	// a one-row corridor neither rotation would be admissible and the Step
	// would be kept.
	d := world.NewDispatcher()
	d.OnMaze(5, 3, []string{".....", ".....", "....."})
	d.OnSelfLogin(agents.Snapshot{ID: "self", Cell: grid.Cell{X: 0, Y: 1}, Facing: grid.East})
	d.OnBaitAppeared(baits.Bait{Cell: grid.Cell{X: 3, Y: 1}, Score: baits.ScoreGem, Kind: baits.Gem})
	// An opponent at (2,1) facing West: its forward cell is (1,1), exactly
	// where self's planned Step would land.
	d.OnAgent(world.AgentEvent{Kind: agents.Appear, Snapshot: agents.Snapshot{ID: "opp", Cell: grid.Cell{X: 2, Y: 1}, Facing: grid.West}})

	c := New(config.Default(), visual.NewMemorySink())
	a := c.NextMove(d)
	if a != world.TurnLeft && a != world.TurnRight {
		t.Errorf("action = %v, want a substituted rotation once the forward cell is contested", a)
	}
}
