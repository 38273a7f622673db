package stabilizer

import (
	"testing"

	"github.com/BraianBarraza/tarnished-maze-bot/internal/baits"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/config"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/grid"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/planner"
)

func corridor(n int) *grid.Snapshot {
	row := make([]byte, n)
	for i := range row {
		row[i] = '.'
	}
	snap, err := grid.Parse(n, 1, []string{string(row)}, false)
	if err != nil {
		panic(err)
	}
	return snap
}

func TestStabilizerCommitsFirstSeenTarget(t *testing.T) {
	s := New()
	cfg := config.Default()
	plan := &planner.PlanResult{HasTarget: true, Target: grid.Cell{X: 3, Y: 0}, TargetLabel: "GEM", Utility: 100}

	d := s.Decide(cfg, 0, corridor(5), grid.OrientedState{Cell: grid.Cell{X: 0, Y: 0}, Facing: grid.East}, nil, nil, plan)
	if !d.HasTarget || !d.Switched || d.Target != (grid.Cell{X: 3, Y: 0}) {
		t.Fatalf("expected immediate commit to the first target, got %+v", d)
	}
}

func TestStabilizerHoldsUnderMargin(t *testing.T) {
	// Scenario S5's setup, scaled down: committed to Coffee at distance 3
	// (u_prev = 42 - 6*3 = 24); a new candidate offers only a marginal
	// improvement that does not clear the 22.5% switch margin.
	s := New()
	cfg := config.Default()
	snap := corridor(10)
	live := map[uint64]baits.Bait{
		(grid.Cell{X: 3, Y: 0}).Key(): {Cell: grid.Cell{X: 3, Y: 0}, Score: baits.ScoreCoffee, Kind: baits.Coffee},
	}
	self := grid.OrientedState{Cell: grid.Cell{X: 0, Y: 0}, Facing: grid.East}

	first := &planner.PlanResult{HasTarget: true, Target: grid.Cell{X: 3, Y: 0}, TargetLabel: "COFFEE", Utility: 24}
	s.Decide(cfg, 0, snap, self, nil, live, first)

	marginal := &planner.PlanResult{HasTarget: true, Target: grid.Cell{X: 6, Y: 0}, TargetLabel: "FOOD", Utility: 25}
	d := s.Decide(cfg, 1, snap, self, nil, live, marginal)
	if d.Switched {
		t.Errorf("expected the stabilizer to hold the committed target under the switch margin, got switched=%v target=%v", d.Switched, d.Target)
	}
	if d.Target != (grid.Cell{X: 3, Y: 0}) {
		t.Errorf("Target = %v, want the still-committed Coffee cell", d.Target)
	}
}

func TestStabilizerSwitchesWhenGemClearsMargin(t *testing.T) {
	// spec.md S5: u_prev = 24, a Gem offers u_new = 284, well past the
	// default 22.5% margin threshold of 24*1.225 = 29.4, so the commit must
	// switch to the Gem.
	s := New()
	cfg := config.Default()
	snap := corridor(10)
	live := map[uint64]baits.Bait{
		(grid.Cell{X: 3, Y: 0}).Key(): {Cell: grid.Cell{X: 3, Y: 0}, Score: baits.ScoreCoffee, Kind: baits.Coffee},
		(grid.Cell{X: 8, Y: 0}).Key(): {Cell: grid.Cell{X: 8, Y: 0}, Score: baits.ScoreGem, Kind: baits.Gem},
	}
	self := grid.OrientedState{Cell: grid.Cell{X: 0, Y: 0}, Facing: grid.East}

	first := &planner.PlanResult{HasTarget: true, Target: grid.Cell{X: 3, Y: 0}, TargetLabel: "COFFEE", Utility: 24}
	s.Decide(cfg, 0, snap, self, nil, live, first)

	better := &planner.PlanResult{HasTarget: true, Target: grid.Cell{X: 8, Y: 0}, TargetLabel: "GEM", Utility: 284}
	d := s.Decide(cfg, 1, snap, self, nil, live, better)
	if !d.Switched || d.Target != (grid.Cell{X: 8, Y: 0}) {
		t.Errorf("expected a switch to the Gem, got switched=%v target=%v", d.Switched, d.Target)
	}
}

func TestStabilizerDropsCommitWhenBaitVanishes(t *testing.T) {
	s := New()
	cfg := config.Default()
	snap := corridor(10)
	self := grid.OrientedState{Cell: grid.Cell{X: 0, Y: 0}, Facing: grid.East}

	live := map[uint64]baits.Bait{
		(grid.Cell{X: 3, Y: 0}).Key(): {Cell: grid.Cell{X: 3, Y: 0}, Score: baits.ScoreCoffee, Kind: baits.Coffee},
	}
	first := &planner.PlanResult{HasTarget: true, Target: grid.Cell{X: 3, Y: 0}, TargetLabel: "COFFEE", Utility: 24}
	s.Decide(cfg, 0, snap, self, nil, live, first)

	// The committed bait is gone; only a worse one remains.
	liveAfter := map[uint64]baits.Bait{
		(grid.Cell{X: 9, Y: 0}).Key(): {Cell: grid.Cell{X: 9, Y: 0}, Score: baits.ScoreFood, Kind: baits.Food},
	}
	next := &planner.PlanResult{HasTarget: true, Target: grid.Cell{X: 9, Y: 0}, TargetLabel: "FOOD", Utility: 3}
	d := s.Decide(cfg, 1, snap, self, nil, liveAfter, next)
	if !d.Switched || d.Target != (grid.Cell{X: 9, Y: 0}) {
		t.Errorf("expected an immediate switch once the committed bait vanished, got %+v", d)
	}
}

func TestStabilizerWindowExpiryForcesSwitch(t *testing.T) {
	s := New()
	cfg := config.Default()
	cfg.CommitWindowTicks = 2
	snap := corridor(10)
	self := grid.OrientedState{Cell: grid.Cell{X: 0, Y: 0}, Facing: grid.East}
	live := map[uint64]baits.Bait{
		(grid.Cell{X: 3, Y: 0}).Key(): {Cell: grid.Cell{X: 3, Y: 0}, Score: baits.ScoreCoffee, Kind: baits.Coffee},
		(grid.Cell{X: 5, Y: 0}).Key(): {Cell: grid.Cell{X: 5, Y: 0}, Score: baits.ScoreCoffee, Kind: baits.Coffee},
	}

	first := &planner.PlanResult{HasTarget: true, Target: grid.Cell{X: 3, Y: 0}, TargetLabel: "COFFEE", Utility: 24}
	s.Decide(cfg, 0, snap, self, nil, live, first)

	// Tick 2 hits the window boundary even though the alternative offers no
	// real improvement.
	marginal := &planner.PlanResult{HasTarget: true, Target: grid.Cell{X: 5, Y: 0}, TargetLabel: "COFFEE", Utility: 12}
	d := s.Decide(cfg, 2, snap, self, nil, live, marginal)
	if !d.Switched {
		t.Error("expected the expired commit window to force a switch")
	}
}

func TestStabilizerNoTargetWithNoPlanAndNoCommit(t *testing.T) {
	s := New()
	d := s.Decide(config.Default(), 0, corridor(5), grid.OrientedState{}, nil, nil, nil)
	if d.HasTarget {
		t.Errorf("expected no target with neither a commit nor a plan, got %+v", d)
	}
}
