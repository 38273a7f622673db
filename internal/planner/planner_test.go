package planner

import (
	"testing"

	"github.com/BraianBarraza/tarnished-maze-bot/internal/baits"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/config"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/grid"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/mazeerr"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/search"
)

func openRoom(w, h int) *grid.Snapshot {
	rows := make([]string, h)
	line := make([]byte, w)
	for i := range line {
		line[i] = '.'
	}
	for y := 0; y < h; y++ {
		rows[y] = string(line)
	}
	snap, err := grid.Parse(w, h, rows, false)
	if err != nil {
		panic(err)
	}
	return snap
}

func TestPlanStepsTowardSingleGem(t *testing.T) {
	// 5x1 corridor, self at (0,0) facing East, a Gem three steps ahead.
	snap := openRoom(5, 1)
	self := grid.OrientedState{Cell: grid.Cell{X: 0, Y: 0}, Facing: grid.East}
	live := []baits.Bait{{Cell: grid.Cell{X: 3, Y: 0}, Score: baits.ScoreGem, Kind: baits.Gem}}

	res, err := Plan(config.Default(), snap, self, live, nil, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if res.FirstAction != search.StepForward {
		t.Errorf("FirstAction = %v, want StepForward", res.FirstAction)
	}
	if !res.HasTarget || res.Target != (grid.Cell{X: 3, Y: 0}) {
		t.Errorf("Target = %v (has=%v), want (3,0)", res.Target, res.HasTarget)
	}
	if res.TargetLabel != string(baits.Gem) {
		t.Errorf("TargetLabel = %q, want GEM", res.TargetLabel)
	}
	if res.TrapPhase {
		t.Error("expected a trap-free plan to not be flagged TrapPhase")
	}
}

func TestPlanTurnsWhenGemIsBehind(t *testing.T) {
	snap := openRoom(5, 1)
	self := grid.OrientedState{Cell: grid.Cell{X: 2, Y: 0}, Facing: grid.East}
	live := []baits.Bait{{Cell: grid.Cell{X: 0, Y: 0}, Score: baits.ScoreGem, Kind: baits.Gem}}

	res, err := Plan(config.Default(), snap, self, live, nil, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if res.FirstAction != search.RotateLeft && res.FirstAction != search.RotateRight {
		t.Errorf("FirstAction = %v, want a rotation since the target is behind self", res.FirstAction)
	}
}

func TestPlanNoPlanWhenOnlyTrapsExist(t *testing.T) {
	snap := openRoom(5, 1)
	self := grid.OrientedState{Cell: grid.Cell{X: 0, Y: 0}, Facing: grid.East}
	live := []baits.Bait{{Cell: grid.Cell{X: 3, Y: 0}, Score: baits.ScoreTrap, Kind: baits.Trap}}

	_, err := Plan(config.Default(), snap, self, live, nil, nil)
	if err != mazeerr.ErrNoPlan {
		t.Errorf("err = %v, want ErrNoPlan", err)
	}
}

func TestPlanSkipsTrapInPhaseOneWhenDetourExists(t *testing.T) {
	// A 3-row grid: the top row is wall, the straight line along the middle
	// row has a trap sitting on it, and the open bottom row offers a clear
	// detour. Phase one (trap-forbidden) should win with the detour rather
	// than falling through to the trap-permitted phase.
	rows := []string{
		"#####",
		".....",
		".....",
	}
	snap, err := grid.Parse(5, 3, rows, false)
	if err != nil {
		t.Fatal(err)
	}
	self := grid.OrientedState{Cell: grid.Cell{X: 0, Y: 1}, Facing: grid.East}
	live := []baits.Bait{
		{Cell: grid.Cell{X: 3, Y: 1}, Score: baits.ScoreGem, Kind: baits.Gem},
		{Cell: grid.Cell{X: 1, Y: 1}, Score: baits.ScoreTrap, Kind: baits.Trap},
	}

	res, err := Plan(config.Default(), snap, self, live, nil, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if res.TrapPhase {
		t.Error("expected phase one to find a trap-free detour, got a trap-permitted plan")
	}
	for _, c := range res.Path {
		if c == (grid.Cell{X: 1, Y: 1}) {
			t.Error("winning path must never include the trap cell when a detour exists")
		}
	}
}

func TestPlanPermitsTrapWhenNoDetourExists(t *testing.T) {
	// A single corridor where the only Gem lies past a trap; phase one
	// must fail (no detour) and phase two must step on the trap.
	snap := openRoom(5, 1)
	self := grid.OrientedState{Cell: grid.Cell{X: 0, Y: 0}, Facing: grid.East}
	live := []baits.Bait{
		{Cell: grid.Cell{X: 4, Y: 0}, Score: baits.ScoreGem, Kind: baits.Gem},
		{Cell: grid.Cell{X: 2, Y: 0}, Score: baits.ScoreTrap, Kind: baits.Trap},
	}

	res, err := Plan(config.Default(), snap, self, live, nil, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if !res.TrapPhase {
		t.Error("expected phase two (trap-permitted) to have produced this plan")
	}
}

func TestPlanPrefersHigherYieldCandidate(t *testing.T) {
	// Two reachable candidates at equal distance; the Gem (higher score)
	// should win out over the Coffee.
	rows := []string{
		".........",
	}
	snap, err := grid.Parse(9, 1, rows, false)
	if err != nil {
		t.Fatal(err)
	}
	self := grid.OrientedState{Cell: grid.Cell{X: 4, Y: 0}, Facing: grid.East}
	live := []baits.Bait{
		{Cell: grid.Cell{X: 8, Y: 0}, Score: baits.ScoreGem, Kind: baits.Gem},
		{Cell: grid.Cell{X: 0, Y: 0}, Score: baits.ScoreCoffee, Kind: baits.Coffee},
	}
	cfg := config.Default()
	cfg.MaxDepth = 6 // only enough lookahead to reach one side

	res, err := Plan(cfg, snap, self, live, nil, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if res.TargetLabel != string(baits.Gem) {
		t.Errorf("TargetLabel = %q, want GEM (higher yield wins under a shared lookahead budget)", res.TargetLabel)
	}
}

func TestPlanReturnsErrNotReadyOnNilSnapshot(t *testing.T) {
	_, err := Plan(config.Default(), nil, grid.OrientedState{}, nil, nil, nil)
	if err != mazeerr.ErrNotReady {
		t.Errorf("err = %v, want ErrNotReady", err)
	}
}

func TestSelectCandidatesRanksByYieldPerDistance(t *testing.T) {
	snap := openRoom(10, 1)
	plainArrays := search.NewPlainArrays(snap.Width, snap.Height)
	admissible := search.Compose(snap, nil, grid.Cell{X: 0, Y: 0})
	plain := search.RunPlain(plainArrays, snap.Width, snap.Height, grid.Cell{X: 0, Y: 0}, admissible)

	live := []baits.Bait{
		{Cell: grid.Cell{X: 9, Y: 0}, Score: baits.ScoreGem, Kind: baits.Gem},   // far but huge
		{Cell: grid.Cell{X: 1, Y: 0}, Score: baits.ScoreCoffee, Kind: baits.Coffee}, // near but small
		{Cell: grid.Cell{X: 5, Y: 0}, Score: baits.ScoreTrap, Kind: baits.Trap},
	}
	cfg := config.Default()
	cands, traps := selectCandidates(cfg, plain, live)

	if len(traps) != 1 {
		t.Fatalf("expected exactly one trap cell, got %d", len(traps))
	}
	if len(cands) != 2 {
		t.Fatalf("expected exactly 2 non-trap candidates, got %d", len(cands))
	}
	if cands[0].Cell != (grid.Cell{X: 9, Y: 0}) {
		t.Errorf("expected the Gem (314/11) to outrank the Coffee (42/3), got %v first", cands[0].Cell)
	}
}

func TestSelectCandidatesBreaksEqualRatioTiesByCellKey(t *testing.T) {
	snap := openRoom(11, 1)
	plainArrays := search.NewPlainArrays(snap.Width, snap.Height)
	admissible := search.Compose(snap, nil, grid.Cell{X: 5, Y: 0})
	plain := search.RunPlain(plainArrays, snap.Width, snap.Height, grid.Cell{X: 5, Y: 0}, admissible)

	// Two equidistant Food baits straddling the start: equal score/(dist+2)
	// ratio, so only the cell-key tie-break can fix their relative order.
	live := []baits.Bait{
		{Cell: grid.Cell{X: 7, Y: 0}, Score: baits.ScoreFood, Kind: baits.Food},
		{Cell: grid.Cell{X: 3, Y: 0}, Score: baits.ScoreFood, Kind: baits.Food},
	}
	cfg := config.Default()

	var firstRun []grid.Cell
	for i := 0; i < 20; i++ {
		cands, _ := selectCandidates(cfg, plain, live)
		if len(cands) != 2 {
			t.Fatalf("expected 2 candidates, got %d", len(cands))
		}
		order := []grid.Cell{cands[0].Cell, cands[1].Cell}
		if firstRun == nil {
			firstRun = order
			continue
		}
		if order[0] != firstRun[0] || order[1] != firstRun[1] {
			t.Fatalf("candidate order is not deterministic: got %v, want %v", order, firstRun)
		}
	}
	// The lower cell key (X=3) must win the tie, per selectCandidates' rule.
	if firstRun[0] != (grid.Cell{X: 3, Y: 0}) {
		t.Errorf("expected the lower-key cell first on a tie, got %v", firstRun[0])
	}
}

func TestApplyContestDiscountNilResultIsNoOp(t *testing.T) {
	cands := []Candidate{{Cell: grid.Cell{X: 5, Y: 0}, Score: baits.ScoreGem, PlainDist: 5}}
	out := applyContestDiscount(cands, nil)
	if len(out) != 1 {
		t.Fatalf("nil contest result must be a no-op, got %d candidates", len(out))
	}
}
