// Package planner implements the Reward Planner of spec.md §4.6: a bounded
// best-first branch-and-bound search over the same oriented-state graph the
// Oriented Search explores, except now weighted by collectible reward
// rather than unweighted distance.
//
// The search loop is grounded on the teacher's internal/engine/search.go
// alpha-beta driver (dropped — see DESIGN.md): a bounded expansion count,
// an optimistic bound used to prune, and a "best seen so far" fallback when
// the budget runs out before the frontier empties. container/heap replaces
// the teacher's move-ordering slice sort, since here the frontier is a
// genuine best-first priority queue rather than a fixed per-node move list.
package planner

import (
	"container/heap"
	"time"

	"github.com/BraianBarraza/tarnished-maze-bot/internal/baits"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/config"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/contest"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/grid"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/mazeerr"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/search"
)

// PlanResult is the outcome of one Plan call: the action to take this tick,
// plus the path and target the stabilizer and visualization sink consume.
type PlanResult struct {
	FirstAction search.Action
	Utility     float64
	Path        []grid.Cell
	Target      grid.Cell
	TargetLabel string
	HasTarget   bool
	Expansions  int
	TrapPhase   bool // true if the winning plan required stepping on a trap
}

// Plan runs the two-phase Reward Planner described in spec.md §4.6: a
// trap-forbidden search first, and only if that yields no positive-utility
// node, a trap-permitted re-search that charges TrapStepPenalty per trap
// cell entered.
func Plan(cfg config.Config, snap *grid.Snapshot, self grid.OrientedState, live []baits.Bait, blocked func(x, y int) bool, contestResult *contest.Result) (*PlanResult, error) {
	if snap == nil {
		return nil, mazeerr.ErrNotReady
	}

	plainArrays := search.NewPlainArrays(snap.Width, snap.Height)
	plainAdmissible := search.Compose(snap, blocked, self.Cell)
	plainField := search.RunPlain(plainArrays, snap.Width, snap.Height, self.Cell, plainAdmissible)

	candidates, trapCells := selectCandidates(cfg, plainField, live)
	candidates = applyContestDiscount(candidates, contestResult)
	if len(candidates) == 0 {
		return nil, mazeerr.ErrNoPlan
	}

	orderDesc := descendingScoreOrder(candidates)
	cellIndex := make(map[uint64]int, len(candidates))
	for i, c := range candidates {
		cellIndex[c.Cell.Key()] = i
	}

	deadline := time.Now().Add(cfg.PlannerWallClockBudget)

	if res := runPhase(cfg, snap, self, candidates, orderDesc, cellIndex, trapCells, blocked, false, deadline); res != nil {
		return res, nil
	}
	if res := runPhase(cfg, snap, self, candidates, orderDesc, cellIndex, trapCells, blocked, true, deadline); res != nil {
		res.TrapPhase = true
		return res, nil
	}
	return nil, mazeerr.ErrNoPlan
}

func descendingScoreOrder(candidates []Candidate) []int {
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && candidates[order[j-1]].Score < candidates[order[j]].Score; j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}
	return order
}

// runPhase runs one bounded best-first branch-and-bound search. permitTraps
// false forbids stepping on any trap cell outright (phase one); true allows
// it at TrapStepPenalty cost (phase two). It returns nil if no node ever
// reached positive utility.
func runPhase(
	cfg config.Config,
	snap *grid.Snapshot,
	self grid.OrientedState,
	candidates []Candidate,
	orderDesc []int,
	cellIndex map[uint64]int,
	trapCells map[uint64]struct{},
	blocked func(x, y int) bool,
	permitTraps bool,
	deadline time.Time,
) *PlanResult {
	combinedBlocked := func(x, y int) bool {
		if blocked != nil && blocked(x, y) {
			return true
		}
		if !permitTraps {
			if _, isTrap := trapCells[(grid.Cell{X: x, Y: y}).Key()]; isTrap {
				return true
			}
		}
		return false
	}
	admissible := search.Compose(snap, combinedBlocked, self.Cell)

	a := newArena(cfg.MaxExpansions*3 + 1)
	closed := make(map[closedKey]float64, cfg.MaxExpansions*3+1)

	rootIdx := a.add(node{
		cell:        self.Cell,
		facing:      self.Facing,
		moves:       0,
		reward:      0,
		trapSt:      0,
		mask:        0,
		firstAction: int8(search.NoAction),
		parent:      -1,
		lastCandIdx: -1,
	})
	closed[closedKey{state: stateIndex(snap.Width, self.Cell, self.Facing), mask: 0}] = 0

	open := &openSet{}
	heap.Init(open)
	heap.Push(open, pqItem{nodeIdx: rootIdx, priority: optimisticRemaining(0, int32(cfg.MaxDepth), candidates, orderDesc)})

	bestIdx := rootIdx
	bestUtility := 0.0
	var seq int64
	expansions := 0

	for open.Len() > 0 && expansions < cfg.MaxExpansions {
		if expansions%64 == 0 && time.Now().After(deadline) {
			break
		}
		item := heap.Pop(open).(pqItem)
		cur := a.get(item.nodeIdx)

		u := cur.utility(cfg.MoveCost, cfg.TrapStepPenalty)
		if u > bestUtility {
			bestUtility = u
			bestIdx = item.nodeIdx
		}
		if cur.moves >= int32(cfg.MaxDepth) {
			continue
		}
		expansions++

		type edge struct {
			nx, ny int
			nf     grid.Facing
			act    search.Action
		}
		// Copy every field of cur used below before any a.add call: arena
		// growth can reallocate the backing slice, which would leave cur
		// dangling into the old array for the remainder of this loop.
		curCell, curFacing := cur.cell, cur.facing
		curMoves, curReward, curTrapSt, curMask := cur.moves, cur.reward, cur.trapSt, cur.mask
		curFirstAction, curIdx := cur.firstAction, item.nodeIdx
		curLastCand := cur.lastCandIdx
		parentIsRoot := curIdx == rootIdx

		dx, dy := curFacing.Delta()
		edges := [3]edge{
			{curCell.X, curCell.Y, curFacing.RotateLeft(), search.RotateLeft},
			{curCell.X, curCell.Y, curFacing.RotateRight(), search.RotateRight},
			{curCell.X + dx, curCell.Y + dy, curFacing, search.StepForward},
		}

		for _, e := range edges {
			if e.act == search.StepForward && !admissible(e.nx, e.ny) {
				continue
			}
			childCell := grid.Cell{X: e.nx, Y: e.ny}
			childMoves := curMoves + 1
			childReward := curReward
			childTrapSt := curTrapSt
			childMask := curMask
			childLastCand := curLastCand

			if e.act == search.StepForward {
				if permitTraps {
					if _, isTrap := trapCells[childCell.Key()]; isTrap {
						childTrapSt++
					}
				}
				if idx, ok := cellIndex[childCell.Key()]; ok {
					bit := uint64(1) << uint(idx)
					if childMask&bit == 0 {
						childMask |= bit
						childReward += float64(candidates[idx].Score)
						childLastCand = int32(idx)
					}
				}
			}

			key := closedKey{state: stateIndex(snap.Width, childCell, e.nf), mask: childMask}
			childUtil := childReward - float64(childMoves)*cfg.MoveCost - float64(childTrapSt)*cfg.TrapStepPenalty
			if prev, seen := closed[key]; seen && prev >= childUtil {
				continue
			}
			closed[key] = childUtil

			childIdx := a.add(node{
				cell:        childCell,
				facing:      e.nf,
				moves:       childMoves,
				reward:      childReward,
				trapSt:      childTrapSt,
				mask:        childMask,
				firstAction: firstActionFor(curFirstAction, parentIsRoot, e.act),
				parent:      curIdx,
				lastCandIdx: childLastCand,
			})

			bound := childUtil + optimisticRemaining(childMask, int32(cfg.MaxDepth)-childMoves, candidates, orderDesc)
			seq++
			heap.Push(open, pqItem{nodeIdx: childIdx, priority: bound, stepEdge: e.act == search.StepForward, seq: seq})
		}
	}

	if bestIdx == rootIdx || bestUtility <= 0 {
		return nil
	}
	return buildResult(a, bestIdx, bestUtility, candidates, expansions)
}

// candidateLabel prefers the bait's own Kind (stable even after contest
// discounting halves its Score) and falls back to deriving one from the
// score for candidates constructed with an unrecognized kind.
func candidateLabel(c Candidate) string {
	if c.Kind != "" {
		return string(c.Kind)
	}
	return baits.LabelFromScore(c.Score)
}

func firstActionFor(parentFirstAction int8, parentIsRoot bool, act search.Action) int8 {
	if parentIsRoot {
		return int8(act)
	}
	return parentFirstAction
}

func buildResult(a *arena, bestIdx int32, utility float64, candidates []Candidate, expansions int) *PlanResult {
	var cells []grid.Cell
	idx := bestIdx
	for idx != -1 {
		n := a.get(idx)
		if len(cells) == 0 || cells[len(cells)-1] != n.cell {
			cells = append(cells, n.cell)
		}
		idx = n.parent
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}

	best := a.get(bestIdx)
	res := &PlanResult{
		FirstAction: search.Action(best.firstAction),
		Utility:     utility,
		Path:        cells,
		Expansions:  expansions,
	}

	// Report the highest-score candidate actually collected along the
	// winning path as the target, per DESIGN.md's resolution of this open
	// question. This diverges from the literal "first coincident cell on
	// the path" rule for a multi-candidate winning path; both are on-path
	// and in-snapshot, so the divergence is confined to which of several
	// already-collected candidates gets named.
	bestCandIdx := -1
	for i, c := range candidates {
		if best.mask&(uint64(1)<<uint(i)) == 0 {
			continue
		}
		if bestCandIdx == -1 || c.Score > candidates[bestCandIdx].Score {
			bestCandIdx = i
		}
	}
	if bestCandIdx >= 0 {
		c := candidates[bestCandIdx]
		res.Target = c.Cell
		res.TargetLabel = candidateLabel(c)
		res.HasTarget = true
	} else if best.lastCandIdx >= 0 {
		c := candidates[best.lastCandIdx]
		res.Target = c.Cell
		res.TargetLabel = candidateLabel(c)
		res.HasTarget = true
	}

	return res
}
