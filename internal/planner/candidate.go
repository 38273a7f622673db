package planner

import (
	"sort"

	"github.com/BraianBarraza/tarnished-maze-bot/internal/baits"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/config"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/contest"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/grid"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/search"
)

// Candidate is a bait selected for planner consideration, per spec.md §3
// ("a bait selected for consideration by the planner in the current tick").
type Candidate struct {
	Cell      grid.Cell
	Score     int
	Kind      baits.Kind
	PlainDist int32
}

// selectCandidates ranks positive-score baits reachable via the plain grid
// by score/(distance+2) descending and keeps the top cfg.CandidateBaits, per
// spec.md §4.6. Traps are never candidates; their cells are returned
// separately as the trap overlay.
func selectCandidates(cfg config.Config, plain *search.PlainField, live []baits.Bait) (candidates []Candidate, trapCells map[uint64]struct{}) {
	trapCells = make(map[uint64]struct{})

	var pool []Candidate
	for _, b := range live {
		if b.IsTrap() {
			trapCells[b.Cell.Key()] = struct{}{}
			continue
		}
		if b.Score <= 0 {
			continue
		}
		d := plain.DistanceTo(b.Cell.X, b.Cell.Y)
		if d == search.Unreached {
			continue
		}
		pool = append(pool, Candidate{Cell: b.Cell, Score: b.Score, Kind: b.Kind, PlainDist: d})
	}

	sort.Slice(pool, func(i, j int) bool {
		ri := float64(pool[i].Score) / float64(pool[i].PlainDist+2)
		rj := float64(pool[j].Score) / float64(pool[j].PlainDist+2)
		if ri != rj {
			return ri > rj
		}
		// Registry.Snapshot ranges a map, so equal-ratio candidates (e.g.
		// two Food baits equidistant left/right) arrive in arbitrary order;
		// break the tie on cell key so the array position — and therefore
		// the bitmask bit it becomes — is deterministic across runs.
		return pool[i].Cell.Key() < pool[j].Cell.Key()
	})

	if len(pool) > cfg.CandidateBaits {
		pool = pool[:cfg.CandidateBaits]
	}
	return pool, trapCells
}

// applyContestDiscount implements spec.md §4.6/S4's contested-bait
// discounting: a candidate an opponent can reach strictly before self is
// pruned outright (effective utility is zero, per S4); a genuine tie is
// discounted rather than pruned, since self may still win ties in practice;
// a clear self lead is left untouched.
func applyContestDiscount(candidates []Candidate, result *contest.Result) []Candidate {
	if result == nil {
		return candidates
	}
	out := candidates[:0:0]
	for _, c := range candidates {
		oppTicks := result.MinOpponentTicksTo(c.Cell.X, c.Cell.Y)
		if oppTicks == search.Unreached {
			out = append(out, c)
			continue
		}
		margin := int32(c.PlainDist) - oppTicks // positive: opponent arrives first
		switch {
		case margin > 0:
			// Opponent strictly wins the race; win probability is zero.
			continue
		case margin == 0:
			c.Score = c.Score / 2
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return out
}
