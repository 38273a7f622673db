// Package baits implements the Bait Registry of spec.md §4.2: a concurrent
// coordinate → Bait map, mutated by appear/vanish events and snapshotted by
// the per-tick reader.
package baits

import "github.com/BraianBarraza/tarnished-maze-bot/internal/grid"

// Kind tags a Bait's category. The closed set of canonical kinds and scores
// is fixed by spec.md §3/§6; additional kinds are permitted as long as traps
// remain exactly the negative-score kind.
type Kind string

const (
	Gem    Kind = "GEM"
	Coffee Kind = "COFFEE"
	Food   Kind = "FOOD"
	Trap   Kind = "TRAP"
	Letter Kind = "LETTER"
	Other  Kind = "OTHER"
)

// Canonical scores, bit-stable per spec.md §6.
const (
	ScoreGem    = 314
	ScoreCoffee = 42
	ScoreFood   = 13
	ScoreTrap   = -128
	ScoreLetter = 0
)

// CanonicalScore returns the fixed score for the named canonical kinds, and
// ok=false for anything else (callers should keep the caller-supplied score
// in that case).
func CanonicalScore(k Kind) (score int, ok bool) {
	switch k {
	case Gem:
		return ScoreGem, true
	case Coffee:
		return ScoreCoffee, true
	case Food:
		return ScoreFood, true
	case Trap:
		return ScoreTrap, true
	case Letter:
		return ScoreLetter, true
	default:
		return 0, false
	}
}

// LabelFromScore derives the uppercase label spec.md §4.6/§6 requires for a
// reported target, from its score alone (kind may already be known and
// should be preferred over this when available).
func LabelFromScore(score int) string {
	switch score {
	case ScoreGem:
		return string(Gem)
	case ScoreCoffee:
		return string(Coffee)
	case ScoreFood:
		return string(Food)
	case ScoreTrap:
		return string(Trap)
	default:
		if score < 0 {
			return string(Trap)
		}
		return string(Other)
	}
}

// Bait is an immutable collectable record. Its identity is its coordinate:
// two baits cannot share a cell (spec.md §3).
type Bait struct {
	Cell  grid.Cell
	Score int
	Kind  Kind
}

// IsTrap reports whether b is exactly a negative-score bait, per spec.md §3
// ("traps are exactly those with negative score").
func (b Bait) IsTrap() bool {
	return b.Score < 0
}
