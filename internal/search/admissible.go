package search

import "github.com/BraianBarraza/tarnished-maze-bot/internal/grid"

// Compose builds an Admissible predicate from a walkable grid snapshot and
// a caller-supplied blocked overlay (traps, occupied cells, danger memory),
// per spec.md §4.4. The overlay is never allowed to evict origin, matching
// the invariant "This overlay is never allowed to evict the origin cell."
func Compose(snap *grid.Snapshot, blocked func(x, y int) bool, origin grid.Cell) Admissible {
	return func(x, y int) bool {
		if !snap.Walkable(x, y) {
			return false
		}
		if x == origin.X && y == origin.Y {
			return true
		}
		if blocked != nil && blocked(x, y) {
			return false
		}
		return true
	}
}
