package planner

import "github.com/BraianBarraza/tarnished-maze-bot/internal/grid"

// node is one search-tree node in the Reward Planner's branch-and-bound
// tree. Nodes live in a flat arena (arena.nodes) and reference their parent
// by index rather than pointer, mirroring the teacher's transposition-table
// node layout (internal/engine/transposition.go, dropped — see DESIGN.md)
// adapted from a hash table to a plain growable slice.
type node struct {
	cell   grid.Cell
	facing grid.Facing
	moves  int32
	reward float64
	trapSt int32 // trap cells stepped on along the path to this node
	mask   uint64

	firstAction int8 // search.Action of the first move from the root
	parent      int32
	lastCandIdx int32 // index into the candidate slice last collected, -1 if none yet
}

// arena is an append-only pool of nodes, reset once per phase invocation so
// a plan call never retains allocations across ticks.
type arena struct {
	nodes []node
}

func newArena(capacityHint int) *arena {
	return &arena{nodes: make([]node, 0, capacityHint)}
}

func (a *arena) add(n node) int32 {
	a.nodes = append(a.nodes, n)
	return int32(len(a.nodes) - 1)
}

func (a *arena) get(i int32) *node {
	return &a.nodes[i]
}

// utility is the node's accumulated reward minus its accrued move and trap
// costs, per spec.md §4.6's node-utility formula.
func (n *node) utility(moveCost, trapPenalty float64) float64 {
	return n.reward - float64(n.moves)*moveCost - float64(n.trapSt)*trapPenalty
}

func stateIndex(width int, cell grid.Cell, f grid.Facing) int32 {
	return int32((cell.Y*width+cell.X)*4 + int(f))
}

// closedKey dedupes the search tree by (oriented state, collected-set),
// per spec.md §4.6 ("closed-set keyed by state and collected-bitmask").
type closedKey struct {
	state int32
	mask  uint64
}
