package search

import "github.com/BraianBarraza/tarnished-maze-bot/internal/grid"

// Unreached is the sentinel distance/index value for a state that was never
// visited by the current BFS.
const Unreached int32 = -1

// Arrays holds the three parallel W*H*4 arrays spec.md §4.4 names: dist,
// prev_state, and first_action. They are allocated once per (width,height)
// and reused across calls to Run via reset, to avoid per-tick allocation on
// the decision-core hot path.
type Arrays struct {
	width, height int
	dist          []int32
	prev          []int32
	firstAction   []int8
}

// NewArrays allocates state arrays for a width x height grid.
func NewArrays(width, height int) *Arrays {
	a := &Arrays{}
	a.resize(width, height)
	return a
}

func (a *Arrays) resize(width, height int) {
	size := width * height * 4
	a.width, a.height = width, height
	if cap(a.dist) < size {
		a.dist = make([]int32, size)
		a.prev = make([]int32, size)
		a.firstAction = make([]int8, size)
	} else {
		a.dist = a.dist[:size]
		a.prev = a.prev[:size]
		a.firstAction = a.firstAction[:size]
	}
}

func (a *Arrays) reset(width, height int) {
	if a.width != width || a.height != height || len(a.dist) != width*height*4 {
		a.resize(width, height)
	}
	for i := range a.dist {
		a.dist[i] = Unreached
		a.prev[i] = Unreached
		a.firstAction[i] = int8(NoAction)
	}
}

// index computes the flat state index for (x,y,facing), per spec.md §3:
// "Flat index = (y·W + x)·4 + facing".
func (a *Arrays) index(x, y int, f grid.Facing) int32 {
	return int32((y*a.width+x)*4 + int(f))
}

// Field is the result of one Oriented Search: the BFS frontier arrays plus
// the grid dimensions and origin they were computed against.
type Field struct {
	arrays *Arrays
	origin grid.OrientedState
}

// Run performs an unweighted BFS over (x,y,facing) states rooted at origin.
// admissible composes in-bounds ∧ walkable ∧ ¬blocked(x,y); it must never
// evict the origin cell (spec.md §4.4).
func Run(a *Arrays, width, height int, origin grid.OrientedState, admissible Admissible) *Field {
	a.reset(width, height)

	originIdx := a.index(origin.Cell.X, origin.Cell.Y, origin.Facing)
	a.dist[originIdx] = 0
	a.prev[originIdx] = Unreached
	a.firstAction[originIdx] = int8(NoAction)

	queue := make([]int32, 0, width*height)
	queue = append(queue, originIdx)

	for head := 0; head < len(queue); head++ {
		curIdx := queue[head]
		cx, cy, cf := decode(curIdx, width)

		type edge struct {
			nx, ny int
			nf     grid.Facing
			act    Action
		}
		edges := [3]edge{
			{cx, cy, cf.RotateLeft(), RotateLeft},
			{cx, cy, cf.RotateRight(), RotateRight},
			{0, 0, cf, StepForward},
		}
		dx, dy := cf.Delta()
		edges[2].nx, edges[2].ny = cx+dx, cy+dy

		for _, e := range edges {
			if e.act == StepForward && !admissible(e.nx, e.ny) {
				continue
			}
			nIdx := a.index(e.nx, e.ny, e.nf)
			if a.dist[nIdx] != Unreached {
				continue
			}
			a.dist[nIdx] = a.dist[curIdx] + 1
			a.prev[nIdx] = curIdx
			if curIdx == originIdx {
				a.firstAction[nIdx] = int8(e.act)
			} else {
				a.firstAction[nIdx] = a.firstAction[curIdx]
			}
			queue = append(queue, nIdx)
		}
	}

	return &Field{arrays: a, origin: origin}
}

func decode(idx int32, width int) (x, y int, f grid.Facing) {
	cell := idx / 4
	facing := idx % 4
	x = int(cell) % width
	y = int(cell) / width
	f = grid.Facing(facing)
	return
}

// argminFacing returns the facing with the smallest dist at (x,y), with
// ties broken toward the lowest facing index per spec.md §4.4, and whether
// any facing was reachable at all.
func (f *Field) argminFacing(x, y int) (grid.Facing, bool) {
	best := Unreached
	bestFacing := grid.North
	for facing := grid.Facing(0); facing < 4; facing++ {
		idx := f.arrays.index(x, y, facing)
		d := f.arrays.dist[idx]
		if d == Unreached {
			continue
		}
		if best == Unreached || d < best {
			best = d
			bestFacing = facing
		}
	}
	return bestFacing, best != Unreached
}

// DistanceTo returns the minimum number of actions to bring (x,y) into
// alignment under any facing, or Unreached if no facing is reachable.
func (f *Field) DistanceTo(x, y int) int32 {
	facing, ok := f.argminFacing(x, y)
	if !ok {
		return Unreached
	}
	return f.arrays.dist[f.arrays.index(x, y, facing)]
}

// Reachable reports whether (x,y) is reachable under any facing.
func (f *Field) Reachable(x, y int) bool {
	return f.DistanceTo(x, y) != Unreached
}

// FirstActionTo returns the first action along the shortest path to (x,y),
// using the deterministic lowest-facing-index tie-break.
func (f *Field) FirstActionTo(x, y int) (Action, bool) {
	facing, ok := f.argminFacing(x, y)
	if !ok {
		return NoAction, false
	}
	idx := f.arrays.index(x, y, facing)
	return Action(f.arrays.firstAction[idx]), true
}

// PathTo walks prev_state from the argmin-facing state at (x,y) back to the
// origin, emitting a cell whenever it differs from the previously emitted
// one, then reverses — so the result runs origin → (x,y), per spec.md §4.4.
func (f *Field) PathTo(x, y int) ([]grid.Cell, bool) {
	facing, ok := f.argminFacing(x, y)
	if !ok {
		return nil, false
	}
	idx := f.arrays.index(x, y, facing)

	var cells []grid.Cell
	for {
		cx, cy, _ := decode(idx, f.arrays.width)
		cell := grid.Cell{X: cx, Y: cy}
		if len(cells) == 0 || cells[len(cells)-1] != cell {
			cells = append(cells, cell)
		}
		if idx == f.arrays.index(f.origin.Cell.X, f.origin.Cell.Y, f.origin.Facing) {
			break
		}
		idx = f.arrays.prev[idx]
		if idx == Unreached {
			break
		}
	}

	// Reverse in place.
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells, true
}
