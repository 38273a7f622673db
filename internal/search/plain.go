package search

import "github.com/BraianBarraza/tarnished-maze-bot/internal/grid"

// PlainArrays is the cheap step-only BFS frontier of spec.md §4.5: plain
// W*H distance, no facing, used as a candidate filter ahead of the much
// more expensive Oriented Search / Reward Planner passes.
type PlainArrays struct {
	width, height int
	dist          []int32
}

// NewPlainArrays allocates a reusable distance array for a width x height
// grid.
func NewPlainArrays(width, height int) *PlainArrays {
	a := &PlainArrays{}
	a.resize(width, height)
	return a
}

func (a *PlainArrays) resize(width, height int) {
	size := width * height
	a.width, a.height = width, height
	if cap(a.dist) < size {
		a.dist = make([]int32, size)
	} else {
		a.dist = a.dist[:size]
	}
}

func (a *PlainArrays) reset(width, height int) {
	if a.width != width || a.height != height || len(a.dist) != width*height {
		a.resize(width, height)
	}
	for i := range a.dist {
		a.dist[i] = Unreached
	}
}

var plainDeltas = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// PlainField is the result of one plain-grid BFS.
type PlainField struct {
	arrays *PlainArrays
}

// RunPlain performs an unweighted step-only BFS from origin over admissible
// cells.
func RunPlain(a *PlainArrays, width, height int, origin grid.Cell, admissible Admissible) *PlainField {
	a.reset(width, height)

	idx := func(x, y int) int32 { return int32(y*width + x) }

	originIdx := idx(origin.X, origin.Y)
	a.dist[originIdx] = 0

	queue := make([]int32, 0, width*height)
	queue = append(queue, originIdx)

	for head := 0; head < len(queue); head++ {
		curIdx := queue[head]
		cx, cy := int(curIdx)%width, int(curIdx)/width

		for _, d := range plainDeltas {
			nx, ny := cx+d[0], cy+d[1]
			if !admissible(nx, ny) {
				continue
			}
			nIdx := idx(nx, ny)
			if a.dist[nIdx] != Unreached {
				continue
			}
			a.dist[nIdx] = a.dist[curIdx] + 1
			queue = append(queue, nIdx)
		}
	}

	return &PlainField{arrays: a}
}

// DistanceTo returns the minimum number of steps to (x,y), or Unreached.
func (f *PlainField) DistanceTo(x, y int) int32 {
	if x < 0 || y < 0 || x >= f.arrays.width || y >= f.arrays.height {
		return Unreached
	}
	return f.arrays.dist[y*f.arrays.width+x]
}
