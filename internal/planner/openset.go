package planner

import "container/heap"

// pqItem is one entry in the best-first open set: a node reference plus the
// optimistic bound it was pushed with.
type pqItem struct {
	nodeIdx  int32
	priority float64
	stepEdge bool // true if the edge into this node was a StepForward
	seq      int64
}

// openSet is a max-heap on priority, breaking ties toward step edges over
// turn edges (a step makes tangible progress, a turn only changes facing),
// then toward insertion order for determinism.
type openSet []pqItem

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	if o[i].priority != o[j].priority {
		return o[i].priority > o[j].priority
	}
	if o[i].stepEdge != o[j].stepEdge {
		return o[i].stepEdge
	}
	return o[i].seq < o[j].seq
}

func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openSet) Push(x any) {
	*o = append(*o, x.(pqItem))
}

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	*o = old[:n-1]
	return item
}

var _ heap.Interface = (*openSet)(nil)

// optimisticRemaining upper-bounds the additional reward obtainable within
// remainingMoves actions: the sum of the largest min(remainingMoves,
// |uncollected|) candidate scores not yet in mask, per spec.md §4.6. It
// ignores travel cost entirely, which is what makes it an admissible
// (never-underestimating) bound for branch-and-bound pruning.
func optimisticRemaining(mask uint64, remainingMoves int32, candidates []Candidate, orderDesc []int) float64 {
	if remainingMoves <= 0 {
		return 0
	}
	var sum float64
	var taken int32
	for _, idx := range orderDesc {
		if taken >= remainingMoves {
			break
		}
		if mask&(1<<uint(idx)) != 0 {
			continue
		}
		sum += float64(candidates[idx].Score)
		taken++
	}
	return sum
}
