// Package grid holds the immutable walkable-cell snapshot of the maze, per
// spec.md §4.1. A Snapshot is never mutated in place; Model publishes a new
// one atomically on every maze update, the way the teacher's board.Position
// is replaced wholesale rather than patched (internal/board/position.go in
// the teacher tree, before it was dropped — see DESIGN.md).
package grid

import (
	"fmt"
	"sync/atomic"

	"github.com/BraianBarraza/tarnished-maze-bot/internal/mazeerr"
)

// isBlockedRune implements the fixed block-character set from spec.md §4.1.
func isBlockedRune(r rune, strict bool) bool {
	switch r {
	case '#', 'X', 'W', '?', 'O', 'o', '1', '█', '■':
		return true
	case '.':
		return false
	default:
		return strict
	}
}

// Snapshot is an immutable walkable-cell grid of size Width*Height, stored
// row-major for cache locality per spec.md §3.
type Snapshot struct {
	Width, Height int
	walkable      []bool
}

// InBounds reports whether (x,y) lies within the snapshot.
func (s *Snapshot) InBounds(x, y int) bool {
	return s != nil && x >= 0 && y >= 0 && x < s.Width && y < s.Height
}

// Walkable returns false on any out-of-bounds query, per spec.md §4.1.
func (s *Snapshot) Walkable(x, y int) bool {
	if !s.InBounds(x, y) {
		return false
	}
	return s.walkable[s.Index(x, y)]
}

// Index returns the flat row-major index of (x,y). Caller must ensure
// InBounds(x,y) first; Index does not itself bounds-check.
func (s *Snapshot) Index(x, y int) int {
	return y*s.Width + x
}

// Parse builds a Snapshot from textual maze rows, one row per y, top-down,
// following the per-cell stride detection rule of spec.md §4.1:
//
//	s = 1                  if row length == W
//	s = 2                  if row length in {2W, 2W-1}
//	s = row length / W     if row length is a multiple of W
//	s = 1 (clamped reads)  otherwise
func Parse(width, height int, rows []string, strict bool) (*Snapshot, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: non-positive dimensions %dx%d", mazeerr.ErrInvalidInput, width, height)
	}
	if len(rows) != height {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", mazeerr.ErrInvalidInput, height, len(rows))
	}

	walkable := make([]bool, width*height)
	for y, row := range rows {
		stride := rowStride(len(row), width)
		for x := 0; x < width; x++ {
			idx := x * stride
			if idx >= len(row) {
				idx = len(row) - 1
			}
			if idx < 0 {
				// Empty row: treat every cell as blocked.
				continue
			}
			r := rune(row[idx])
			if !isBlockedRune(r, strict) {
				walkable[y*width+x] = true
			}
		}
	}

	return &Snapshot{Width: width, Height: height, walkable: walkable}, nil
}

func rowStride(rowLen, width int) int {
	switch {
	case rowLen == width:
		return 1
	case rowLen == 2*width || rowLen == 2*width-1:
		return 2
	case width > 0 && rowLen%width == 0:
		return rowLen / width
	default:
		return 1
	}
}

// Model is the mutable holder for the current Snapshot: readers capture a
// reference once per tick and see a consistent view for its duration, even
// if Update races in from the maze event callback. Grounded on the atomic
// swap-on-update discipline spec.md §5 requires ("Grid snapshot: exchanged
// by atomic pointer/handle swap").
type Model struct {
	current atomic.Pointer[Snapshot]
}

// NewModel returns a Model with no snapshot yet (Current returns nil).
func NewModel() *Model {
	return &Model{}
}

// Update parses rows into a new Snapshot and atomically publishes it.
// Malformed input is reported but never panics; callers are expected to log
// at debug level and drop it per spec.md §7 (InvalidInput).
func (m *Model) Update(width, height int, rows []string, strict bool) error {
	snap, err := Parse(width, height, rows, strict)
	if err != nil {
		return err
	}
	m.current.Store(snap)
	return nil
}

// Current returns the most recently published Snapshot, or nil if Update
// has never succeeded.
func (m *Model) Current() *Snapshot {
	return m.current.Load()
}

// Ready reports whether a snapshot has been published at least once.
func (m *Model) Ready() bool {
	return m.current.Load() != nil
}
