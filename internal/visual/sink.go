// Package visual implements the visualization sink contract of spec.md §6:
// set_target, clear_target, set_planned_path. The graphical overlay
// renderer itself is an external collaborator (spec.md §1 Non-goals); this
// package only produces the data such a renderer would consume.
package visual

import (
	"sync"

	"github.com/BraianBarraza/tarnished-maze-bot/internal/grid"
)

// Target describes the currently reported target cell and its label.
type Target struct {
	Cell  grid.Cell
	Label string
}

// Sink is the contract the Decision Coordinator writes visualization data
// to each tick.
type Sink interface {
	SetTarget(cell grid.Cell, label string)
	ClearTarget()
	SetPlannedPath(path []grid.Cell)
}

// MemorySink is an in-process Sink: the coordinator writes to it, and an
// external renderer (out of scope here) would read from it.
type MemorySink struct {
	mu     sync.RWMutex
	target *Target
	path   []grid.Cell
}

// NewMemorySink returns an empty Sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) SetTarget(cell grid.Cell, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = &Target{Cell: cell, Label: label}
}

func (s *MemorySink) ClearTarget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = nil
}

func (s *MemorySink) SetPlannedPath(path []grid.Cell) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]grid.Cell, len(path))
	copy(cp, path)
	s.path = cp
}

// CurrentTarget returns the last reported target, if any.
func (s *MemorySink) CurrentTarget() (Target, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.target == nil {
		return Target{}, false
	}
	return *s.target, true
}

// CurrentPath returns a copy of the last reported planned path.
func (s *MemorySink) CurrentPath() []grid.Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]grid.Cell, len(s.path))
	copy(cp, s.path)
	return cp
}

var _ Sink = (*MemorySink)(nil)
