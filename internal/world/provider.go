package world

import (
	"log"
	"sync/atomic"

	"github.com/BraianBarraza/tarnished-maze-bot/internal/agents"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/baits"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/grid"
)

// Provider is the typed read side of the world: what the Decision
// Coordinator pulls from at tick start, per spec.md §5's "readers take a
// point-in-time snapshot at tick start."
type Provider interface {
	Grid() *grid.Model
	Baits() *baits.Registry
	Agents() *agents.Registry
	Paused() bool
}

// Dispatcher is the typed write side: the event callbacks of spec.md §6,
// mutating the registries a Provider exposes. A single Dispatcher value
// satisfies both Provider and the callback surface, so it can be supplied
// whole to the coordinator at construction.
type Dispatcher struct {
	grid   *grid.Model
	baits  *baits.Registry
	agents *agents.Registry
	paused atomic.Bool

	// Debug gates verbose per-event logging, mirroring the teacher's
	// board.DebugMoveValidation convention.
	Debug bool
}

// NewDispatcher returns a Dispatcher with fresh, empty registries.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		grid:   grid.NewModel(),
		baits:  baits.New(),
		agents: agents.New(),
	}
}

func (d *Dispatcher) Grid() *grid.Model          { return d.grid }
func (d *Dispatcher) Baits() *baits.Registry      { return d.baits }
func (d *Dispatcher) Agents() *agents.Registry    { return d.agents }
func (d *Dispatcher) Paused() bool                { return d.paused.Load() }

// OnMaze handles a maze update. Malformed input is dropped per spec.md §7
// (InvalidInput): logged at debug level, never propagated.
func (d *Dispatcher) OnMaze(width, height int, rows []string) {
	if err := d.grid.Update(width, height, rows, false); err != nil {
		if d.Debug {
			log.Printf("[World] dropped invalid maze update: %v", err)
		}
		return
	}
	d.baits.ObserveMazeBounds(width, height)
}

// OnBaitAppeared handles a bait appear event.
func (d *Dispatcher) OnBaitAppeared(b baits.Bait) {
	if err := d.baits.Insert(b); err != nil {
		if d.Debug {
			log.Printf("[World] dropped invalid bait: %v", err)
		}
	}
}

// OnBaitVanished handles a bait vanish event.
func (d *Dispatcher) OnBaitVanished(cell grid.Cell) {
	d.baits.RemoveAt(cell.X, cell.Y)
}

// OnSelfLogin handles a self login event, latching own-id.
func (d *Dispatcher) OnSelfLogin(s agents.Snapshot) {
	d.agents.SetSelf(s.ID)
	d.agents.Update(s)
}

// OnSelfUpdate handles a self position/facing update.
func (d *Dispatcher) OnSelfUpdate(s agents.Snapshot) {
	d.agents.Update(s)
}

// OnSelfVanish handles self disappearing (e.g. a life lost).
func (d *Dispatcher) OnSelfVanish() {
	d.agents.InvalidateSelf()
}

// AgentEvent carries the teleport/cause metadata spec.md §6 attaches to
// on_agent, beyond the plain Snapshot update.
type AgentEvent struct {
	Kind         agents.EventKind
	OldPosition  grid.Cell
	Snapshot     agents.Snapshot
	TeleportKind string // present only when Kind == agents.Teleport
	CauseAgentID string // present only when attributable (e.g. a push)
}

// OnAgent handles any other agent's lifecycle/movement event.
func (d *Dispatcher) OnAgent(ev AgentEvent) {
	switch ev.Kind {
	case agents.Vanish:
		d.agents.Remove(ev.Snapshot.ID)
	default:
		d.agents.Update(ev.Snapshot)
	}
}

// OnPauseToggle handles the external pause toggle.
func (d *Dispatcher) OnPauseToggle(paused bool) {
	d.paused.Store(paused)
}

var _ Provider = (*Dispatcher)(nil)
