package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BraianBarraza/tarnished-maze-bot/internal/agents"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/baits"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/grid"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/world"
)

// baitFixture and agentFixture are the YAML-facing shapes; Apply converts
// them into baits.Bait/agents.Snapshot before the tick loop starts. An
// unknown facing string makes Apply return an error; an unrecognized bait
// kind is accepted as-is and keeps the fixture's own score.
type baitFixture struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Score int    `yaml:"score"`
	Kind  string `yaml:"kind"`
}

type agentFixture struct {
	ID     string `yaml:"id"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Facing string `yaml:"facing"`
}

// Scenario is the YAML scenario fixture format: a maze, an initial bait and
// agent population, and a tick count to drive the coordinator through.
// This is the demo/manual-test harness spec.md §6 implies but does not name
// (see SPEC_FULL.md §3.2): no live transport exists in this repo's scope,
// so this is how the full tick path gets exercised end to end.
type Scenario struct {
	Width  int            `yaml:"width"`
	Height int            `yaml:"height"`
	Rows   []string       `yaml:"rows"`
	Baits  []baitFixture  `yaml:"baits"`
	Self   agentFixture   `yaml:"self"`
	Agents []agentFixture `yaml:"agents"`
	Ticks  int            `yaml:"ticks"`
	Preset string         `yaml:"preset"`
}

// LoadScenario reads and parses a scenario fixture from path.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &s, nil
}

func parseFacing(s string) (grid.Facing, error) {
	switch s {
	case "NORTH", "":
		return grid.North, nil
	case "EAST":
		return grid.East, nil
	case "SOUTH":
		return grid.South, nil
	case "WEST":
		return grid.West, nil
	default:
		return grid.North, fmt.Errorf("unknown facing %q", s)
	}
}

// Apply feeds the scenario into d through the exact same callback surface a
// live transport would use (spec.md §6's on_maze/on_bait_appeared/on_agent),
// so the coordinator exercises its real input path rather than a shortcut.
func (s *Scenario) Apply(d *world.Dispatcher) error {
	d.OnMaze(s.Width, s.Height, s.Rows)

	for _, b := range s.Baits {
		kind := baits.Kind(b.Kind)
		score := b.Score
		if canonical, ok := baits.CanonicalScore(kind); ok {
			score = canonical
		}
		d.OnBaitAppeared(baits.Bait{Cell: grid.Cell{X: b.X, Y: b.Y}, Score: score, Kind: kind})
	}

	selfFacing, err := parseFacing(s.Self.Facing)
	if err != nil {
		return fmt.Errorf("self: %w", err)
	}
	selfID := s.Self.ID
	if selfID == "" {
		selfID = "self"
	}
	d.OnSelfLogin(agents.Snapshot{ID: selfID, Cell: grid.Cell{X: s.Self.X, Y: s.Self.Y}, Facing: selfFacing})

	for _, a := range s.Agents {
		facing, err := parseFacing(a.Facing)
		if err != nil {
			return fmt.Errorf("agent %s: %w", a.ID, err)
		}
		d.OnAgent(world.AgentEvent{
			Kind:     agents.Appear,
			Snapshot: agents.Snapshot{ID: a.ID, Cell: grid.Cell{X: a.X, Y: a.Y}, Facing: facing},
		})
	}

	return nil
}
