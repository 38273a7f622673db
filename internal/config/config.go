// Package config holds the enumerated tunables of spec.md §6. The teacher
// expresses its own tunables as named-preset tables over Go structs
// (internal/engine/engine.go's DifficultySettings) rather than a config
// file loader; this package follows that convention (see SPEC_FULL.md §2.3).
package config

import "time"

// Config is the full set of per-tick knobs spec.md §6 enumerates.
type Config struct {
	// MaxDepth is the ticks of lookahead the planner considers.
	MaxDepth int
	// MaxExpansions bounds the planner's node budget.
	MaxExpansions int
	// CandidateBaits caps the number of ranked candidates (K <= 64).
	CandidateBaits int
	// MoveCost is the utility charged per action (rotation or step).
	MoveCost float64
	// TrapStepPenalty is the additional utility charged per trap cell
	// entered during the trap-permitted phase of planning.
	TrapStepPenalty float64
	// CommitWindowTicks is the target-stabilizer commit window length.
	CommitWindowTicks int
	// SwitchMarginPercent is the minimum relative utility improvement
	// (e.g. 20 means 20%) required to switch a committed target early.
	SwitchMarginPercent float64
	// PlannerWallClockBudget bounds planner wall-clock time per tick.
	PlannerWallClockBudget time.Duration
	// MaxOpponentsConsidered bounds the Contest Predictor's sampling of
	// geometrically-nearest opponents (spec.md §4.6).
	MaxOpponentsConsidered int
	// StrictMazeParsing names strict-mode cell classification (any non-'.'
	// character is blocked). No code in this module reads it:
	// world.Dispatcher.OnMaze always parses with strict mode off, and
	// grid.Parse's strict argument is the only switch for it.
	StrictMazeParsing bool
}

// MaxCandidateBaits is the hard ceiling on candidate set size, per spec.md
// §3's planner node bitmask ("limit ≤ 64 candidates per plan").
const MaxCandidateBaits = 64

// Default returns the spec.md §6 default configuration.
func Default() Config {
	return Config{
		MaxDepth:               40,
		MaxExpansions:          6000,
		CandidateBaits:         24,
		MoveCost:               6.0,
		TrapStepPenalty:        250.0,
		CommitWindowTicks:      20,
		SwitchMarginPercent:    22.5,
		PlannerWallClockBudget: 8 * time.Millisecond,
		MaxOpponentsConsidered: 8,
		StrictMazeParsing:      false,
	}
}

// Clamp enforces the hard invariants the rest of the core relies on (K <=
// 64, a positive budget, etc.), in case a caller hand-built a Config.
func (c Config) Clamp() Config {
	if c.CandidateBaits > MaxCandidateBaits {
		c.CandidateBaits = MaxCandidateBaits
	}
	if c.CandidateBaits < 1 {
		c.CandidateBaits = 1
	}
	if c.MaxExpansions < 1 {
		c.MaxExpansions = 1
	}
	if c.MaxDepth < 1 {
		c.MaxDepth = 1
	}
	if c.PlannerWallClockBudget <= 0 {
		c.PlannerWallClockBudget = time.Millisecond
	}
	if c.SwitchMarginPercent < 0 {
		c.SwitchMarginPercent = 0
	}
	if c.MaxOpponentsConsidered < 0 {
		c.MaxOpponentsConsidered = 0
	}
	return c
}

// Preset names a named parameter bundle, mirroring the teacher's
// Easy/Medium/Hard Difficulty → SearchLimits table.
type Preset string

const (
	Cautious   Preset = "CAUTIOUS"
	Balanced   Preset = "BALANCED"
	Aggressive Preset = "AGGRESSIVE"
)

// Presets maps named presets to a Config derived from Default, scaling the
// trap penalty, switch margin, and candidate breadth per SPEC_FULL.md §4.
var Presets = map[Preset]Config{
	Cautious: func() Config {
		c := Default()
		c.TrapStepPenalty *= 1.5
		c.SwitchMarginPercent = 30
		c.CandidateBaits = 16
		return c.Clamp()
	}(),
	Balanced: Default().Clamp(),
	Aggressive: func() Config {
		c := Default()
		c.TrapStepPenalty *= 0.6
		c.SwitchMarginPercent = 15
		c.CandidateBaits = MaxCandidateBaits
		return c.Clamp()
	}(),
}
