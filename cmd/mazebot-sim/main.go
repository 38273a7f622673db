// Command mazebot-sim drives the Decision Coordinator through a scripted
// YAML scenario, printing the action chosen each tick. It exercises the
// same world.Provider/Dispatcher path a live transport would use, without
// needing one — grounded on cmd/chessplay-uci/main.go's shape (flag parse,
// construct the core, run one blocking loop).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/BraianBarraza/tarnished-maze-bot/internal/config"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/coordinator"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/visual"
	"github.com/BraianBarraza/tarnished-maze-bot/internal/world"
)

var (
	scenarioPath = flag.String("scenario", "", "path to a YAML scenario fixture")
	presetFlag   = flag.String("preset", "", "override the scenario's preset (CAUTIOUS, BALANCED, AGGRESSIVE)")
	debug        = flag.Bool("debug", false, "log coordinator diagnostics")
)

func main() {
	flag.Parse()
	if *scenarioPath == "" {
		log.Fatal("mazebot-sim: -scenario is required")
	}

	scenario, err := LoadScenario(*scenarioPath)
	if err != nil {
		log.Fatalf("mazebot-sim: %v", err)
	}

	d := world.NewDispatcher()
	d.Debug = *debug
	if err := scenario.Apply(d); err != nil {
		log.Fatalf("mazebot-sim: applying scenario: %v", err)
	}

	cfg := resolvePreset(scenario.Preset, *presetFlag)
	sink := visual.NewMemorySink()
	coord := coordinator.New(cfg, sink)
	coord.Debug = *debug

	ticks := scenario.Ticks
	if ticks <= 0 {
		ticks = 1
	}

	for t := 0; t < ticks; t++ {
		action := coord.NextMove(d)
		fmt.Fprintf(os.Stdout, "tick %d: state=%s action=%s\n", t, coord.LastState(), action)
		if tgt, ok := sink.CurrentTarget(); ok {
			fmt.Fprintf(os.Stdout, "         target=%s at (%d,%d)\n", tgt.Label, tgt.Cell.X, tgt.Cell.Y)
		}
	}
}

func resolvePreset(scenarioPreset, flagPreset string) config.Config {
	name := flagPreset
	if name == "" {
		name = scenarioPreset
	}
	if preset, ok := config.Presets[config.Preset(name)]; ok {
		return preset
	}
	return config.Default()
}
