package pipeline

import (
	"github.com/tiiuae/lerobot-edge/internal/config"
)

// Stage is one of the three ordered pipeline phases.
type Stage string

const (
	Conversion Stage = "conversion"
	Merge      Stage = "merge"
	Upload     Stage = "upload"
)

// order is the fixed stage sequence. A run always executes a suffix of it:
// no stage runs out of order, none runs twice.
var order = []Stage{Conversion, Merge, Upload}

// Plan maps the configured start stage to the suffix of the stage sequence
// to execute. An unknown start stage yields an empty plan.
func Plan(start config.StartStage) []Stage {
	for i, st := range order {
		if string(st) == string(start) {
			return append([]Stage(nil), order[i:]...)
		}
	}
	return nil
}

// selected reports whether st is part of the plan.
func selected(plan []Stage, st Stage) bool {
	for _, s := range plan {
		if s == st {
			return true
		}
	}
	return false
}
