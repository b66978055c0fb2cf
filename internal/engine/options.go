package engine

import "fmt"

// Mode selects the fuzzy matcher's strictness.
type Mode string

const (
	ModeStrict   Mode = "strict"
	ModeStandard Mode = "standard"
	ModeLoose    Mode = "loose"
)

// thresholds bundles one mode's acceptance gates and confidence clamp band.
type thresholds struct {
	MaxEdits int
	MinSim   float64
	Base     int
	Floor    int
}

var modeThresholds = map[Mode]thresholds{
	ModeStrict:   {MaxEdits: 1, MinSim: 0.90, Base: 96, Floor: 70},
	ModeStandard: {MaxEdits: 2, MinSim: 0.85, Base: 95, Floor: 60},
	ModeLoose:    {MaxEdits: 3, MinSim: 0.80, Base: 94, Floor: 55},
}

// ParseMode validates a mode name from config or the CLI.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStrict, ModeStandard, ModeLoose:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown fuzzy mode %q (want strict, standard, or loose)", s)
}

// Options configures one matching run. The zero value disables fuzzy
// matching; use DefaultOptions for the usual setup.
type Options struct {
	// FuzzyEnabled turns on the edit-distance fallback stage.
	FuzzyEnabled bool
	// Mode picks the fuzzy thresholds; ignored when fuzzy is disabled.
	Mode Mode
	// Workers sets the matching-loop parallelism. Values below 2 run the
	// loop inline. Result order is always original CRM row order.
	Workers int
	// Debug enables per-record trace logging.
	Debug bool
}

// DefaultOptions is fuzzy-on in standard mode, single worker.
func DefaultOptions() Options {
	return Options{FuzzyEnabled: true, Mode: ModeStandard, Workers: 1}
}

func (o Options) thresholds() thresholds {
	if t, ok := modeThresholds[o.Mode]; ok {
		return t
	}
	return modeThresholds[ModeStandard]
}
