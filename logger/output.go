package logger

// OutputCategory defines a category of CLI output that can be enabled/disabled.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults  OutputCategory = iota // Written files, check verdicts
	OutputErrors                         // Errors with hints
	OutputWarnings                       // Generation warnings (unsupported styles, dropped regions)

	// Level 1 (-v)
	OutputProgress  // Progress bar per top-level window
	OutputUnchanged // Files left untouched because content did not change
	OutputConfig    // Effective preferences and project options

	// Level 2 (-vv)
	OutputMerge    // User region preservation decisions
	OutputPlanning // Output planner decisions

	// Level 3 (-vvv)
	OutputInternalOp // Per-widget rendering

	// Level 4 (-vvvv)
	OutputDataDump // Full generated fragments
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:  VerbosityUser,
	OutputErrors:   VerbosityUser,
	OutputWarnings: VerbosityUser,

	OutputProgress:  VerbosityInfo,
	OutputUnchanged: VerbosityInfo,
	OutputConfig:    VerbosityInfo,

	OutputMerge:    VerbosityDebug,
	OutputPlanning: VerbosityDebug,

	OutputInternalOp: VerbosityTrace,

	OutputDataDump: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:    "results",
	OutputErrors:     "errors",
	OutputWarnings:   "warnings",
	OutputProgress:   "progress",
	OutputUnchanged:  "unchanged",
	OutputConfig:     "config",
	OutputMerge:      "merge",
	OutputPlanning:   "planning",
	OutputInternalOp: "internal",
	OutputDataDump:   "data-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
