package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Decode summary, errors with field path and hints
//	1 (-v)      - + Per-file progress, kind counts, config source
//	2 (-vv)     - + Timing, dangling cross references, config values
//	3 (-vvv)    - + Full tree outline

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Decode summary, check status
	OutputErrors                           // Errors with field path and hints
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress   // Per-file progress in check/watch
	OutputKindCounts // Node counts per reflection kind
	OutputConfig     // Which config file was loaded

	// Level 2 (-vv) - Detailed
	OutputTiming   // Decode duration
	OutputDangling // Every unresolved cross reference, not just the count

	// Level 3 (-vvv) - Debug
	OutputTreeDump // Full tree outline regardless of --depth
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress:   VerbosityInfo,
	OutputKindCounts: VerbosityInfo,
	OutputConfig:     VerbosityInfo,

	OutputTiming:   VerbosityDebug,
	OutputDangling: VerbosityDebug,

	OutputTreeDump: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputResults:    "results",
	OutputErrors:     "errors",
	OutputUserStatus: "status",
	OutputProgress:   "progress",
	OutputKindCounts: "kind-counts",
	OutputConfig:     "config",
	OutputTiming:     "timing",
	OutputDangling:   "dangling",
	OutputTreeDump:   "tree-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
