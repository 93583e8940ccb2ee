// Package am loads typedoc configuration from TOML files and TYPEDOC_*
// environment variables.
package am

// Config represents the typedoc configuration
type Config struct {
	Decode DecodeConfig `mapstructure:"decode" json:"decode" yaml:"decode" toml:"decode"`
	Log    LogConfig    `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
	Watch  WatchConfig  `mapstructure:"watch" json:"watch" yaml:"watch" toml:"watch"`
}

// DecodeConfig configures how documents are decoded
type DecodeConfig struct {
	// Reject undeclared fields (default: true)
	Strict bool `mapstructure:"strict" json:"strict" yaml:"strict" toml:"strict"`
	// Validate the root against the project schema (default: true)
	CheckEnvelope bool `mapstructure:"check_envelope" json:"check_envelope" yaml:"check_envelope" toml:"check_envelope"`
	// Mapping keys listed in error summaries (default: 8)
	MaxSummaryKeys int `mapstructure:"max_summary_keys" json:"max_summary_keys" yaml:"max_summary_keys" toml:"max_summary_keys"`
}

// LogConfig configures log output
type LogConfig struct {
	JSON bool `mapstructure:"json" json:"json" yaml:"json" toml:"json"` // JSON lines instead of console encoding
}

// WatchConfig configures the watch command
type WatchConfig struct {
	// Quiet period before re-checking (default: 300)
	DebounceMS int `mapstructure:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms" toml:"debounce_ms"`
	// Re-checks allowed per minute, 0 = unlimited
	MaxChecksPerMinute int `mapstructure:"max_checks_per_minute" json:"max_checks_per_minute" yaml:"max_checks_per_minute" toml:"max_checks_per_minute"`
}

// Default values
const (
	DefaultMaxSummaryKeys = 8
	DefaultDebounceMS     = 300
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// ConfigFileName is the file looked up in ~/.typedoc and the project tree
const ConfigFileName = "am.toml"
