package am

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("decode.strict", true)
	v.SetDefault("decode.check_envelope", true)
	v.SetDefault("decode.max_summary_keys", DefaultMaxSummaryKeys)

	v.SetDefault("log.json", false)

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)
	v.SetDefault("watch.max_checks_per_minute", 0)
}

// BindEnvVars binds every known key to its TYPEDOC_* variable, e.g.
// decode.strict to TYPEDOC_DECODE_STRICT.
func BindEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		v.BindEnv(key, EnvVar(key))
	}
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Decode: {Strict: %t, CheckEnvelope: %t, MaxSummaryKeys: %d}, Log: {JSON: %t}, Watch: {DebounceMS: %d, MaxChecksPerMinute: %d}}",
		c.Decode.Strict, c.Decode.CheckEnvelope, c.Decode.MaxSummaryKeys, c.Log.JSON, c.Watch.DebounceMS, c.Watch.MaxChecksPerMinute)
}
