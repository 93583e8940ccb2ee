package am

import "github.com/teranos/typedoc/errors"

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Summary keys: 0 would hide every key, negative is meaningless
	if c.Decode.MaxSummaryKeys <= 0 {
		return errors.Newf("decode.max_summary_keys must be > 0, got %d", c.Decode.MaxSummaryKeys)
	}

	if c.Watch.DebounceMS <= 0 {
		return errors.Newf("watch.debounce_ms must be > 0, got %d", c.Watch.DebounceMS)
	}

	// Check rate: 0 = unlimited, negative = invalid
	if c.Watch.MaxChecksPerMinute < 0 {
		return errors.Newf("watch.max_checks_per_minute must be >= 0, got %d", c.Watch.MaxChecksPerMinute)
	}

	return nil
}
