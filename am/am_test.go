package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home, work = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(work))
	t.Cleanup(func() {
		os.Chdir(oldWd)
		Reset()
	})
	Reset()
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), DefaultDirPermissions))
	require.NoError(t, os.WriteFile(path, []byte(content), DefaultFilePermissions))
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.True(t, cfg.Decode.Strict)
	assert.True(t, cfg.Decode.CheckEnvelope)
	assert.Equal(t, DefaultMaxSummaryKeys, cfg.Decode.MaxSummaryKeys)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, DefaultDebounceMS, cfg.Watch.DebounceMS)
	assert.Zero(t, cfg.Watch.MaxChecksPerMinute)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := Config{
		Decode: DecodeConfig{MaxSummaryKeys: 8},
		Watch:  WatchConfig{DebounceMS: 300},
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "lenient is valid", mutate: func(c *Config) { c.Decode.Strict = false }},
		{
			name:    "zero summary keys",
			mutate:  func(c *Config) { c.Decode.MaxSummaryKeys = 0 },
			wantErr: "decode.max_summary_keys must be > 0, got 0",
		},
		{name: "unlimited checks", mutate: func(c *Config) { c.Watch.MaxChecksPerMinute = 0 }},
		{
			name:    "negative check rate",
			mutate:  func(c *Config) { c.Watch.MaxChecksPerMinute = -1 },
			wantErr: "watch.max_checks_per_minute must be >= 0, got -1",
		},
		{
			name:    "negative debounce",
			mutate:  func(c *Config) { c.Watch.DebounceMS = -5 },
			wantErr: "watch.debounce_ms must be > 0, got -5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "am.toml")
	writeFile(t, path, "[decode]\nstrict = false\nmax_summary_keys = 3\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.Decode.Strict)
	assert.Equal(t, 3, cfg.Decode.MaxSummaryKeys)
	assert.True(t, cfg.Decode.CheckEnvelope, "unset keys keep defaults")

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	home, work := isolate(t)
	writeFile(t, filepath.Join(home, ".typedoc", "am.toml"), "[decode]\nstrict = false\nmax_summary_keys = 4\n\n[watch]\ndebounce_ms = 50\n")
	writeFile(t, filepath.Join(work, "am.toml"), "[decode]\nmax_summary_keys = 5\n")
	t.Setenv("TYPEDOC_WATCH_DEBOUNCE_MS", "75")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Decode.Strict, "user file")
	assert.Equal(t, 5, cfg.Decode.MaxSummaryKeys, "project file beats user file")
	assert.Equal(t, 75, cfg.Watch.DebounceMS, "environment beats files")
	assert.True(t, cfg.Decode.CheckEnvelope, "default")

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, again, "cached until Reset")
}

func TestFindProjectConfig_WalksUp(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, "am.toml"), "")
	sub := filepath.Join(work, "a", "b")
	require.NoError(t, os.MkdirAll(sub, DefaultDirPermissions))
	require.NoError(t, os.Chdir(sub))

	found := findProjectConfig()
	require.NotEmpty(t, found)
	assert.Equal(t, "am.toml", filepath.Base(found))
	assert.True(t, filepath.IsAbs(found))
}

func TestIntrospect(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, "am.toml"), "[log]\njson = true\n")
	t.Setenv("TYPEDOC_DECODE_STRICT", "false")

	info, err := Introspect()
	require.NoError(t, err)

	byKey := map[string]SettingInfo{}
	for _, s := range info.Settings {
		byKey[s.Key] = s
	}
	require.Len(t, byKey, 6)

	assert.Equal(t, SourceProject, byKey["log.json"].Source)
	assert.Contains(t, byKey["log.json"].SourcePath, "am.toml")
	assert.Equal(t, SourceEnvironment, byKey["decode.strict"].Source)
	assert.Equal(t, "TYPEDOC_DECODE_STRICT", byKey["decode.strict"].SourcePath)
	assert.Equal(t, SourceDefault, byKey["watch.debounce_ms"].Source)
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue("decode.strict", "false")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	v, err = ParseValue("watch.debounce_ms", "120")
	require.NoError(t, err)
	assert.Equal(t, 120, v)

	_, err = ParseValue("watch.debounce_ms", "soon")
	assert.Error(t, err)

	_, err = ParseValue("decode.color", "true")
	assert.ErrorContains(t, err, `unknown config key "decode.color"`)
}

func TestSetValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "am.toml")

	require.NoError(t, SetValue(path, "decode.strict", false))
	require.NoError(t, SetValue(path, "watch.debounce_ms", 90))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.Decode.Strict)
	assert.Equal(t, 90, cfg.Watch.DebounceMS)

	_, err = os.Stat(path + ".back1")
	assert.NoError(t, err, "second write backs up the first")
	assert.True(t, IsBackupFile(path+".back1"))
	assert.False(t, IsBackupFile(path))
}
