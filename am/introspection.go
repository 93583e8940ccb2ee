package am

import (
	"os"
	"sort"

	"github.com/teranos/typedoc/errors"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceUser        ConfigSource = "user"        // ~/.typedoc/am.toml
	SourceProject     ConfigSource = "project"     // project am.toml
	SourceEnvironment ConfigSource = "environment" // TYPEDOC_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource
	Path   string // File path or environment variable name
}

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key" yaml:"key" toml:"key"`
	Value      any          `json:"value" yaml:"value" toml:"value"`
	Source     ConfigSource `json:"source" yaml:"source" toml:"source"`
	SourcePath string       `json:"source_path,omitempty" yaml:"source_path,omitempty" toml:"source_path,omitempty"`
}

// Introspection lists every effective setting with its origin
type Introspection struct {
	Settings []SettingInfo `json:"settings" yaml:"settings" toml:"settings"`
}

// Introspect returns the effective configuration with the source of each key.
func Introspect() (*Introspection, error) {
	if _, err := Load(); err != nil {
		return nil, errors.Wrap(err, "failed to load config for introspection")
	}
	v := GetViper()

	keys := v.AllKeys()
	sort.Strings(keys)

	out := &Introspection{Settings: make([]SettingInfo, 0, len(keys))}
	for _, key := range keys {
		info := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := ConfigSources[key]; ok {
			info = si
		}
		if _, ok := os.LookupEnv(EnvVar(key)); ok {
			info = SourceInfo{Source: SourceEnvironment, Path: EnvVar(key)}
		}
		out.Settings = append(out.Settings, SettingInfo{
			Key:        key,
			Value:      v.Get(key),
			Source:     info.Source,
			SourcePath: info.Path,
		})
	}
	return out, nil
}
