package version

import (
	"fmt"
	"runtime"

	"github.com/teranos/typedoc/typedoc"
)

// Build information. These variables are set at build time via ldflags.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash" yaml:"commit_hash" toml:"commit_hash"`
	BuildTime  string `json:"build_time" yaml:"build_time" toml:"build_time"`
	Version    string `json:"version" yaml:"version" toml:"version"`
	GoVersion  string `json:"go_version" yaml:"go_version" toml:"go_version"`
	Platform   string `json:"platform" yaml:"platform" toml:"platform"`
	Schema     Schema `json:"schema" yaml:"schema" toml:"schema"`
}

// Schema describes the TypeDoc JSON this build decodes.
type Schema struct {
	ReflectionKinds  int      `json:"reflection_kinds" yaml:"reflection_kinds" toml:"reflection_kinds"`
	TypeTags         []string `json:"type_tags" yaml:"type_tags" toml:"type_tags"`
	UnsupportedTypes []string `json:"unsupported_types" yaml:"unsupported_types" toml:"unsupported_types"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Schema: Schema{
			ReflectionKinds:  len(typedoc.Kinds()),
			TypeTags:         typedoc.SupportedTypes(),
			UnsupportedTypes: typedoc.UnsupportedTypes(),
		},
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	if i.Version != "dev" {
		return fmt.Sprintf("typedoc %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
	}
	return fmt.Sprintf("typedoc dev (commit %s, built %s)", i.CommitHash, i.BuildTime)
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
