package commands

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teranos/typedoc/am"
	"github.com/teranos/typedoc/errors"
	"github.com/teranos/typedoc/input"
	"github.com/teranos/typedoc/logger"
	"github.com/teranos/typedoc/typedoc"
	"github.com/teranos/typedoc/typedoc/xref"
)

// runOptions are the resolved settings of one decode run.
type runOptions struct {
	Strict         bool
	CheckEnvelope  bool
	MaxSummaryKeys int
}

// loadConfig loads the configuration and rejects invalid settings.
func loadConfig() (*am.Config, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "invalid configuration"),
			"run 'typedoc am where' to see which source set each value")
	}
	return cfg, nil
}

// optionsFromConfig applies command flags over the loaded configuration.
func optionsFromConfig(cmd *cobra.Command, cfg *am.Config) runOptions {
	opts := runOptions{
		Strict:         cfg.Decode.Strict,
		CheckEnvelope:  cfg.Decode.CheckEnvelope,
		MaxSummaryKeys: cfg.Decode.MaxSummaryKeys,
	}
	if cmd != nil {
		if lenient, _ := cmd.Flags().GetBool("lenient"); lenient {
			opts.Strict = false
		}
		if skip, _ := cmd.Flags().GetBool("no-envelope"); skip {
			opts.CheckEnvelope = false
		}
	}
	return opts
}

// Summary describes a decoded document.
type Summary struct {
	RunID      string         `json:"run_id" yaml:"run_id" toml:"run_id"`
	File       string         `json:"file" yaml:"file" toml:"file"`
	Root       string         `json:"root" yaml:"root" toml:"root"`
	Nodes      int            `json:"nodes" yaml:"nodes" toml:"nodes"`
	Kinds      map[string]int `json:"kinds" yaml:"kinds" toml:"kinds"`
	Edges      int            `json:"edges" yaml:"edges" toml:"edges"`
	Dangling   []DanglingRef  `json:"dangling" yaml:"dangling" toml:"dangling"`
	Duplicates []int          `json:"duplicate_ids" yaml:"duplicate_ids" toml:"duplicate_ids"`
	DurationMS int64          `json:"duration_ms" yaml:"duration_ms" toml:"duration_ms"`
}

// DanglingRef is a cross reference whose target is not in the document.
type DanglingRef struct {
	From int    `json:"from" yaml:"from" toml:"from"`
	Kind string `json:"kind" yaml:"kind" toml:"kind"`
	To   int    `json:"to" yaml:"to" toml:"to"`
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
}

// result is a decoded document and its index.
type result struct {
	Project *typedoc.ContainerReflection
	Index   *xref.Index
	Summary Summary
}

// decodeFile reads, decodes and indexes one document. Each call is a run
// with its own id, carried on ctx for logging.
func decodeFile(ctx context.Context, path string, opts runOptions) (*result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	runID := uuid.New().String()
	ctx = logger.WithFile(logger.WithRunID(ctx, runID), path)
	log := logger.LoggerFromContext(ctx).Named("decode")

	start := time.Now()
	raw, err := input.ReadFile(path, opts.CheckEnvelope)
	if err != nil {
		logFailure(log, err)
		return nil, err
	}

	dec := typedoc.NewDecoder(typedoc.Options{
		Lenient:        !opts.Strict,
		MaxSummaryKeys: opts.MaxSummaryKeys,
		Logger:         log,
	})
	project, err := dec.DecodeProject(raw)
	if err != nil {
		logFailure(log, err)
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}

	ix := xref.Build(project)
	elapsed := time.Since(start)

	s := Summary{
		RunID:      runID,
		File:       path,
		Root:       project.Name,
		Nodes:      ix.Len(),
		Kinds:      make(map[string]int),
		Edges:      len(ix.Edges()),
		Dangling:   []DanglingRef{},
		Duplicates: ix.Duplicates(),
		DurationMS: elapsed.Milliseconds(),
	}
	for kind, n := range ix.CountByKind() {
		s.Kinds[kind.Serialized()] = n
	}
	for _, e := range ix.Dangling() {
		s.Dangling = append(s.Dangling, DanglingRef{From: e.From, Kind: string(e.Kind), To: e.To, Name: e.Name})
	}
	if s.Duplicates == nil {
		s.Duplicates = []int{}
	}

	log.Infow("decoded document",
		logger.FieldCount, s.Nodes,
		logger.FieldDurationMS, s.DurationMS,
		logger.FieldStrict, opts.Strict)
	return &result{Project: project, Index: ix, Summary: s}, nil
}

func logFailure(log *zap.SugaredLogger, err error) {
	log.Debugw("decode failed",
		logger.FieldError, err.Error(),
		logger.FieldErrorType, errorType(err),
		logger.FieldFieldPath, fieldPath(err))
}

// sortedKinds returns the kind names of counts, most frequent first.
func sortedKinds(counts map[string]int) []string {
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if counts[kinds[i]] != counts[kinds[j]] {
			return counts[kinds[i]] > counts[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	return kinds
}
