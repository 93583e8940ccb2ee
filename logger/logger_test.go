package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
		wantLevel  zapcore.Level
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: 0, wantLevel: zapcore.WarnLevel},
		{name: "Console output mode", jsonOutput: false, verbosity: 1, wantLevel: zapcore.InfoLevel},
		{name: "Console debug", jsonOutput: false, verbosity: 2, wantLevel: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(func() { Logger = zap.NewNop().Sugar() })

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.Equal(t, tt.verbosity, Verbosity)
			assert.True(t, Logger.Desugar().Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, Logger.Desugar().Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityTrace+3))
	assert.Equal(t, "Trace (-vvv+)", LevelName(7))
}

func TestShouldOutput(t *testing.T) {
	assert.True(t, ShouldOutput(VerbosityUser, OutputErrors))
	assert.False(t, ShouldOutput(VerbosityUser, OutputKindCounts))
	assert.True(t, ShouldOutput(VerbosityInfo, OutputKindCounts))
	assert.False(t, ShouldOutput(VerbosityInfo, OutputDangling))
	assert.True(t, ShouldOutput(VerbosityTrace, OutputTreeDump))
	assert.False(t, ShouldOutput(VerbosityDebug, OutputCategory(99)))
	assert.Equal(t, "kind-counts", CategoryName(OutputKindCounts))
	assert.Equal(t, "unknown", CategoryName(OutputCategory(99)))
}

func TestLoggerFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Logger = zap.New(core).Sugar()
	t.Cleanup(func() { Logger = zap.NewNop().Sugar() })

	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithFile(ctx, "docs.json")
	LoggerFromContext(ctx).Infow("decoded", FieldCount, 3)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "run-1", fields[FieldRunID])
	assert.Equal(t, "docs.json", fields[FieldFile])
	assert.EqualValues(t, 3, fields[FieldCount])
}

func TestLoggerFromContextWithoutFields(t *testing.T) {
	Logger = zap.NewNop().Sugar()
	assert.Same(t, Logger, LoggerFromContext(context.Background()))
	assert.Empty(t, FieldsFromContext(context.Background()))
}

func TestComponentAndChildLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Logger = zap.New(core).Sugar()
	t.Cleanup(func() { Logger = zap.NewNop().Sugar() })

	child := ChildLogger(ComponentLogger("schema"), FieldRecord, "ArrayType")
	child.Debugw("materialized record")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "schema", entry.LoggerName)
	assert.Equal(t, "ArrayType", entry.ContextMap()[FieldRecord])
}

func TestCleanupWithNopLogger(t *testing.T) {
	Logger = zap.NewNop().Sugar()
	assert.NotPanics(t, Cleanup)
}
