package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
		wantLevel  zapcore.Level
	}{
		{"JSON output mode", true, 0, zapcore.WarnLevel},
		{"Console output mode", false, 1, zapcore.InfoLevel},
		{"Console debug", false, 3, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.Equal(t, tt.verbosity, Verbosity)
			assert.True(t, Logger.Desugar().Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, Logger.Desugar().Core().Enabled(tt.wantLevel-1))
			}

			Logger.Sync()
		})
	}
}

func TestHelpersWithNilLogger(t *testing.T) {
	Logger = nil
	assert.NotPanics(t, func() {
		Infow("info", "k", "v")
		Warnw("warn")
		Errorw("error")
		Debugw("debug")
		Cleanup()
	})
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	require.NoError(t, Initialize(false, 0))
	assert.Same(t, Logger, OrNop(Logger))
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(9))
	assert.Equal(t, "All (-vvvv+)", LevelName(7))
	assert.Equal(t, "Unknown", LevelName(-1))
}

func TestShouldOutput(t *testing.T) {
	tests := []struct {
		verbosity int
		category  OutputCategory
		want      bool
	}{
		{VerbosityUser, OutputResults, true},
		{VerbosityUser, OutputWarnings, true},
		{VerbosityUser, OutputProgress, false},
		{VerbosityInfo, OutputProgress, true},
		{VerbosityInfo, OutputMerge, false},
		{VerbosityDebug, OutputMerge, true},
		{VerbosityTrace, OutputDataDump, false},
		{VerbosityAll, OutputDataDump, true},
		{VerbosityTrace, OutputCategory(999), false},
	}

	for _, tt := range tests {
		t.Run(CategoryName(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldOutput(tt.verbosity, tt.category))
		})
	}
}
