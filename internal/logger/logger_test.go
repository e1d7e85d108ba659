package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", true, true},
		{" DEBUG ", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"", false, true},
		{"громко", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log, err := New(tt.level)
			require.NoError(t, err)
			require.Equal(t, tt.wantDebug, log.Core().Enabled(zapcore.DebugLevel))
			require.Equal(t, tt.wantInfo, log.Core().Enabled(zapcore.InfoLevel))
		})
	}
}

func TestPrintfAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	adapter := NewPrintfAdapter(zap.New(core))

	adapter.Printf("применена миграция %d\n", 3)

	require.True(t, adapter.Verbose())
	require.Equal(t, 1, logs.Len())
	require.Equal(t, "применена миграция 3", logs.All()[0].Message)
}

func TestPrintfAdapterNil(t *testing.T) {
	adapter := NewPrintfAdapter(nil)
	require.False(t, adapter.Verbose())
	adapter.Printf("ничего")
}
