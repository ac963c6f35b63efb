package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		"info":   zapcore.InfoLevel,
		" WARN ": zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("verbose")
	require.False(t, ok)
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))

	core, logs := observer.New(zapcore.InfoLevel)
	scoped := zap.New(core).Sugar()

	ctx := WithKV(ToContext(context.Background(), scoped), "request_id", "abc")
	InfoKV(ctx, "served", "status", 200)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "served", entries[0].Message)
	require.Equal(t, "abc", entries[0].ContextMap()["request_id"])
	require.EqualValues(t, 200, entries[0].ContextMap()["status"])
}
