package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextHelpers ensures loggers travel through the context with names and fields.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := ToContext(context.Background(), New(zapcore.DebugLevel, &buf))
	ctx = WithName(ctx, "variant-resolver")
	ctx = WithKV(ctx, "variant", "release")

	InfoKV(ctx, "Resolved", "signed", true)

	out := buf.String()
	require.Contains(t, out, "variant-resolver")
	require.Contains(t, out, "Resolved")
	require.Contains(t, out, "release")

	// Without a stored logger the global one is returned.
	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestMaskKV masks values of sensitive keys only.
func TestMaskKV(t *testing.T) {
	t.Parallel()

	in := []any{"key_alias", "upload", "key_password", "hunter2", "store_password", "", "count", 3}
	out := MaskKV(in...)

	require.Equal(t, []any{"key_alias", "upload", "key_password", "***", "store_password", "", "count", 3}, out)
	require.Equal(t, "hunter2", in[3])
	require.Equal(t, "***", Mask("x"))
	require.True(t, IsSensitiveKey("StorePassword"))
	require.False(t, IsSensitiveKey("storeFile"))
}
