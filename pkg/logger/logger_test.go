package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(Config{Level: level, Output: &buf})
	return l, &buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newTestLogger(WARN)

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn %d", 1)
	l.Error("error %s", "two")

	out := buf.String()
	assert.NotContains(t, out, "debug")
	assert.NotContains(t, out, "info")
	assert.Contains(t, out, "[WARN] warn 1")
	assert.Contains(t, out, "[ERROR] error two")
}

func TestFormatWithoutArgsKeepsPercent(t *testing.T) {
	l, buf := newTestLogger(DEBUG)
	l.Info("100% done")
	assert.Contains(t, buf.String(), "[INFO] 100% done")
}

func TestColorize(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: DEBUG, Output: &buf, Colorize: true})
	l.Error("boom")
	assert.Contains(t, buf.String(), colorRed+"[ERROR]"+colorReset)
}

func TestShowTime(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: DEBUG, Output: &buf, ShowTime: true, TimeFormat: "2006"})
	l.Info("x")
	fields := strings.Fields(buf.String())
	require.NotEmpty(t, fields)
	assert.Len(t, fields[0], 4)
}

func TestWithPrefixSharesSink(t *testing.T) {
	parent, buf := newTestLogger(INFO)
	child := parent.WithPrefix("[align]").WithPrefix("[io]")

	child.Debug("hidden")
	parent.SetLevel(DEBUG)
	child.Debug("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[DEBUG] [align] [io] visible")
	assert.Equal(t, DEBUG, child.Level())
}

func TestFatalExits(t *testing.T) {
	l, buf := newTestLogger(INFO)
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatalf("bad %s", "thing")
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "[FATAL] bad thing")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	assert.Equal(t, FATAL+1, l.Level())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DEBUG},
		{" INFO ", INFO},
		{"warning", WARN},
		{"Warn", WARN},
		{"error", ERROR},
		{"FATAL", FATAL},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("ACOUSTICALIGN_LOG_LEVEL", "")
	t.Setenv("LOG_LEVEL", "debug")
	lvl, ok := levelFromEnv()
	assert.True(t, ok)
	assert.Equal(t, DEBUG, lvl)

	t.Setenv("ACOUSTICALIGN_LOG_LEVEL", "error")
	lvl, ok = levelFromEnv()
	assert.True(t, ok)
	assert.Equal(t, ERROR, lvl)

	t.Setenv("ACOUSTICALIGN_LOG_LEVEL", "bogus")
	t.Setenv("LOG_LEVEL", "")
	_, ok = levelFromEnv()
	assert.False(t, ok)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "ERROR", ERROR.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}
