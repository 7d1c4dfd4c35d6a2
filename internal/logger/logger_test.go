package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/emojiabc/internal/logger"
)

func newBufferLogger(buf *bytes.Buffer, level logger.Level) *logger.Logger {
	return logger.New(
		logger.WithOutput(buf),
		logger.WithLevel(level),
		logger.WithColors(false),
		logger.WithClock(func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }),
	)
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, logger.WARN)

	log.Debug("debug")
	log.Info("info")
	log.Warn("warn %d", 1)
	log.Error("error")

	out := buf.String()
	assert.NotContains(t, out, "debug")
	assert.NotContains(t, out, " info")
	assert.Contains(t, out, "WARN  ")
	assert.Contains(t, out, "warn 1")
	assert.Contains(t, out, "ERROR")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestLogger_LineLayout(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, logger.DEBUG).WithPrefix("db").WithFields(map[string]any{
		"zeta":  1,
		"alpha": "two words",
	})

	log.Info("opened")

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "2024-03-01 12:00:00.000 INFO  [db] [logger_test.go:"), line)
	assert.True(t, strings.HasSuffix(line, `opened alpha="two words" zeta=1`+"\n"), line)
}

func TestLogger_DerivedLoggersDoNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	base := newBufferLogger(&buf, logger.DEBUG)
	child := base.WithField("request_id", "abc")

	base.Info("base")
	child.Info("child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "request_id")
	assert.Contains(t, lines[1], "request_id=abc")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel("Error"))
	assert.Equal(t, logger.INFO, logger.ParseLevel("bogus"))

	_, ok := logger.LookupLevel("bogus")
	assert.False(t, ok)
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, logger.INFO)

	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))

	ctx := logger.NewContext(context.Background(), log)
	assert.Same(t, log, logger.FromContext(ctx))
}
