package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cafeplan/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("packed room")

	out := buf.String()
	if !strings.Contains(out, "packed room (") || !strings.Contains(out, "ms)") {
		t.Errorf("progress output = %q, want message with duration", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext(empty) is not log.Default()")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("loggerFromContext did not return the stored logger")
	}
}

func TestLogHooks(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)

	ctx := context.Background()
	observability.Pipeline().OnLayoutStart(ctx, "0123456789abcdef0123")
	observability.Pipeline().OnLayoutComplete(ctx, "0123456789abcdef0123", 9, time.Millisecond, nil)
	observability.Cache().OnCacheMiss(ctx, "layout")
	observability.Store().OnDesignLoaded(ctx, "memory", "id-1", errors.New("gone"))
	observability.Store().OnDesignsExpired(ctx, "memory", 0)

	out := buf.String()
	for _, want := range []string{"events", "layout start", "params=0123456789ab ", "slots=9", "cache miss", "design loaded"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "designs expired") {
		t.Error("empty cleanup pass was logged")
	}
}

func TestShort(t *testing.T) {
	if got := short("abc"); got != "abc" {
		t.Errorf("short(abc) = %q", got)
	}
	if got := short("0123456789abcdef"); got != "0123456789ab" {
		t.Errorf("short(long) = %q, want 12 chars", got)
	}
}
