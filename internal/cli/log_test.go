package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rootfront/pkg/observability"
)

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Debug("front sweep started")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}
	logger.Info("analyzed", "file", "root_03.json")
	if !strings.Contains(buf.String(), "file=root_03.json") {
		t.Errorf("output = %q, want key-value pair", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.start = prog.start.Add(-1500 * time.Millisecond)
	prog.done("Analyzed root.json")

	if !strings.Contains(buf.String(), "Analyzed root.json (1.5") {
		t.Errorf("done() output = %q, want elapsed time", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}

	l := newLogger(&bytes.Buffer{}, log.WarnLevel)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Errorf("loggerFromContext = %p, want %p", got, l)
	}
}

func TestSetLogLevelInstallsHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.SetLogLevel(LogInfo)
	if _, ok := observability.Analysis().(observability.NoopAnalysisHooks); !ok {
		t.Fatal("info level should keep the no-op analysis hooks")
	}

	c.SetLogLevel(LogDebug)
	if _, ok := observability.Analysis().(*observability.LogHooks); !ok {
		t.Fatalf("Analysis() = %T, want *LogHooks", observability.Analysis())
	}
	observability.Cache().OnCacheMiss(context.Background(), "front")
	if !strings.Contains(buf.String(), "front") {
		t.Errorf("cache miss not logged: %q", buf.String())
	}
}
