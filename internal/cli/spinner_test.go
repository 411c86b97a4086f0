package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// captureUI redirects status output for the duration of a test.
func captureUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := uiOut
	uiOut = &buf
	t.Cleanup(func() { uiOut = prev })
	return &buf
}

func TestSpinnerDraws(t *testing.T) {
	buf := captureUI(t)
	s := newSpinner(context.Background(), "Sweeping front...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Sweeping front...") {
		t.Errorf("spinner output = %q, want message", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "\r") {
		t.Error("Stop should clear the line")
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	captureUI(t)
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, "Testing")
	s.Start()
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked after context cancellation")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	captureUI(t)
	s := newSpinner(context.Background(), "Testing")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner(context.Background(), "never shown")
	s.Stop()
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	buf := captureUI(t)
	s := newSpinner(context.Background(), "Rendering")
	s.Start()
	s.SetMessage("Rendering steiner tree")
	s.StopWithSuccess("Rendered %d trees", 2)
	if !strings.Contains(buf.String(), "Rendered 2 trees") {
		t.Errorf("output = %q, want success line", buf.String())
	}
}

func TestStartSpinnerQuietAtDebug(t *testing.T) {
	buf := captureUI(t)
	logger := newLogger(io.Discard, log.DebugLevel)
	s := startSpinner(context.Background(), logger, "hidden")
	time.Sleep(150 * time.Millisecond)
	s.Stop()
	if buf.Len() != 0 {
		t.Errorf("spinner drew %q at debug level", buf.String())
	}
}
