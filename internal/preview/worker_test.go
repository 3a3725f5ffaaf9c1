package preview

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgallion1/paperlens/internal/convert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWorker_ProcessMarkdown(t *testing.T) {
	input := "# My Paper\n\nJane Doe, John Roe\n\n## Introduction\n\nAbstract: We study things.\n"
	s := NewSession("my-paper.md", []byte(input))
	w := NewWorker(testLogger(), NewLatencyStats(time.Hour), time.Second)

	w.Process(context.Background(), s)

	snap := s.Snapshot()
	if snap.Status != StatusReady {
		t.Fatalf("expected ready, got %q (error %q)", snap.Status, snap.Error)
	}
	d := snap.Document
	if d.Title != "My Paper" {
		t.Errorf("expected title %q, got %q", "My Paper", d.Title)
	}
	if len(d.Authors) != 2 || d.Authors[0] != "Jane Doe" || d.Authors[1] != "John Roe" {
		t.Errorf("unexpected authors %v", d.Authors)
	}
	if d.Abstract != "We study things." {
		t.Errorf("unexpected abstract %q", d.Abstract)
	}
	if len(d.Headings) != 2 {
		t.Errorf("expected 2 headings, got %v", d.Headings)
	}
	if s.Document().BodyMarkup == "" {
		t.Error("expected body markup to be kept")
	}
	if got := w.stats.Snapshot().Count; got != 1 {
		t.Errorf("expected one latency sample, got %d", got)
	}
}

func TestWorker_ConversionFailure(t *testing.T) {
	s := NewSession("broken.docx", []byte("not a zip"))
	stats := NewLatencyStats(time.Hour)
	w := NewWorker(testLogger(), stats, time.Second)

	w.Process(context.Background(), s)

	snap := s.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed, got %q", snap.Status)
	}
	if snap.Error != convert.UserMessage {
		t.Errorf("expected generic user message, got %q", snap.Error)
	}
	if stats.Snapshot().Failures != 1 {
		t.Error("expected failure to be counted")
	}
}

func TestWorker_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	s := NewSession("slow.txt", []byte("x"))
	w := NewWorker(testLogger(), NewLatencyStats(time.Hour), 20*time.Millisecond)
	w.convert = func(r io.Reader, filename string) (string, error) {
		<-release
		return "<h1>Late</h1>", nil
	}

	start := time.Now()
	w.Process(context.Background(), s)
	if time.Since(start) > time.Second {
		t.Fatal("expected Process to give up at the timeout")
	}
	snap := s.Snapshot()
	if snap.Status != StatusFailed || snap.Error != convert.UserMessage {
		t.Errorf("expected failed with user message, got %q / %q", snap.Status, snap.Error)
	}
}

func TestWorker_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSession("slow.txt", []byte("x"))
	w := NewWorker(testLogger(), NewLatencyStats(time.Hour), time.Minute)
	w.convert = func(r io.Reader, filename string) (string, error) {
		<-release
		return "", errors.New("unreachable")
	}

	w.Process(ctx, s)
	if s.Snapshot().Status != StatusFailed {
		t.Errorf("expected failed after cancellation, got %q", s.Snapshot().Status)
	}
}

func TestWorker_DiscardDuringConversion(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	s := NewSession("paper.txt", []byte("x"))
	w := NewWorker(testLogger(), NewLatencyStats(time.Hour), time.Minute)
	w.convert = func(r io.Reader, filename string) (string, error) {
		close(started)
		<-release
		return "<h1>Dropped</h1>", nil
	}

	done := make(chan struct{})
	go func() {
		w.Process(context.Background(), s)
		close(done)
	}()

	<-started
	s.Discard()
	close(release)
	<-done

	if s.Document() != nil {
		t.Error("expected result of a discarded session to be dropped")
	}
	if s.Snapshot().Status == StatusReady {
		t.Error("expected discarded session never to become ready")
	}
}

func TestWorker_SkipsDiscardedSession(t *testing.T) {
	s := NewSession("paper.txt", []byte("x"))
	s.Discard()
	w := NewWorker(testLogger(), NewLatencyStats(time.Hour), time.Second)
	w.convert = func(r io.Reader, filename string) (string, error) {
		t.Error("converter should not run for a discarded session")
		return "", nil
	}
	w.Process(context.Background(), s)
	if s.Snapshot().Status != StatusQueued {
		t.Errorf("expected status untouched, got %q", s.Snapshot().Status)
	}
}
