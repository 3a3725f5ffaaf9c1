package preview

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dgallion1/paperlens/internal/convert"
	"github.com/dgallion1/paperlens/internal/docmeta"
)

type convertFunc func(r io.Reader, filename string) (string, error)

// Worker turns one uploaded session into a ParsedDocument.
type Worker struct {
	log     *slog.Logger
	stats   *LatencyStats
	timeout time.Duration
	convert convertFunc
}

func NewWorker(log *slog.Logger, stats *LatencyStats, timeout time.Duration) *Worker {
	return &Worker{
		log:     log,
		stats:   stats,
		timeout: timeout,
		convert: convert.Convert,
	}
}

// Process converts the upload and extracts its metadata. Failures are
// logged and leave the session failed with convert.UserMessage.
func (w *Worker) Process(ctx context.Context, s *Session) {
	log := w.log.With("session_id", s.ID, "filename", s.Filename)
	if s.Discarded() {
		log.Info("session discarded before processing")
		return
	}

	// Phase 1: Convert
	s.SetStatus(StatusConverting)
	start := time.Now()
	markup, err := w.convertWithTimeout(ctx, s)
	if err != nil {
		w.stats.RecordFailure()
		log.Error("conversion failed", "error", err)
		s.Fail(convert.UserMessage)
		return
	}
	elapsed := time.Since(start)
	w.stats.Record(elapsed.Milliseconds())

	if s.Discarded() {
		log.Info("session discarded during conversion, dropping result")
		return
	}

	// Phase 2: Extract
	s.SetStatus(StatusExtracting)
	doc, err := docmeta.Parse(markup, s.Filename)
	if err != nil {
		log.Error("metadata extraction failed", "error", err)
		s.Fail(convert.UserMessage)
		return
	}

	if !s.Complete(doc) {
		log.Info("session discarded during extraction, dropping result")
		return
	}
	log.Info("preview ready",
		"title", doc.Title,
		"authors", len(doc.Authors),
		"headings", len(doc.Headings),
		"word_count", doc.WordCount,
		"convert_ms", elapsed.Milliseconds(),
	)
}

// convertWithTimeout runs the converter in its own goroutine. A result that
// arrives after the deadline is dropped.
func (w *Worker) convertWithTimeout(ctx context.Context, s *Session) (string, error) {
	type result struct {
		markup string
		err    error
	}
	done := make(chan result, 1)
	data := s.FileData()
	go func() {
		markup, err := w.convert(bytes.NewReader(data), s.Filename)
		done <- result{markup: markup, err: err}
	}()

	timer := time.NewTimer(w.timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.markup, r.err
	case <-timer.C:
		return "", &docmeta.ParseError{
			Filename: s.Filename,
			Err:      fmt.Errorf("conversion exceeded %s", w.timeout),
		}
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
