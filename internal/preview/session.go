package preview

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/paperlens/internal/convert"
	"github.com/dgallion1/paperlens/internal/docmeta"
)

// Status represents the state of a preview session.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusConverting Status = "converting"
	StatusExtracting Status = "extracting"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

// Session tracks one uploaded document from upload until it is reset or
// evicted.
type Session struct {
	mu sync.Mutex

	ID          string
	Filename    string
	ContentType string
	Size        int64
	Checksum    string

	Status    Status
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time

	fileData  []byte
	doc       *docmeta.ParsedDocument
	discarded bool
}

// NewSession creates a queued session for an upload.
func NewSession(filename string, data []byte) *Session {
	now := time.Now()
	return &Session{
		ID:          uuid.NewString(),
		Filename:    filename,
		ContentType: convert.ContentType(filename),
		Size:        int64(len(data)),
		Checksum:    ContentHashHex(data),
		Status:      StatusQueued,
		CreatedAt:   now,
		UpdatedAt:   now,
		fileData:    data,
	}
}

// SetStatus updates session status atomically.
func (s *Session) SetStatus(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = status
	s.UpdatedAt = time.Now()
}

// Fail marks the session failed with a message safe to show the user.
func (s *Session) Fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = StatusFailed
	s.Error = msg
	s.UpdatedAt = time.Now()
}

// Complete publishes the extracted document. It returns false, and leaves
// the session untouched, once the session has been discarded.
func (s *Session) Complete(doc *docmeta.ParsedDocument) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.discarded {
		return false
	}
	s.doc = doc
	s.Status = StatusReady
	s.UpdatedAt = time.Now()
	return true
}

// Discard detaches the session from any in-flight work and releases the
// upload bytes.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discarded = true
	s.fileData = nil
	s.doc = nil
}

func (s *Session) Discarded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discarded
}

// FileData returns the raw upload bytes.
func (s *Session) FileData() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fileData
}

// Document returns the extracted document, or nil until the session is ready.
func (s *Session) Document() *docmeta.ParsedDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// DocumentView is the JSON form of a ParsedDocument shown in previews.
type DocumentView struct {
	Title          string            `json:"title"`
	Authors        []string          `json:"authors"`
	Headings       []docmeta.Heading `json:"headings"`
	Abstract       string            `json:"abstract"`
	WordCount      int               `json:"word_count"`
	ReadingMinutes int               `json:"reading_minutes"`
}

// Snapshot is a read-only, JSON-safe copy of session state.
type Snapshot struct {
	ID          string        `json:"session_id"`
	Filename    string        `json:"filename"`
	ContentType string        `json:"content_type"`
	Size        int64         `json:"size_bytes"`
	FileSize    string        `json:"file_size"`
	Checksum    string        `json:"checksum"`
	Status      Status        `json:"status"`
	Error       string        `json:"error,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Document    *DocumentView `json:"document,omitempty"`
}

// Snapshot returns a JSON-safe copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:          s.ID,
		Filename:    s.Filename,
		ContentType: s.ContentType,
		Size:        s.Size,
		FileSize:    FormatBytes(s.Size),
		Checksum:    s.Checksum,
		Status:      s.Status,
		Error:       s.Error,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if d := s.doc; d != nil {
		snap.Document = &DocumentView{
			Title:          d.Title,
			Authors:        d.Authors,
			Headings:       d.Headings,
			Abstract:       d.AbstractText,
			WordCount:      d.WordCount,
			ReadingMinutes: d.ReadingMinutes(),
		}
	}
	return snap
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

// FormatBytes renders a size as B, KB with one decimal or MB with two.
func FormatBytes(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	}
}
