package convert

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// UserMessage is the only conversion failure text shown to end users.
const UserMessage = "Failed to parse the document. Please ensure it's a valid file of the expected type."

// Converter turns raw document bytes into rich-text markup built from
// heading, paragraph and emphasis tags.
type Converter interface {
	Convert(r io.Reader, filename string) (string, error)
}

// ConversionError reports an unsupported or corrupt upload.
type ConversionError struct {
	Filename string
	Err      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s: %v", e.Filename, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// contentTypes lists supported extensions and the MIME type recorded for them.
var contentTypes = map[string]string{
	".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".html":     "text/html",
	".htm":      "text/html",
	".pdf":      "application/pdf",
	".txt":      "text/plain",
}

// ForFile returns the appropriate converter for a filename.
func ForFile(filename string) (Converter, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return &DOCXConverter{}, nil
	case ".md", ".markdown":
		return &MarkdownConverter{}, nil
	case ".html", ".htm":
		return &HTMLConverter{}, nil
	case ".pdf":
		return &PDFConverter{}, nil
	case ".txt":
		return &TextConverter{}, nil
	default:
		return nil, &ConversionError{
			Filename: filename,
			Err:      fmt.Errorf("unsupported file extension: %q", ext),
		}
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	_, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// ContentType returns the MIME type for a supported filename, or
// application/octet-stream.
func ContentType(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Convert picks a converter for filename and runs it. Every failure,
// including a panic inside a format library, comes back as *ConversionError.
func Convert(r io.Reader, filename string) (markup string, err error) {
	c, err := ForFile(filename)
	if err != nil {
		return "", err
	}
	defer func() {
		if p := recover(); p != nil {
			markup = ""
			err = &ConversionError{Filename: filename, Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	markup, err = c.Convert(r, filename)
	if err != nil {
		return "", &ConversionError{Filename: filename, Err: err}
	}
	return markup, nil
}
