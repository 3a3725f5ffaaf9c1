// Package docmeta infers bibliographic metadata (title, authors, abstract,
// heading outline) from markup converted out of a word-processing document.
//
// Every heuristic here is a pure walk over a doctree.Node tree. Misses are
// zero values, never errors.
package docmeta

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/dgallion1/paperlens/internal/doctree"
)

// Ellipsis marks an abstract cut at the length limit.
const Ellipsis = "…"

const (
	maxAuthorSiblings      = 4
	maxAuthorLineLen       = 120
	maxAuthorScanLen       = 200
	minLabeledAbstractLen  = 30
	minFallbackAbstractLen = 100
	maxAbstractLen         = 400
	maxHeadingLevel        = 4
	wordsPerMinute         = 238
)

// Heading is one entry of the document outline.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Metadata is the set of fields inferred from the markup tree.
type Metadata struct {
	Title    string
	Authors  []string
	Headings []Heading
	Abstract string
}

// ParsedDocument is the per-upload preview record.
type ParsedDocument struct {
	Title        string    `json:"title"`
	Authors      []string  `json:"authors"`
	Headings     []Heading `json:"headings"`
	AbstractText string    `json:"abstract"`
	BodyMarkup   string    `json:"-"`
	WordCount    int       `json:"word_count"`
}

// ReadingMinutes estimates reading time for the document body.
func (d *ParsedDocument) ReadingMinutes() int {
	return ReadingMinutes(d.WordCount)
}

// ParseError reports markup that could not be parsed at all.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse builds a ParsedDocument from converted markup. It fails only when the
// markup cannot be parsed; no partial result is returned in that case.
func Parse(markup, filename string) (*ParsedDocument, error) {
	root, err := doctree.FromHTMLString(markup)
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}
	meta := Extract(root, filename)
	return &ParsedDocument{
		Title:        meta.Title,
		Authors:      meta.Authors,
		Headings:     meta.Headings,
		AbstractText: meta.Abstract,
		BodyMarkup:   markup,
		WordCount:    CountWords(markup),
	}, nil
}

// Extract runs the title, author, abstract and heading heuristics over root.
func Extract(root *doctree.Node, filename string) Metadata {
	h1 := root.FindFirst("h1")
	return Metadata{
		Title:    extractTitle(h1, filename),
		Authors:  extractAuthors(h1),
		Headings: extractHeadings(root),
		Abstract: extractAbstract(root),
	}
}

func extractTitle(h1 *doctree.Node, filename string) string {
	if h1 != nil {
		if t := h1.TrimmedText(); t != "" {
			return t
		}
	}
	return TitleFromFilename(filename)
}

var filenameSeparators = strings.NewReplacer("-", " ", "_", " ")

// TitleFromFilename strips the extension and turns '-' and '_' into spaces.
func TitleFromFilename(filename string) string {
	stem := filename
	if i := strings.LastIndexByte(stem, '.'); i > 0 {
		stem = stem[:i]
	}
	return filenameSeparators.Replace(stem)
}

// extractAuthors reads author lines from the elements directly after the
// first h1. The scan ends at a heading or at anything long enough to be body
// text.
func extractAuthors(h1 *doctree.Node) []string {
	authors := []string{}
	if h1 == nil {
		return authors
	}
	sib := h1.NextElementSibling()
	for checked := 0; sib != nil && checked < maxAuthorSiblings; checked++ {
		text := sib.TrimmedText()
		if doctree.HeadingLevel(sib.Tag) > 0 || runeLen(text) > maxAuthorScanLen {
			break
		}
		if sib.Tag == "p" && isShortNonTerminalLine(text) {
			authors = append(authors, splitAuthors(text)...)
		}
		sib = sib.NextElementSibling()
	}
	return authors
}

func extractHeadings(root *doctree.Node) []Heading {
	headings := []Heading{}
	root.Walk(func(n *doctree.Node) {
		level := doctree.HeadingLevel(n.Tag)
		if level == 0 || level > maxHeadingLevel {
			return
		}
		headings = append(headings, Heading{Level: level, Text: n.TrimmedText()})
	})
	return headings
}

// extractAbstract applies the abstract rules in priority order; each rule
// scans every paragraph before the next rule is tried.
func extractAbstract(root *doctree.Node) string {
	paragraphs := root.FindAll("p")

	for _, p := range paragraphs {
		text := p.TrimmedText()
		if !startsWithAbstractMarker(text) {
			continue
		}
		if abs := stripAbstractMarker(text); abs != "" {
			return abs
		}
	}

	for _, p := range paragraphs {
		text := p.TrimmedText()
		if isAbstractLabel(p.PrevElementSibling()) && runeLen(text) > minLabeledAbstractLen {
			return text
		}
	}

	for _, p := range paragraphs {
		text := p.TrimmedText()
		if runeLen(text) > minFallbackAbstractLen {
			return truncateAbstract(text)
		}
	}
	return ""
}

func truncateAbstract(text string) string {
	rs := []rune(text)
	if len(rs) <= maxAbstractLen {
		return text
	}
	return string(rs[:maxAbstractLen]) + Ellipsis
}

var markupTag = regexp.MustCompile(`<[^>]+>`)

// CountWords counts whitespace-separated tokens once every tag is replaced
// by a space.
func CountWords(markup string) int {
	return len(strings.Fields(markupTag.ReplaceAllString(markup, " ")))
}

// ReadingMinutes converts a word count to minutes of reading, at least 1.
func ReadingMinutes(words int) int {
	m := int(math.Ceil(float64(words) / wordsPerMinute))
	if m < 1 {
		return 1
	}
	return m
}
