package convert

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLConverter handles uploaded HTML pages by keeping only the body content.
type HTMLConverter struct{}

func (c *HTMLConverter) Convert(r io.Reader, filename string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	// Skip non-content elements.
	doc.Find("script, style, noscript, nav, header, footer").Remove()

	markup, err := doc.Find("body").First().Html()
	if err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return strings.TrimSpace(markup), nil
}
