package convert

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFConverter handles PDF files. PDFs carry no heading markup, so every
// text block becomes a paragraph.
type PDFConverter struct{}

func (c *PDFConverter) Convert(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var paragraphs []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		blocks, err := splitParagraphs(strings.NewReader(text))
		if err != nil {
			return "", fmt.Errorf("split page %d: %w", i, err)
		}
		paragraphs = append(paragraphs, blocks...)
	}
	return paragraphMarkup(paragraphs), nil
}
