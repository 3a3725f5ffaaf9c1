package convert

import (
	"bufio"
	"html"
	"io"
	"strings"
)

// TextConverter handles plain text files. Blank lines separate paragraphs.
type TextConverter struct{}

func (c *TextConverter) Convert(r io.Reader, filename string) (string, error) {
	paragraphs, err := splitParagraphs(r)
	if err != nil {
		return "", err
	}
	return paragraphMarkup(paragraphs), nil
}

func splitParagraphs(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paragraphs, nil
}

func paragraphMarkup(paragraphs []string) string {
	var out strings.Builder
	for _, p := range paragraphs {
		p = strings.ToValidUTF8(p, "�")
		out.WriteString("<p>")
		out.WriteString(html.EscapeString(p))
		out.WriteString("</p>\n")
	}
	return out.String()
}
