package convert

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXConverter handles .docx files. Paragraph styles map to tags the way
// the repository's preview has always rendered Word documents.
type DOCXConverter struct{}

func (c *DOCXConverter) Convert(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var out strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch v := item.(type) {
		case *docx.Paragraph:
			writeDocxParagraph(&out, v)
		case *docx.Table:
			writeDocxTable(&out, v)
		}
	}
	return out.String(), nil
}

// docxBlock returns the opening and closing tags for a paragraph style.
func docxBlock(para *docx.Paragraph) (string, string) {
	style := ""
	if para.Properties != nil && para.Properties.Style != nil {
		style = strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	}
	switch style {
	case "title":
		return `<h1 class="doc-title">`, "</h1>"
	case "heading1", "heading2", "heading3", "heading4", "heading5", "heading6":
		level := style[len("heading"):]
		return "<h" + level + ">", "</h" + level + ">"
	case "subtitle":
		return `<p class="doc-subtitle">`, "</p>"
	case "author":
		return `<p class="doc-author">`, "</p>"
	case "abstract":
		return `<blockquote class="doc-abstract">`, "</blockquote>"
	}
	return "<p>", "</p>"
}

func writeDocxParagraph(out *strings.Builder, para *docx.Paragraph) {
	inner, plain := docxParagraphHTML(para)
	if strings.TrimSpace(plain) == "" {
		return
	}
	open, closing := docxBlock(para)
	out.WriteString(open)
	out.WriteString(inner)
	out.WriteString(closing)
}

// docxParagraphHTML renders the paragraph's runs and also returns their
// plain text.
func docxParagraphHTML(para *docx.Paragraph) (string, string) {
	var buf, plain strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		text := docxRunText(run)
		if text == "" {
			continue
		}
		plain.WriteString(text)
		text = html.EscapeString(text)
		if props := run.RunProperties; props != nil {
			if props.Italic != nil {
				text = "<em>" + text + "</em>"
			}
			if props.Bold != nil {
				text = "<strong>" + text + "</strong>"
			}
		}
		buf.WriteString(text)
	}
	return buf.String(), plain.String()
}

func docxRunText(run *docx.Run) string {
	var buf strings.Builder
	for _, rc := range run.Children {
		if t, ok := rc.(*docx.Text); ok {
			buf.WriteString(t.Text)
		}
	}
	return buf.String()
}

func writeDocxTable(out *strings.Builder, tbl *docx.Table) {
	out.WriteString("<table>")
	for _, row := range tbl.TableRows {
		out.WriteString("<tr>")
		for _, cell := range row.TableCells {
			out.WriteString("<td>")
			for _, para := range cell.Paragraphs {
				writeDocxParagraph(out, para)
			}
			out.WriteString("</td>")
		}
		out.WriteString("</tr>")
	}
	out.WriteString("</table>")
}
