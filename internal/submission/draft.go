// Package submission turns a previewed document into an item submission
// draft: Dublin Core metadata plus the descriptor of its original file.
package submission

import (
	"fmt"

	"github.com/dgallion1/paperlens/internal/docmeta"
)

// Item workflow states.
const (
	StatusWorkflow  = "workflow"
	StatusArchived  = "archived"
	StatusWithdrawn = "withdrawn"
)

// BundleOriginal holds the file as uploaded.
const BundleOriginal = "ORIGINAL"

// Dublin Core keys written into Draft.Metadata.
const (
	KeyTitle           = "dc.title"
	KeyAuthor          = "dc.contributor.author"
	KeyAbstract        = "dc.description.abstract"
	KeyExtent          = "dc.format.extent"
	KeyTableOfContents = "dc.description.tableofcontents"
)

// Upload describes the original file a draft was built from.
type Upload struct {
	Name      string
	SizeBytes int64
	MimeType  string
	Checksum  string
}

type Bitstream struct {
	Name       string `json:"name"`
	SizeBytes  int64  `json:"sizeBytes"`
	MimeType   string `json:"mimeType"`
	Checksum   string `json:"checksum,omitempty"`
	BundleName string `json:"bundleName"`
}

// Draft is an item ready to enter the submission workflow.
type Draft struct {
	Title     string         `json:"title"`
	Abstract  string         `json:"abstract,omitempty"`
	Status    string         `json:"status"`
	Metadata  map[string]any `json:"metadata"`
	Bitstream Bitstream      `json:"bitstream"`
}

// FromDocument builds a draft from extracted metadata. Metadata keys whose
// value would be empty are left out.
func FromDocument(doc *docmeta.ParsedDocument, up Upload) Draft {
	md := map[string]any{}
	if doc.Title != "" {
		md[KeyTitle] = doc.Title
	}
	if len(doc.Authors) > 0 {
		md[KeyAuthor] = append([]string(nil), doc.Authors...)
	}
	if doc.AbstractText != "" {
		md[KeyAbstract] = doc.AbstractText
	}
	if doc.WordCount > 0 {
		md[KeyExtent] = fmt.Sprintf("%d words", doc.WordCount)
	}
	if toc := tableOfContents(doc.Headings); len(toc) > 0 {
		md[KeyTableOfContents] = toc
	}

	return Draft{
		Title:    doc.Title,
		Abstract: doc.AbstractText,
		Status:   StatusWorkflow,
		Metadata: md,
		Bitstream: Bitstream{
			Name:       up.Name,
			SizeBytes:  up.SizeBytes,
			MimeType:   up.MimeType,
			Checksum:   up.Checksum,
			BundleName: BundleOriginal,
		},
	}
}

func tableOfContents(headings []docmeta.Heading) []string {
	var toc []string
	for _, h := range headings {
		if h.Text != "" {
			toc = append(toc, h.Text)
		}
	}
	return toc
}
