package submission

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/dgallion1/paperlens/internal/docmeta"
)

func TestFromDocument(t *testing.T) {
	doc := &docmeta.ParsedDocument{
		Title:        "Deep Sea Vents",
		Authors:      []string{"A. Smith", "B. Jones"},
		Headings:     []docmeta.Heading{{Level: 1, Text: "Deep Sea Vents"}, {Level: 2, Text: "Methods"}, {Level: 3, Text: ""}},
		AbstractText: "We look at vents.",
		WordCount:    1234,
	}
	up := Upload{Name: "vents.docx", SizeBytes: 2048, MimeType: "application/pdf", Checksum: "abc"}

	d := FromDocument(doc, up)

	if d.Title != doc.Title || d.Abstract != doc.AbstractText {
		t.Errorf("unexpected title/abstract: %q / %q", d.Title, d.Abstract)
	}
	if d.Status != StatusWorkflow {
		t.Errorf("expected workflow status, got %q", d.Status)
	}
	want := map[string]any{
		KeyTitle:           "Deep Sea Vents",
		KeyAuthor:          []string{"A. Smith", "B. Jones"},
		KeyAbstract:        "We look at vents.",
		KeyExtent:          "1234 words",
		KeyTableOfContents: []string{"Deep Sea Vents", "Methods"},
	}
	if !reflect.DeepEqual(d.Metadata, want) {
		t.Errorf("metadata mismatch:\n got %#v\nwant %#v", d.Metadata, want)
	}
	wantBS := Bitstream{Name: "vents.docx", SizeBytes: 2048, MimeType: "application/pdf", Checksum: "abc", BundleName: BundleOriginal}
	if d.Bitstream != wantBS {
		t.Errorf("unexpected bitstream %+v", d.Bitstream)
	}
}

func TestFromDocument_OmitsEmptyKeys(t *testing.T) {
	doc := &docmeta.ParsedDocument{
		Title:    "notes",
		Authors:  []string{},
		Headings: []docmeta.Heading{},
	}
	d := FromDocument(doc, Upload{Name: "notes.txt"})
	if len(d.Metadata) != 1 {
		t.Fatalf("expected only dc.title, got %#v", d.Metadata)
	}
	if _, ok := d.Metadata[KeyTitle]; !ok {
		t.Error("expected dc.title to be present")
	}
}

func TestFromDocument_AuthorsCopied(t *testing.T) {
	doc := &docmeta.ParsedDocument{Title: "T", Authors: []string{"A"}}
	d := FromDocument(doc, Upload{})
	doc.Authors[0] = "changed"
	if got := d.Metadata[KeyAuthor].([]string)[0]; got != "A" {
		t.Errorf("expected draft authors to be independent of the document, got %q", got)
	}
}

func TestDraft_JSONShape(t *testing.T) {
	d := FromDocument(&docmeta.ParsedDocument{Title: "T"}, Upload{Name: "t.md", SizeBytes: 3, MimeType: "text/markdown"})
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	bs, ok := out["bitstream"].(map[string]any)
	if !ok {
		t.Fatalf("expected bitstream object, got %s", b)
	}
	if bs["bundleName"] != "ORIGINAL" || bs["sizeBytes"] != float64(3) {
		t.Errorf("unexpected bitstream json %v", bs)
	}
	if _, ok := out["abstract"]; ok {
		t.Errorf("expected empty abstract to be omitted, got %s", b)
	}
}
