package archive

import (
	"archive/zip"
	"bytes"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func buildZip(t *testing.T, files map[string][]byte) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %q: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("write zip entry %q: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestExtractMarkdownFiltersEntries(t *testing.T) {
	r := buildZip(t, map[string][]byte{
		"notes/setup.md": []byte("# Setup"),
		"readme.txt":     []byte("not markdown"),
		"images/logo.png": {
			0x89, 0x50, 0x4e, 0x47,
		},
		"nested/dir/page.md": []byte("# Deep"),
	})

	entries, skipped, err := ExtractMarkdown(r, r.Size())
	if err != nil {
		t.Fatalf("ExtractMarkdown() error = %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("ExtractMarkdown() skipped %d entries, want 0", len(skipped))
	}
	if len(entries) != 2 {
		t.Fatalf("ExtractMarkdown() returned %d entries, want 2", len(entries))
	}
	got := map[string]string{}
	for _, e := range entries {
		got[e.Path] = e.Source
	}
	if got["notes/setup.md"] != "# Setup" || got["nested/dir/page.md"] != "# Deep" {
		t.Fatalf("ExtractMarkdown() entries = %v", got)
	}
}

func TestExtractMarkdownSkipsInvalidUTF8(t *testing.T) {
	r := buildZip(t, map[string][]byte{
		"good.md": []byte("fine"),
		"bad.md":  {0xff, 0xfe, 0x00},
	})

	entries, skipped, err := ExtractMarkdown(r, r.Size())
	if err != nil {
		t.Fatalf("ExtractMarkdown() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "good.md" {
		t.Fatalf("ExtractMarkdown() entries = %v, want only good.md", entries)
	}
	if len(skipped) != 1 || skipped[0].Path != "bad.md" {
		t.Fatalf("ExtractMarkdown() skipped = %v, want only bad.md", skipped)
	}
	if !goerrors.IsCategory(skipped[0].Err, goerrors.CategoryValidation) {
		t.Fatalf("skipped error category = %v, want validation", skipped[0].Err)
	}
}

func TestExtractMarkdownRejectsEscapingNames(t *testing.T) {
	r := buildZip(t, map[string][]byte{
		"../escape.md":     []byte("nope"),
		"/absolute.md":     []byte("nope"),
		"ok/../../deep.md": []byte("nope"),
		"fine.md":          []byte("yes"),
	})

	entries, skipped, err := ExtractMarkdown(r, r.Size())
	if err != nil {
		t.Fatalf("ExtractMarkdown() error = %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("ExtractMarkdown() skipped = %v, want none", skipped)
	}
	if len(entries) != 1 || entries[0].Path != "fine.md" {
		t.Fatalf("ExtractMarkdown() entries = %v, want only fine.md", entries)
	}
}

func TestExtractMarkdownRejectsCorruptArchive(t *testing.T) {
	r := bytes.NewReader([]byte("this is not a zip"))

	_, _, err := ExtractMarkdown(r, r.Size())
	if err == nil {
		t.Fatal("ExtractMarkdown() expected error for corrupt archive")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("ExtractMarkdown() error category = %v, want validation", err)
	}
}
