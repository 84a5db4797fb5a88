package archive

import (
	"archive/zip"
	"errors"
	"io"
	"path"
	"strings"
	"unicode/utf8"

	goerrors "github.com/goliatone/go-errors"
)

const entryDecodeCode = "ARCHIVE_ENTRY_DECODE"

// Entry is one markdown document lifted out of an uploaded archive.
type Entry struct {
	// Path is the entry's name inside the archive, used as the page path.
	Path string
	// Source is the raw markdown text.
	Source string
}

// Skipped records an archive entry that was rejected, with the reason.
// A skipped entry never aborts the rest of the batch.
type Skipped struct {
	Path string
	Err  error
}

// ExtractMarkdown walks a zip archive and returns its markdown files.
// Directories, non-.md entries, and names escaping the archive root are
// ignored silently; entries that fail to read or decode come back in the
// skipped list.
func ExtractMarkdown(r io.ReaderAt, size int64) ([]Entry, []Skipped, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		// ErrInsecurePath still yields a usable reader; escaping names are
		// filtered below.
		return nil, nil, goerrors.Wrap(err, goerrors.CategoryValidation, "read zip archive").
			WithTextCode(entryDecodeCode)
	}

	var (
		entries []Entry
		skipped []Skipped
	)
	for _, file := range zr.File {
		name := file.Name
		if file.FileInfo().IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		if !safeEntryName(name) {
			continue
		}

		source, err := readEntry(file)
		if err != nil {
			skipped = append(skipped, Skipped{Path: name, Err: err})
			continue
		}
		if !utf8.ValidString(source) {
			skipped = append(skipped, Skipped{
				Path: name,
				Err: goerrors.New("archive entry is not valid UTF-8: "+name, goerrors.CategoryValidation).
					WithTextCode(entryDecodeCode),
			})
			continue
		}
		entries = append(entries, Entry{Path: name, Source: source})
	}
	return entries, skipped, nil
}

func readEntry(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "open archive entry: "+file.Name).
			WithTextCode(entryDecodeCode)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "read archive entry: "+file.Name).
			WithTextCode(entryDecodeCode)
	}
	return string(data), nil
}

// safeEntryName rejects names that would escape the archive root once used
// as page paths.
func safeEntryName(name string) bool {
	if strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return false
	}
	cleaned := path.Clean(name)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return false
	}
	return true
}
