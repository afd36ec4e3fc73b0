package extract

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"notebookrag/pkg/apperror"
)

// Kind identifies a supported document format, derived from the file
// extension the caller declared at upload time.
type Kind string

const (
	KindPDF      Kind = ".pdf"
	KindText     Kind = ".txt"
	KindMarkdown Kind = ".md"
)

// KindOf maps a filename to its declared format.
func KindOf(filename string) Kind {
	return Kind(strings.ToLower(filepath.Ext(filename)))
}

// Text extracts the plain text of the document at path. The format check
// happens before any file I/O so an unsupported extension never touches
// the filesystem. Markdown goes through the plain-text path verbatim.
func Text(path string, kind Kind) (string, error) {
	switch kind {
	case KindPDF:
		return fromPDF(path)
	case KindText, KindMarkdown:
		return fromTextFile(path)
	default:
		return "", apperror.Validation("unsupported file extension: %s", string(kind))
	}
}

func fromTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperror.NotFound("file not found: %s", path)
		}
		return "", apperror.IO(err, "read %s", path)
	}
	return string(data), nil
}

// fromPDF concatenates per-page text with a newline separator. A failing
// page aborts the whole extraction; partial documents are worse than a
// reported error because the missing text would silently vanish from the
// index.
func fromPDF(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", apperror.NotFound("file not found: %s", path)
		}
		return "", apperror.IO(err, "stat %s", path)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", apperror.IO(err, "open pdf %s", path)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", apperror.IO(err, "extract page %d of %s", i, path)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
