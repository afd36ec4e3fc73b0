package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebookrag/pkg/apperror"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		filename string
		want     Kind
	}{
		{"report.pdf", KindPDF},
		{"notes.txt", KindText},
		{"README.md", KindMarkdown},
		{"UPPER.PDF", KindPDF},
		{"archive.docx", Kind(".docx")},
		{"noext", Kind("")},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.filename))
		})
	}
}

func TestTextFromTxt(t *testing.T) {
	path := writeFile(t, "notes.txt", "The sky is blue. Water is wet.")

	got, err := Text(path, KindText)
	require.NoError(t, err)
	assert.Equal(t, "The sky is blue. Water is wet.", got)
}

func TestMarkdownUsesPlainTextPath(t *testing.T) {
	path := writeFile(t, "doc.md", "# Heading\n\nbody text")

	got, err := Text(path, KindMarkdown)
	require.NoError(t, err)
	// No markdown-aware parsing: the raw source comes back untouched.
	assert.Equal(t, "# Heading\n\nbody text", got)
}

func TestUnsupportedExtensionFailsBeforeIO(t *testing.T) {
	// The path does not exist; a validation error (not a not-found error)
	// proves the extension check runs first.
	_, err := Text("/nonexistent/archive.docx", Kind(".docx"))
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.False(t, apperror.IsNotFound(err))
}

func TestMissingFile(t *testing.T) {
	_, err := Text(filepath.Join(t.TempDir(), "gone.txt"), KindText)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestMissingPDF(t *testing.T) {
	_, err := Text(filepath.Join(t.TempDir(), "gone.pdf"), KindPDF)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCorruptPDFIsIOError(t *testing.T) {
	path := writeFile(t, "broken.pdf", "this is not a pdf")

	_, err := Text(path, KindPDF)
	require.Error(t, err)
	assert.True(t, apperror.IsIO(err))
}
