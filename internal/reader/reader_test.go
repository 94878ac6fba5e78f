package reader

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocx(t *testing.T, path string, paragraphs []string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	doc, err := zw.Create("word/document.xml")
	require.NoError(t, err)

	body := `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	for _, p := range paragraphs {
		body += `<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`
	}
	body += `</w:body></w:document>`

	_, err = doc.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func TestExtractDOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.docx")
	writeDocx(t, path, []string{"Jordan Doe", "Software Engineer"})

	text, err := extractDOCX(path)
	require.NoError(t, err)
	assert.Equal(t, "Jordan Doe\nSoftware Engineer", text)
}

func TestExtractDOCXWithoutDocumentXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = extractDOCX(path)
	assert.Error(t, err)
}

func TestReadAllFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeDocx(t, filepath.Join(dir, "resume.docx"), []string{"content"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.docx"), 0o755))

	r := New([]string{dir}, zerolog.Nop())
	contents := r.ReadAll()

	require.Len(t, contents, 1)
	assert.Equal(t, "content", contents[filepath.Join(dir, "resume.docx")])
}

func TestReadAllSkipsMissingDirAndBrokenFile(t *testing.T) {
	dir := t.TempDir()
	writeDocx(t, filepath.Join(dir, "good.docx"), []string{"good"})
	// not a zip archive at all
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.docx"), []byte("junk"), 0o644))

	r := New([]string{dir, filepath.Join(dir, "does-not-exist")}, zerolog.Nop())
	contents := r.ReadAll()

	require.Len(t, contents, 1)
	assert.Contains(t, contents, filepath.Join(dir, "good.docx"))
}
