package ingestion

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdellahzou/HiResume/internal/docx"
	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/layout"
	"github.com/abdellahzou/HiResume/internal/types"
)

func sampleDocument() types.ResumeDocument {
	return types.ResumeDocument{
		PersonalInfo: types.PersonalInfo{FullName: "Jane Doe", Email: "jane@x.com"},
		Experience: []types.Experience{
			{ID: "e1", Company: "Acme", Position: "Engineer", StartDate: "2020", Current: true, Description: "Led migration"},
		},
		Skills:     []types.Skill{{ID: "s1", Name: "Go", Level: 4}, {ID: "s2", Name: "SQL", Level: 2}},
		TemplateID: types.TemplateModern,
	}
}

func zipWith(t *testing.T, name, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFileType(t *testing.T) {
	assert.Equal(t, "pdf", FileType("cv.PDF"))
	assert.Equal(t, "docx", FileType("/tmp/my.cv.docx"))
	assert.Equal(t, "", FileType("README"))
}

func TestRegistry_Supports(t *testing.T) {
	r := DefaultRegistry()
	assert.True(t, r.Supports("a.pdf"))
	assert.True(t, r.Supports("a.DOCX"))
	assert.False(t, r.Supports("a.doc"))
	assert.False(t, r.Supports("a.html"))
	assert.True(t, r.WithHTML().Supports("a.html"))
	assert.ElementsMatch(t, []string{"pdf", "docx"}, r.Types())
}

func TestRegistry_UnsupportedFormat(t *testing.T) {
	_, err := DefaultRegistry().Extract(context.Background(), "cv.txt", []byte("hello"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRegistry_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := DefaultRegistry().Extract(ctx, "cv.docx", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDOCXExtractor_CompiledDocument(t *testing.T) {
	data, err := docx.Compile(sampleDocument(), i18n.English)
	require.NoError(t, err)

	text, err := DefaultRegistry().Extract(context.Background(), "resume.docx", data)
	require.NoError(t, err)

	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Experience")
	assert.Contains(t, text, "Engineer | Acme")
	assert.Contains(t, text, "Present")
	assert.Contains(t, text, "Go, SQL")
}

func TestDOCXExtractor_Entities(t *testing.T) {
	xml := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>R&amp;D</w:t></w:r><w:r><w:tab/><w:t>lead</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>second</w:t></w:r></w:p></w:body></w:document>`

	text, err := DOCXExtractor{}.Extract(context.Background(), zipWith(t, "word/document.xml", xml))
	require.NoError(t, err)
	assert.Equal(t, "R&D\tlead\nsecond\n", text)
}

func TestDOCXExtractor_Errors(t *testing.T) {
	_, err := DOCXExtractor{}.Extract(context.Background(), []byte("not a zip"))
	assert.Error(t, err)

	_, err = DOCXExtractor{}.Extract(context.Background(), zipWith(t, "word/other.xml", "<x/>"))
	assert.ErrorContains(t, err, "no document.xml")
}

func TestPDFExtractor_InvalidData(t *testing.T) {
	_, err := PDFExtractor{}.Extract(context.Background(), []byte("%PDF-1.4 truncated"))
	assert.Error(t, err)

	_, err = CountPages([]byte("garbage"))
	assert.Error(t, err)
}

func TestHTMLExtractor_RenderedDocument(t *testing.T) {
	tree, err := layout.Render(sampleDocument(), i18n.English)
	require.NoError(t, err)
	page, err := layout.HTML(tree, layout.HTMLOptions{})
	require.NoError(t, err)

	text, err := DefaultRegistry().WithHTML().Extract(context.Background(), "resume.html", page)
	require.NoError(t, err)

	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "jane@x.com")
	assert.Contains(t, text, "Experience")
	assert.Contains(t, text, "Led migration")
	assert.NotContains(t, text, "box-sizing")
	assert.NotContains(t, text, "GoSQL")
}

func TestIngestFromFile(t *testing.T) {
	data, err := docx.Compile(sampleDocument(), i18n.French)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "cv.docx")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	text, meta, err := DefaultRegistry().IngestFromFile(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, text, "Expérience")
	assert.Equal(t, "docx", meta.FileType)
	assert.Equal(t, Hash(text), meta.Hash)
}

func TestIngestFromFile_Errors(t *testing.T) {
	_, _, err := DefaultRegistry().IngestFromFile(context.Background(), "/nonexistent/file.pdf")
	assert.ErrorContains(t, err, "file not found")

	_, _, err = DefaultRegistry().IngestFromFile(context.Background(), "/nonexistent/file.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "cv.pdf")
	require.NoError(t, os.WriteFile(small, []byte("%PDF"), 0o644))
	data, err := ReadFile(small)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)

	big := filepath.Join(dir, "big.pdf")
	f, err := os.Create(big)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(MaxFileSize+1))
	require.NoError(t, f.Close())
	_, err = ReadFile(big)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = ReadFile(filepath.Join(dir, "missing.pdf"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
