package extractor

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// buildPDF writes a minimal uncompressed PDF with one Helvetica text line per page.
func buildPDF(t *testing.T, pages []string, trailerExtra string) []byte {
	t.Helper()

	var objects []string
	pageCount := len(pages)
	fontID := 3 + 2*pageCount

	kids := make([]string, pageCount)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}

	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pageCount))
	for i, text := range pages {
		contentID := 4 + 2*i
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontID, contentID))
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R %s>>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, trailerExtra, xref)

	return buf.Bytes()
}

// buildDOCX zips a word/document.xml body into the smallest package the docx reader accepts.
func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func para(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

func TestParseFormat(t *testing.T) {
	for _, ext := range []string{".pdf", "PDF", ".Docx", "doc", " .txt "} {
		_, ok := ParseFormat(ext)
		assert.True(t, ok, ext)
	}

	_, ok := ParseFormat(".rtf")
	assert.False(t, ok)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	got := New(nil).Extract(RawDocument{Data: []byte("x"), Extension: ".RTF"})

	require.False(t, got.OK())
	assert.Equal(t, FailureUnsupportedFormat, got.Failure.Kind)
	assert.Equal(t, "Unsupported file format: .rtf", got.String())
}

func TestExtract_PDF(t *testing.T) {
	data := buildPDF(t, []string{"Jane Doe Resume", "Experience at Acme"}, "")

	got := New(nil).Extract(RawDocument{Data: data, Extension: ".pdf"})

	require.True(t, got.OK(), got.String())
	assert.Contains(t, got.Text, "Jane Doe Resume")
	assert.Contains(t, got.Text, "Experience at Acme")
	assert.Equal(t, strings.TrimSpace(got.Text), got.Text)
}

func TestExtract_PDFWithoutText(t *testing.T) {
	data := buildPDF(t, []string{""}, "")

	got := New(nil).Extract(RawDocument{Data: data, Extension: "pdf"})

	require.False(t, got.OK())
	assert.Equal(t, FailureNoText, got.Failure.Kind)
	assert.Equal(t, "No readable text found in PDF", got.String())
}

func TestExtract_PDFPasswordProtected(t *testing.T) {
	encrypt := "/Encrypt << /Filter /Standard /V 1 /R 2 /Length 40 /P -4 " +
		"/O <" + strings.Repeat("11", 32) + "> /U <" + strings.Repeat("22", 32) + "> >> " +
		"/ID [<" + strings.Repeat("33", 16) + "> <" + strings.Repeat("33", 16) + ">] "
	data := buildPDF(t, []string{"secret"}, encrypt)

	got := New(nil).Extract(RawDocument{Data: data, Extension: ".pdf"})

	require.False(t, got.OK())
	assert.Equal(t, FailureEncrypted, got.Failure.Kind)
	assert.Equal(t, "Error: PDF is password protected", got.String())
}

func TestExtract_CorruptPDF(t *testing.T) {
	got := New(nil).Extract(RawDocument{Data: []byte("this is not a pdf at all"), Extension: ".pdf"})

	require.False(t, got.OK())
	assert.Equal(t, FailureCorrupt, got.Failure.Kind)
	assert.True(t, strings.HasPrefix(got.String(), "Error reading PDF"))
}

func TestExtract_EmptyPDF(t *testing.T) {
	got := New(nil).Extract(RawDocument{Extension: ".pdf"})

	require.False(t, got.OK())
	assert.Equal(t, FailureNoText, got.Failure.Kind)
}

func TestExtract_DOCXParagraphsThenTables(t *testing.T) {
	body := para("Jane Doe") +
		`<w:tbl><w:tr>` +
		`<w:tc>` + para("Skills") + `</w:tc>` +
		`<w:tc>` + para("Go, SQL") + `</w:tc>` +
		`</w:tr><w:tr>` +
		`<w:tc>` + para("") + `</w:tc>` +
		`<w:tc>` + para("Python") + `</w:tc>` +
		`</w:tr></w:tbl>` +
		para("  ") +
		para("Experience")

	got := New(nil).Extract(RawDocument{Data: buildDOCX(t, body), Extension: ".docx"})

	require.True(t, got.OK(), got.String())
	assert.Equal(t, "Jane Doe\nExperience\nSkills\nGo, SQL\nPython", got.Text)
}

func TestExtract_DOCXEmpty(t *testing.T) {
	got := New(nil).Extract(RawDocument{Data: buildDOCX(t, para(" ")), Extension: ".docx"})

	require.False(t, got.OK())
	assert.Equal(t, FailureNoText, got.Failure.Kind)
	assert.Equal(t, "No readable text found in document", got.String())
}

func TestExtract_BinaryDOC(t *testing.T) {
	got := New(nil).Extract(RawDocument{Data: []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1}, Extension: ".doc"})

	require.False(t, got.OK())
	assert.Equal(t, FailureCorrupt, got.Failure.Kind)
	assert.True(t, strings.HasPrefix(got.String(), "Error reading DOCX"))
}

func TestExtract_TXTEncodings(t *testing.T) {
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("Résumé text"))
	require.NoError(t, err)
	latin1, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("Résumé text"))
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"utf-8", []byte("  Résumé text \n")},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte("Résumé text")...)},
		{"utf-16 bom", utf16},
		{"latin-1", latin1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(nil).Extract(RawDocument{Data: tt.data, Extension: ".txt"})

			require.True(t, got.OK(), got.String())
			assert.Equal(t, "Résumé text", got.Text)
		})
	}
}

func TestExtract_TXTEmpty(t *testing.T) {
	got := New(nil).Extract(RawDocument{Data: []byte(" \n\t "), Extension: ".txt"})

	require.False(t, got.OK())
	assert.Equal(t, FailureNoText, got.Failure.Kind)
	assert.Equal(t, "Empty text file", got.String())
}
