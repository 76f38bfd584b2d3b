package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func buildPDF(t *testing.T, lines ...string) []byte {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		doc.Cell(0, 10, line)
		doc.Ln(10)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	cases := map[string]Format{
		"cv.pdf":        FormatPDF,
		"CV.PDF":        FormatPDF,
		"resume.DocX":   FormatDOCX,
		"notes.txt":     FormatTXT,
		" spaced.txt  ": FormatTXT,
	}
	for name, want := range cases {
		got, err := DetectFormat(name)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", name, err)
		}
		if got != want {
			t.Fatalf("%q: expected %s, got %s", name, want, got)
		}
	}

	if _, err := DetectFormat("old.doc"); !errors.Is(err, ErrLegacyDoc) || !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected legacy doc error, got %v", err)
	}
	for _, name := range []string{"photo.png", "noext", "archive.zip"} {
		if _, err := DetectFormat(name); !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("%q: expected unsupported format, got %v", name, err)
		}
	}
}

func TestExtractText_SizeCheckedBeforeParsing(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 12<<20)
	_, err := ExtractText(context.Background(), data, "huge.exe")
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected file too large, got %v", err)
	}

	ok := bytes.Repeat([]byte("a"), MaxUploadBytes)
	if _, err := ExtractText(context.Background(), ok, "limit.txt"); err != nil {
		t.Fatalf("expected file at the ceiling to pass, got %v", err)
	}
}

func TestExtractText_PDF(t *testing.T) {
	data := buildPDF(t, "Jane Doe", "Senior Engineer")
	text, err := ExtractText(context.Background(), data, "cv.pdf")
	if err != nil {
		t.Fatalf("extract pdf: %v", err)
	}
	if !strings.Contains(text, "Jane Doe") || !strings.Contains(text, "Senior Engineer") {
		t.Fatalf("unexpected pdf text: %q", text)
	}
}

func TestExtractText_BlankPDFIsEmptyContent(t *testing.T) {
	data := buildPDF(t)
	_, err := ExtractText(context.Background(), data, "scan.pdf")
	if !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected empty content, got %v", err)
	}
}

func TestExtractText_CorruptPDFIsParseError(t *testing.T) {
	_, err := ExtractText(context.Background(), []byte("%PDF-1.4 this is not a pdf"), "broken.pdf")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if pe.Format != FormatPDF {
		t.Fatalf("expected pdf format, got %s", pe.Format)
	}
	if !strings.Contains(pe.Error(), "Please try pasting your CV text manually") {
		t.Fatalf("unexpected message: %s", pe.Error())
	}
}

func TestExtractText_DOCXParagraphs(t *testing.T) {
	xmlBody := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t>Engineer</w:t></w:r><w:r><w:tab/><w:t>2020</w:t></w:r></w:p>
<w:p><w:r><w:t>Go</w:t><w:br/><w:t>SQL</w:t></w:r></w:p>
</w:body>
</w:document>`
	text, err := ExtractText(context.Background(), buildDocx(t, xmlBody), "cv.docx")
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	want := "Jane Doe\nEngineer\t2020\nGo\nSQL"
	if text != want {
		t.Fatalf("expected %q, got %q", want, text)
	}
}

func TestExtractText_ZipWithoutDocumentRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = ExtractText(context.Background(), buf.Bytes(), "renamed.docx")
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Format != FormatDOCX {
		t.Fatalf("expected docx parse error, got %v", err)
	}
}

func TestExtractText_EmptyDOCXBody(t *testing.T) {
	xmlBody := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p/></w:body></w:document>`
	_, err := ExtractText(context.Background(), buildDocx(t, xmlBody), "blank.docx")
	if !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected empty content, got %v", err)
	}
}

func TestExtractText_TXTEncodings(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{name: "utf8", data: []byte("  Jane Doe\r\nEngineer \n"), want: "Jane Doe\nEngineer"},
		{name: "utf8 bom", data: append([]byte{0xEF, 0xBB, 0xBF}, []byte("Zoë")...), want: "Zoë"},
		{name: "utf16le bom", data: []byte{0xFF, 0xFE, 'H', 0, 'i', 0}, want: "Hi"},
		{name: "utf16be bom", data: []byte{0xFE, 0xFF, 0, 'H', 0, 'i'}, want: "Hi"},
		{name: "windows-1252", data: []byte{'C', 'a', 'f', 0xE9, ' ', 0x93, 'x', 0x94}, want: "Café “x”"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractText(context.Background(), tc.data, "cv.txt")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestExtractText_WhitespaceOnlyTXT(t *testing.T) {
	_, err := ExtractText(context.Background(), []byte(" \n\t "), "blank.txt")
	if !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected empty content, got %v", err)
	}
}

func TestExtractText_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExtractText(ctx, []byte("text"), "cv.txt"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}
