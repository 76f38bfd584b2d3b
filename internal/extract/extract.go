package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MaxUploadBytes is the largest file accepted for extraction.
const MaxUploadBytes = 10 << 20

// Format is a supported upload type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

var (
	ErrFileTooLarge      = errors.New("File is too large. Maximum size is 10MB.")
	ErrUnsupportedFormat = errors.New("Unsupported file format. Please upload PDF, Word (.docx), or TXT files.")
	ErrEmptyContent      = errors.New("File appears to be empty or image-based. Please paste your CV text manually.")
	// ErrLegacyDoc is an ErrUnsupportedFormat with advice for .doc files.
	ErrLegacyDoc error = legacyDocError{}
)

type legacyDocError struct{}

func (legacyDocError) Error() string {
	return "Old .doc format is not supported. Please save as .docx or paste your CV text manually."
}

func (legacyDocError) Unwrap() error { return ErrUnsupportedFormat }

// ParseError reports a file the parser for its format could not read.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Failed to parse file: %v. Please try pasting your CV text manually.", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

const mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DetectFormat maps a file name onto a supported format by extension.
func DetectFormat(fileName string) (Format, error) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(fileName))) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt":
		return FormatTXT, nil
	case ".doc":
		return "", ErrLegacyDoc
	default:
		return "", ErrUnsupportedFormat
	}
}

// ExtractText returns the trimmed plain text of an uploaded CV. The size
// ceiling is enforced before any parsing.
func ExtractText(ctx context.Context, data []byte, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) > MaxUploadBytes {
		return "", ErrFileTooLarge
	}
	format, err := DetectFormat(fileName)
	if err != nil {
		return "", err
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatTXT:
		text, err = decodeText(data)
	}
	if err != nil {
		return "", &ParseError{Format: format, Err: err}
	}

	text = strings.TrimSpace(strings.ToValidUTF8(text, ""))
	if text == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}

func extractPDF(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", nil
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}
	if mapOOXMLFromZip(zr) != mimeDOCX {
		return "", errors.New("not a Word document")
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(io.LimitReader(rc, 4*MaxUploadBytes))
	if err != nil {
		return "", err
	}

	return stripDocxXML(raw)
}

// stripDocxXML keeps run text, turning paragraphs and breaks into newlines
// and tabs into tab characters.
func stripDocxXML(raw []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var buf strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				buf.WriteString("\t")
			}
		case xml.CharData:
			if inText {
				buf.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p", "br":
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return buf.String(), nil
}

func mapOOXMLFromZip(zr *zip.Reader) string {
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		switch name {
		case "word/document.xml":
			return mimeDOCX
		case "xl/workbook.xml":
			return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		case "ppt/presentation.xml":
			return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
		}
	}
	return ""
}

// decodeText reads UTF-8 or BOM-marked UTF-16, falling back to Windows-1252
// when the bytes are not valid UTF-8.
func decodeText(data []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err == nil && utf8.Valid(decoded) {
		return strings.ReplaceAll(string(decoded), "\r\n", "\n"), nil
	}
	decoded, err = charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(decoded), "\r\n", "\n"), nil
}
