package ingestion

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported resume formats.
const (
	FormatText = "text/plain"
	FormatPDF  = "application/pdf"
	FormatDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// PlaceholderPrefix starts the text stored in place of a resume that could not be read.
const PlaceholderPrefix = "Error extracting text: "

// ExtractionError reports a resume that could not be turned into text.
type ExtractionError struct {
	Path    string
	Format  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	msg := e.Message
	if e.Format != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Format)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// FormatForPath maps a file extension to a supported format, or "" when unsupported.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text", ".md":
		return FormatText
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	default:
		return ""
	}
}

// ExtractResumeText reads a resume file and returns its cleaned text.
func ExtractResumeText(path string) (string, error) {
	format := FormatForPath(path)
	if format == "" {
		return "", &ExtractionError{Path: path, Message: fmt.Sprintf("unsupported file type %q", filepath.Ext(path))}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &ExtractionError{Path: path, Message: "file not found", Cause: err}
		}
		return "", &ExtractionError{Path: path, Message: "failed to read file", Cause: err}
	}

	text, err := ExtractBytes(format, data)
	if err != nil {
		if ee, ok := err.(*ExtractionError); ok {
			ee.Path = path
			return "", ee
		}
		return "", err
	}
	return text, nil
}

// ExtractBytes converts an in-memory document of the given format into cleaned text.
func ExtractBytes(format string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch format {
	case FormatText:
		text = string(data)
	case FormatPDF:
		text, err = extractPDFText(bytes.NewReader(data), int64(len(data)))
	case FormatDOCX:
		text, err = extractDocxText(bytes.NewReader(data), int64(len(data)))
	default:
		return "", &ExtractionError{Format: format, Message: "unsupported file type"}
	}
	if err != nil {
		return "", &ExtractionError{Format: format, Message: "failed to extract text", Cause: err}
	}
	return CleanText(text), nil
}

// TextOrPlaceholder returns text, or the placeholder stored for a failed extraction.
// The placeholder is scored as ordinary resume text downstream.
func TextOrPlaceholder(text string, err error) string {
	if err != nil {
		return PlaceholderPrefix + err.Error()
	}
	return text
}

// IsPlaceholder reports whether text is an extraction-failure placeholder.
func IsPlaceholder(text string) bool {
	return strings.HasPrefix(text, PlaceholderPrefix)
}

func extractPDFText(reader io.ReaderAt, size int64) (text string, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	pdfReader, err := pdf.NewReader(reader, size)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

func extractDocxText(reader io.ReaderAt, size int64) (string, error) {
	doc, err := docx.ReadDocxFromMemory(reader, size)
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return documentXMLText(doc.Editable().GetContent())
}

// documentXMLText collects the w:t runs of a WordprocessingML body, one line per paragraph.
func documentXMLText(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			case "br":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
