package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat indicates the file extension is not handled.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// ErrNoContent indicates a PDF yielded no extractable text by either
// extraction strategy. Parseable but empty txt/docx files are not an error.
var ErrNoContent = errors.New("document has no extractable text")

// SupportedExtensions lists the accepted upload extensions, dot included.
var SupportedExtensions = []string{".pdf", ".doc", ".docx", ".txt"}

// IsSupported reports whether the filename carries a supported extension.
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// Text extracts plain text from a regulatory document on disk. The format is
// chosen by file extension; output is whitespace-trimmed.
func Text(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return pdfText(path)
	case ".doc", ".docx":
		return docxText(path)
	case ".txt":
		return txtText(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
	}
}

// pdfText extracts row-ordered text page by page, falling back to the plain
// text stream when row extraction yields nothing.
func pdfText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer file.Close()

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, rowErr := page.GetTextByRow()
		if rowErr != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				builder.WriteString(word.S)
			}
			builder.WriteString("\n")
		}
	}

	text := strings.TrimSpace(builder.String())
	if text != "" {
		return text, nil
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var fallback strings.Builder
	if _, err := io.Copy(&fallback, plain); err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	text = strings.TrimSpace(fallback.String())
	if text == "" {
		return "", ErrNoContent
	}
	return text, nil
}

func docxText(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat docx: %w", err)
	}

	doc, err := docx.Parse(file, info.Size())
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var builder strings.Builder
	for _, item := range doc.Document.Body.Items {
		paragraph, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		builder.WriteString(paragraph.String())
		builder.WriteString("\n")
	}

	// A parseable document with no text is a valid empty result.
	return strings.TrimSpace(builder.String()), nil
}

func txtText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read txt: %w", err)
	}
	return strings.TrimSpace(string(content)), nil
}
