package document

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/pagecluster/internal/domain"
)

// MaxFilenameLength bounds the filename identifier of a rendered page.
const MaxFilenameLength = 1024

// Document is one rendered page: extracted text plus a screenshot location (immutable value object).
type Document struct {
	filename   string
	text       string
	screenshot string
}

// New validates and creates a Document.
// Filename is required and must not contain line breaks (it is written to the error log verbatim).
// Text may be empty; screenshot is required.
func New(filename, text, screenshot string) (Document, error) {
	if filename == "" {
		return Document{}, fmt.Errorf("filename is required: %w", domain.ErrInvalidDocument)
	}
	if len(filename) > MaxFilenameLength {
		return Document{}, fmt.Errorf("filename too long (max %d): %w", MaxFilenameLength, domain.ErrInvalidDocument)
	}
	if strings.ContainsAny(filename, "\r\n") {
		return Document{}, fmt.Errorf("filename must be a single line: %w", domain.ErrInvalidDocument)
	}
	if screenshot == "" {
		return Document{}, fmt.Errorf("screenshot path is required for %q: %w", filename, domain.ErrInvalidDocument)
	}
	return Document{filename: filename, text: text, screenshot: screenshot}, nil
}

// Reconstruct creates a Document without validation (test fixtures, trusted sources).
func Reconstruct(filename, text, screenshot string) Document {
	return Document{filename: filename, text: text, screenshot: screenshot}
}

// Filename returns the page identifier.
func (d Document) Filename() string { return d.filename }

// Text returns the extracted page text.
func (d Document) Text() string { return d.text }

// Screenshot returns the screenshot location.
func (d Document) Screenshot() string { return d.screenshot }
