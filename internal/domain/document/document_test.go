package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/pagecluster/internal/domain"
)

func TestNew_Valid(t *testing.T) {
	doc, err := New("index.html", "hello world", "shots/tier1/index.html.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Filename() != "index.html" {
		t.Errorf("Filename() = %q", doc.Filename())
	}
	if doc.Text() != "hello world" {
		t.Errorf("Text() = %q", doc.Text())
	}
	if doc.Screenshot() != "shots/tier1/index.html.jpg" {
		t.Errorf("Screenshot() = %q", doc.Screenshot())
	}
}

func TestNew_EmptyTextAllowed(t *testing.T) {
	if _, err := New("blank.html", "", "blank.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		filename   string
		screenshot string
	}{
		{"empty filename", "", "a.jpg"},
		{"too long", strings.Repeat("f", MaxFilenameLength+1), "a.jpg"},
		{"newline", "a\nb.html", "a.jpg"},
		{"carriage return", "a\rb.html", "a.jpg"},
		{"no screenshot", "a.html", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.filename, "text", tc.screenshot)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrInvalidDocument) {
				t.Errorf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestReconstruct_NoValidation(t *testing.T) {
	doc := Reconstruct("", "t", "")
	if doc.Filename() != "" || doc.Text() != "t" {
		t.Errorf("unexpected document: %+v", doc)
	}
}
