package batch

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/pagecluster/internal/domain/cluster"
)

func TestNewOK(t *testing.T) {
	item := cluster.Item{Filename: "a.html", Text: []float64{1}, Image: []float64{1}}
	r := NewOK(item)
	if r.Filename() != "a.html" {
		t.Errorf("Filename() = %q", r.Filename())
	}
	if r.Status() != StatusOK {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusOK)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
	if r.Item().Filename != "a.html" || len(r.Item().Text) != 1 {
		t.Errorf("Item() = %+v", r.Item())
	}
}

func TestNewSkipped(t *testing.T) {
	err := errors.New("broken screenshot")
	r := NewSkipped("b.html", err)
	if r.Filename() != "b.html" {
		t.Errorf("Filename() = %q", r.Filename())
	}
	if r.Status() != StatusSkipped {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusSkipped)
	}
	if !errors.Is(r.Err(), err) {
		t.Errorf("Err() = %v, want %v", r.Err(), err)
	}
	if r.Item().Text != nil {
		t.Errorf("Item() should be empty, got %+v", r.Item())
	}
}

func TestStatusConstants(t *testing.T) {
	if StatusOK != "ok" {
		t.Errorf("StatusOK = %q", StatusOK)
	}
	if StatusSkipped != "skipped" {
		t.Errorf("StatusSkipped = %q", StatusSkipped)
	}
}
