package domain

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestImageDecodeError_Is(t *testing.T) {
	err := NewImageDecodeError("shots/a.jpg", fs.ErrNotExist)

	if !errors.Is(err, ErrImageDecode) {
		t.Error("expected errors.Is(err, ErrImageDecode)")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected cause to be reachable")
	}

	var ide *ImageDecodeError
	if !errors.As(err, &ide) {
		t.Fatal("expected errors.As to find ImageDecodeError")
	}
	if ide.Path != "shots/a.jpg" {
		t.Errorf("Path = %q", ide.Path)
	}
}

func TestImageDecodeError_Message(t *testing.T) {
	err := NewImageDecodeError("shots/a.jpg", errors.New("unexpected EOF"))
	msg := err.Error()
	if !strings.Contains(msg, "shots/a.jpg") || !strings.Contains(msg, "unexpected EOF") {
		t.Errorf("unexpected message: %q", msg)
	}

	bare := NewImageDecodeError("x.png", nil)
	if bare.Error() != "image decode failed: x.png" {
		t.Errorf("unexpected message: %q", bare.Error())
	}
}
