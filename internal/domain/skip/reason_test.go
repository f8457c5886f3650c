package skip

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kailas-cloud/pagecluster/internal/domain"
)

func TestClass(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"decode", domain.NewImageDecodeError("x.png", errors.New("eof")), ClassDecode},
		{"render", fmt.Errorf("render failed: timeout: %w", domain.ErrRenderFailed), ClassRender},
		{"invalid", fmt.Errorf("empty filename: %w", domain.ErrInvalidDocument), ClassInvalid},
		{"duplicate", fmt.Errorf("a.html: %w", domain.ErrDuplicateDocument), ClassDuplicate},
		{"other", errors.New("boom"), ClassOther},
		{"nil", nil, ClassOther},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Class(tc.err); got != tc.want {
				t.Errorf("Class() = %q, want %q", got, tc.want)
			}
		})
	}
}
