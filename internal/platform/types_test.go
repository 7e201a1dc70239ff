package platform

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mj1618/storeshots/internal/model"
)

func TestViewport_Validate(t *testing.T) {
	tests := []struct {
		v       Viewport
		wantErr bool
	}{
		{DefaultViewport, false},
		{Viewport{Width: 1, Height: 1}, false},
		{Viewport{Width: 0, Height: 100}, true},
		{Viewport{Width: 100, Height: -1}, true},
	}
	for _, tt := range tests {
		err := tt.v.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
		}
	}
}

func TestElementAt(t *testing.T) {
	refs := []model.ElementRef{{Index: 0, Title: "A"}, {Index: 1, Title: "B"}}

	ref, err := ElementAt(refs, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Title != "B" {
		t.Errorf("expected B, got %q", ref.Title)
	}

	for _, idx := range []int{-1, 2, 5} {
		_, err := ElementAt(refs, idx)
		if !errors.Is(err, ErrElementNotFound) {
			t.Errorf("index %d: expected ErrElementNotFound, got %v", idx, err)
		}
		var nf *ElementNotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("index %d: expected *ElementNotFoundError", idx)
		}
		if nf.Index != idx || nf.Count != 2 {
			t.Errorf("index %d: unexpected error fields %+v", idx, nf)
		}
	}
}

func TestElementAt_Empty(t *testing.T) {
	_, err := ElementAt(nil, 0)
	if err == nil || err.Error() != "element not found: no button at index 0 (0 on screen)" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStaleRef_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("tap: %w", StaleRef(model.ElementRef{Index: 0, ID: 3, Generation: 1}))
	if !errors.Is(err, ErrElementNotFound) {
		t.Errorf("expected wrapped stale ref to match ErrElementNotFound: %v", err)
	}
	var nf *ElementNotFoundError
	if !errors.As(err, &nf) || nf.Ref == nil || nf.Ref.ID != 3 {
		t.Errorf("expected ref to be preserved, got %+v", nf)
	}
}
