package paginate

import (
	"errors"
	"testing"
)

func TestBookmarkAtPage(t *testing.T) {
	got, err := AtPage(7).Resolve(3, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}

	if _, err := AtPage(0).Resolve(3, 5); !errors.Is(err, ErrPageOutOfRange) {
		t.Fatalf("expected ErrPageOutOfRange, got %v", err)
	}
}

func TestBookmarkRelativeAnchors(t *testing.T) {
	// positive offsets anchor at the window end
	got, err := Relative(2).Resolve(3, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}

	// negative offsets anchor at the window start
	got, err = Relative(-1).Resolve(3, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestBookmarkRelativeOnFreshWindow(t *testing.T) {
	got, err := Relative(1).Resolve(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}

	if _, err := Relative(-1).Resolve(0, 0); !errors.Is(err, ErrPageOutOfRange) {
		t.Fatalf("expected ErrPageOutOfRange, got %v", err)
	}
}

func TestBookmarkBelowOne(t *testing.T) {
	if _, err := Relative(-5).Resolve(3, 5); !errors.Is(err, ErrPageOutOfRange) {
		t.Fatalf("expected ErrPageOutOfRange, got %v", err)
	}
}
