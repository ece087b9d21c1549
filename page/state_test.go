package page

import (
	"errors"
	"testing"
)

func TestNewSuccessRequiresItems(t *testing.T) {
	var seq Sequence

	if _, err := NewSuccess[string](&seq, 1, nil); !errors.Is(err, ErrEmptySuccess) {
		t.Fatalf("expected ErrEmptySuccess, got %v", err)
	}
	if _, err := NewSuccess(&seq, 1, []string{}); !errors.Is(err, ErrEmptySuccess) {
		t.Fatalf("expected ErrEmptySuccess, got %v", err)
	}

	st, err := NewSuccess(&seq, 1, []string{"a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Kind() != KindSuccess {
		t.Errorf("expected KindSuccess, got %v", st.Kind())
	}
}

func TestConstructorsValidatePage(t *testing.T) {
	var seq Sequence

	if _, err := NewProgress[int](&seq, 0, nil); err == nil {
		t.Error("NewProgress accepted page 0")
	}
	if _, err := NewEmpty[int](&seq, -3); err == nil {
		t.Error("NewEmpty accepted page -3")
	}
	if _, err := NewError[int](&seq, 0, errors.New("boom"), nil); err == nil {
		t.Error("NewError accepted page 0")
	}
}

func TestEmptyIsTheOnlyEmptySuccessLike(t *testing.T) {
	var seq Sequence

	st, err := NewEmpty[int](&seq, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Kind() != KindEmpty {
		t.Fatalf("expected KindEmpty, got %v", st.Kind())
	}
	if len(st.Items()) != 0 {
		t.Errorf("empty page holds %d items", len(st.Items()))
	}
}

func TestIdentityEquality(t *testing.T) {
	var seq Sequence

	a, _ := NewSuccess(&seq, 1, []string{"x"})
	b, _ := NewSuccess(&seq, 1, []string{"x"})

	if a.Equal(b) {
		t.Error("structurally identical states with different identities compare equal")
	}
	if !a.Equal(a) {
		t.Error("state does not equal itself")
	}
	if a.ID() >= b.ID() {
		t.Errorf("identities not increasing: %d then %d", a.ID(), b.ID())
	}
}

func TestCopyRetainsIdentity(t *testing.T) {
	var seq Sequence

	orig, _ := NewSuccess(&seq, 4, []string{"a", "b"})
	cp := orig.Copy()

	if cp.ID() != orig.ID() {
		t.Errorf("copy changed identity: %d != %d", cp.ID(), orig.ID())
	}
	if !cp.Equal(orig) {
		t.Error("default copy must compare equal to the original")
	}
	if cp.Page() != orig.Page() || len(cp.Items()) != len(orig.Items()) {
		t.Error("copy changed page or items")
	}
	if cp.Kind() != KindSuccess {
		t.Errorf("copy changed kind: %v", cp.Kind())
	}
}

func TestCopyRenumber(t *testing.T) {
	var seq Sequence

	orig, _ := NewEmpty[int](&seq, 2)
	cp := orig.Copy(Renumber(&seq))

	if cp.ID() == orig.ID() {
		t.Error("Renumber kept the original identity")
	}
	if cp.Equal(orig) {
		t.Error("renumbered copy still equals the original")
	}
	if cp.Kind() != KindEmpty {
		t.Errorf("copy changed kind: %v", cp.Kind())
	}
}

func TestCopyPreservesErrorCause(t *testing.T) {
	var seq Sequence
	cause := errors.New("fetch failed")

	orig, _ := NewError(&seq, 7, cause, []string{"cached"})
	cp := orig.Copy()

	if !errors.Is(cp.Err(), cause) {
		t.Errorf("copy lost the failure cause: %v", cp.Err())
	}
	if len(cp.Items()) != 1 {
		t.Errorf("copy lost the cached items: %d", len(cp.Items()))
	}
}

func TestOrderingByPageOnly(t *testing.T) {
	var seq Sequence

	lo, _ := NewSuccess(&seq, 2, []string{"z", "z", "z"})
	hi, _ := NewEmpty[string](&seq, 9)

	if !lo.Less(hi) || hi.Less(lo) {
		t.Error("ordering does not follow page index")
	}
	if lo.Compare(hi) != -1 || hi.Compare(lo) != 1 {
		t.Error("Compare does not follow page index")
	}

	same, _ := NewSuccess(&seq, 2, []string{"other"})
	if lo.Compare(same) != 0 {
		t.Error("states on the same page must compare 0 regardless of items")
	}
}

func TestSequenceStartsAtOne(t *testing.T) {
	var seq Sequence
	if got := seq.Next(); got != 1 {
		t.Fatalf("expected first identity 1, got %d", got)
	}
	if got := seq.Next(); got != 2 {
		t.Fatalf("expected second identity 2, got %d", got)
	}
}

func TestItemsAreClonedAtConstruction(t *testing.T) {
	var seq Sequence

	src := []string{"a", "b"}
	st, _ := NewSuccess(&seq, 1, src)
	src[0] = "mutated"

	if st.Items()[0] != "a" {
		t.Error("state shares the caller's slice")
	}
}
