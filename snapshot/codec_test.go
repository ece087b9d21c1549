package snapshot

import (
	"path/filepath"
	"testing"
)

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	raw := `{
		"entries": [{"page": 1, "type": "SUCCESS", "data": ["a"], "wasDirty": false, "futureField": 42}],
		"startContextPage": 1,
		"endContextPage": 1,
		"capacity": 20,
		"anotherFutureField": "x"
	}`

	snap, err := Decode[string]([]byte(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(snap.Entries) != 1 || snap.Entries[0].Page != 1 {
		t.Fatalf("unexpected entries: %+v", snap.Entries)
	}
	if snap.Capacity != 20 {
		t.Errorf("capacity: %d", snap.Capacity)
	}
}

func TestValidateRejectsBadRecords(t *testing.T) {
	cases := []struct {
		name string
		snap Snapshot[string]
	}{
		{"page zero", Snapshot[string]{
			Entries: []Entry[string]{{Page: 0, Type: TypeEmpty}},
		}},
		{"unknown type", Snapshot[string]{
			Entries: []Entry[string]{{Page: 1, Type: "PROGRESS"}},
		}},
		{"success without data", Snapshot[string]{
			Entries: []Entry[string]{{Page: 1, Type: TypeSuccess}},
		}},
		{"empty with data", Snapshot[string]{
			Entries: []Entry[string]{{Page: 1, Type: TypeEmpty, Data: []string{"x"}}},
		}},
		{"end before start", Snapshot[string]{
			StartContextPage: 5, EndContextPage: 3,
		}},
		{"half-started window", Snapshot[string]{
			StartContextPage: 0, EndContextPage: 3,
		}},
	}

	for _, tc := range cases {
		if err := tc.snap.Validate(); err == nil {
			t.Errorf("%s: validation passed", tc.name)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	snap := &Snapshot[string]{
		Entries: []Entry[string]{
			{Page: 3, Type: TypeSuccess, Data: []string{"a", "b"}, WasDirty: true},
			{Page: 4, Type: TypeEmpty},
		},
		StartContextPage: 3,
		EndContextPage:   4,
		Capacity:         2,
	}

	b, err := Encode(snap)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := Decode[string](b)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got.Entries) != 2 || !got.Entries[0].WasDirty || got.Entries[1].Type != TypeEmpty {
		t.Fatalf("round trip mangled entries: %+v", got.Entries)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs := NewFileStore[string](filepath.Join(t.TempDir(), "state", "cache.json"))

	snap := &Snapshot[string]{
		Entries:          []Entry[string]{{Page: 1, Type: TypeSuccess, Data: []string{"x"}}},
		StartContextPage: 1,
		EndContextPage:   1,
		Capacity:         10,
	}
	if err := fs.Save(snap); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := fs.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.StartContextPage != 1 || got.EndContextPage != 1 || len(got.Entries) != 1 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestRedisStoreNilClient(t *testing.T) {
	rs := NewRedisStore[string](nil, "pagecore:snapshot")

	if err := rs.Save(t.Context(), &Snapshot[string]{}); err != nil {
		t.Fatalf("nil-client save failed: %v", err)
	}
	snap, err := rs.Load(t.Context())
	if err != nil || snap != nil {
		t.Fatalf("nil-client load: snap=%v err=%v", snap, err)
	}
	if err := rs.Delete(t.Context()); err != nil {
		t.Fatalf("nil-client delete failed: %v", err)
	}
}
