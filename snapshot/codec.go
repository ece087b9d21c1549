package snapshot

import (
	"encoding/json"
	"fmt"
)

// Encode renders the snapshot as JSON.
func Encode[T any](s *Snapshot[T]) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return b, nil
}

// Decode parses a JSON snapshot and validates it. Unknown fields in the
// record are ignored for forward compatibility.
func Decode[T any](b []byte) (*Snapshot[T], error) {
	var s Snapshot[T]
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
