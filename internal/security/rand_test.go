package security

import (
	"strings"
	"testing"
)

func TestNewGenerator_LengthAndAlphabet(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{name: "room code length", length: 12},
		{name: "session id length", length: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewGenerator(tt.length)
			if err != nil {
				t.Fatalf("NewGenerator(%d): %v", tt.length, err)
			}
			id := gen()
			if len(id) != tt.length {
				t.Fatalf("len = %d, want %d", len(id), tt.length)
			}
			for _, c := range id {
				if !strings.ContainsRune(alphanumeric, c) {
					t.Fatalf("id %q contains %q outside the alphabet", id, c)
				}
			}
		})
	}
}

func TestNewGenerator_InvalidLength(t *testing.T) {
	if _, err := NewGenerator(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}

func TestGenerator_NoImmediateRepeats(t *testing.T) {
	gen, err := NewGenerator(12)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen()
		if seen[id] {
			t.Fatalf("generator repeated %q within 1000 draws", id)
		}
		seen[id] = true
	}
}
