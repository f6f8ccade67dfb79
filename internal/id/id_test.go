package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	id := Generate("merge")

	// Check format
	if !strings.HasPrefix(id, "merge-") {
		t.Errorf("expected ID to start with 'merge-', got %s", id)
	}
	if parts := strings.Split(id, "-"); len(parts) != 3 || len(parts[2]) != 12 {
		t.Errorf("unexpected ID layout: %s", id)
	}

	// Check uniqueness
	id2 := Generate("merge")
	if id == id2 {
		t.Error("expected different IDs for consecutive calls")
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := Generate("frame")
		if seen[id] {
			t.Errorf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
