package staff

import (
	"strings"
	"testing"
)

func TestRandomRatNameShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		name := RandomRatName()
		if name == "" {
			t.Fatal("Expected a non-empty name")
		}
		parts := strings.Fields(name)
		if len(parts) < 2 || len(parts) > 3 {
			t.Errorf("Expected 'First [Middle] Last', got %q", name)
		}
	}
}

func TestRandomRatNameVariety(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[RandomRatName()] = true
	}
	if len(seen) < 10 {
		t.Errorf("Expected a varied name pool, got only %d distinct names", len(seen))
	}
}
