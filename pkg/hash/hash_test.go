package hash

import (
	"testing"
)

func TestSHA256Hex(t *testing.T) {
	// Known SHA256 of "hello"
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := SHA256Hex("hello")
	if got != want {
		t.Errorf("SHA256Hex(\"hello\") = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Empty(t *testing.T) {
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got := SHA256Hex("")
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestIteratedSHA256(t *testing.T) {
	// 1 iteration should equal a single SHA256
	oneIter := IteratedSHA256("test", 1)
	single := SHA256Hex("test")
	if oneIter != single {
		t.Errorf("IteratedSHA256(\"test\", 1) = %s, want %s", oneIter, single)
	}

	// Multiple iterations should differ from single
	multiIter := IteratedSHA256("test", 5000)
	if multiIter == single {
		t.Error("5000 iterations should differ from single iteration")
	}

	// Same input should produce same output (deterministic)
	again := IteratedSHA256("test", 5000)
	if multiIter != again {
		t.Error("IteratedSHA256 should be deterministic")
	}
}

func TestHashUserID(t *testing.T) {
	userID := "user-550e8400-e29b-41d4-a716-446655440000"
	h := HashUserID(userID)

	// Should be 64 hex chars (SHA256 output)
	if len(h) != 64 {
		t.Errorf("HashUserID length = %d, want 64", len(h))
	}

	// Should be deterministic
	if h != HashUserID(userID) {
		t.Error("HashUserID should be deterministic")
	}

	// Different input should produce different output
	other := HashUserID("different-user")
	if h == other {
		t.Error("different user ids should produce different hashes")
	}
}

func TestShortHash(t *testing.T) {
	full := SHA256Hex("203.0.113.7")

	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"12 char prefix", "203.0.113.7", 12, full[:12]},
		{"4 char prefix", "203.0.113.7", 4, full[:4]},
		{"full hash if n too long", "203.0.113.7", 100, full},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShortHash(tt.input, tt.n)
			if got != tt.want {
				t.Errorf("ShortHash(%q, %d) = %s, want %s", tt.input, tt.n, got, tt.want)
			}
		})
	}
}
