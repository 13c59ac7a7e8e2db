package overlay

import (
	"strings"
	"testing"
)

func TestCompose_SplicesAtPosition(t *testing.T) {
	base := strings.Join([]string{
		"aaaaaaaaaa",
		"bbbbbbbbbb",
		"cccccccccc",
	}, "\n")

	got := compose(base, "XX\nYY", 3, 1)
	lines := strings.Split(got, "\n")

	if lines[0] != "aaaaaaaaaa" {
		t.Errorf("line 0 = %q, must be untouched", lines[0])
	}
	if lines[1] != "bbbXXbbbbb" {
		t.Errorf("line 1 = %q, want bbbXXbbbbb", lines[1])
	}
	if lines[2] != "cccYYccccc" {
		t.Errorf("line 2 = %q, want cccYYccccc", lines[2])
	}
}

func TestCompose_PadsShortBaseLines(t *testing.T) {
	got := compose("ab", "ZZ", 5, 0)
	if got != "ab   ZZ" {
		t.Errorf("got %q, want %q", got, "ab   ZZ")
	}
}

func TestCompose_ExtendsBaseHeight(t *testing.T) {
	got := compose("one", "X\nX\nX", 0, 1)
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	for i := 1; i < 4; i++ {
		if lines[i] != "X" {
			t.Errorf("line %d = %q, want X", i, lines[i])
		}
	}
}

func TestCompose_RaggedOverlayPaddedToBlockWidth(t *testing.T) {
	base := strings.Join([]string{"1234567890", "1234567890"}, "\n")
	got := compose(base, "AAAA\nB", 2, 0)
	lines := strings.Split(got, "\n")

	if lines[0] != "12AAAA7890" {
		t.Errorf("line 0 = %q, want 12AAAA7890", lines[0])
	}
	// The short overlay line is padded to block width so the box edge
	// stays straight.
	if lines[1] != "12B   7890" {
		t.Errorf("line 1 = %q, want %q", lines[1], "12B   7890")
	}
}

func TestCompose_NegativeOffsetsClamped(t *testing.T) {
	got := compose("abcd", "X", -3, -2)
	if !strings.HasPrefix(got, "X") {
		t.Errorf("got %q, want overlay clamped to origin", got)
	}
}
