package markdown

import (
	"testing"
)

func TestWrapText(t *testing.T) {
	lines := WrapText("one two three four five", 9)
	for i, line := range lines {
		if len(line) > 9 {
			t.Errorf("line %d %q exceeds width", i, line)
		}
	}
	if len(lines) < 2 {
		t.Errorf("expected wrapping, got %v", lines)
	}

	if got := WrapText("", 20); got != nil {
		t.Errorf("empty text should wrap to nil, got %v", got)
	}
	if got := WrapText("abc", 0); len(got) != 1 {
		t.Errorf("non-positive width should pass text through, got %v", got)
	}
}

func TestRender_NarrowFallsBackToWrap(t *testing.T) {
	r := NewRenderer(nil)
	lines := r.Render("# Heading\n\nsome body text", 10)
	if len(lines) == 0 {
		t.Fatal("no output")
	}
	// Plain wrapping keeps the literal hash marker in the output.
	if lines[0] != "# Heading" {
		t.Errorf("narrow render should be plain wrapped text, got %v", lines)
	}
}

func TestRender_EmptyContent(t *testing.T) {
	r := NewRenderer(nil)
	if got := r.Render("", 80); got != nil {
		t.Errorf("empty content should render to nil, got %v", got)
	}
}

func TestRender_CachesByContentAndWidth(t *testing.T) {
	if cacheKey("a", 80) == cacheKey("a", 81) {
		t.Error("width must participate in the cache key")
	}
	if cacheKey("a", 80) == cacheKey("b", 80) {
		t.Error("content must participate in the cache key")
	}
	if cacheKey("a", 80) != cacheKey("a", 80) {
		t.Error("cache key must be stable")
	}
}
