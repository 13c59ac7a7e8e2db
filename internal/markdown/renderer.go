// Package markdown renders help text to styled terminal output, caching
// renders by content and width.
package markdown

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/glamour"

	"github.com/rvail/lumen/internal/styles"
)

const (
	// minRenderWidth is the narrowest terminal that gets full markdown
	// rendering; below it content is plainly wrapped instead.
	minRenderWidth = 30

	maxCacheEntries = 64
)

// Renderer wraps glamour with a render cache. A renderer is sized to one
// width at a time; changing width rebuilds it and drops the cache.
type Renderer struct {
	mu     sync.RWMutex
	term   *glamour.TermRenderer
	width  int
	cache  map[uint64][]string
	logger *slog.Logger
}

// NewRenderer creates a markdown renderer.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{cache: make(map[uint64][]string), logger: logger}
}

// Render renders markdown to styled lines fitting width.
func (r *Renderer) Render(content string, width int) []string {
	if content == "" {
		return nil
	}
	if width < minRenderWidth {
		return WrapText(content, width)
	}

	key := cacheKey(content, width)
	r.mu.RLock()
	if lines, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return lines
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if lines, ok := r.cache[key]; ok {
		return lines
	}

	term, err := r.termRenderer(width)
	if err != nil {
		r.logger.Warn("markdown renderer init failed", "error", err)
		return WrapText(content, width)
	}
	out, err := term.Render(content)
	if err != nil {
		r.logger.Warn("markdown render failed", "error", err)
		return WrapText(content, width)
	}

	lines := strings.Split(strings.TrimRight(out, "\n\r\t "), "\n")
	if len(r.cache) >= maxCacheEntries {
		r.cache = make(map[uint64][]string)
	}
	r.cache[key] = lines
	return lines
}

func cacheKey(content string, width int) uint64 {
	h := xxhash.New()
	h.WriteString(content)
	h.Write([]byte{byte(width >> 8), byte(width)})
	return h.Sum64()
}

// termRenderer returns the glamour renderer for width, rebuilding it when
// the width changed. Caller holds the write lock.
func (r *Renderer) termRenderer(width int) (*glamour.TermRenderer, error) {
	if r.term != nil && r.width == width {
		return r.term, nil
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithStylePath(styles.MarkdownTheme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.term = term
	r.width = width
	r.cache = make(map[uint64][]string)
	return term, nil
}

// WrapText word-wraps plain text to maxWidth, used when the terminal is too
// narrow for markdown.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}
	words := strings.Fields(strings.ReplaceAll(text, "\n", " "))
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) <= maxWidth {
			line += " " + word
			continue
		}
		lines = append(lines, line)
		line = word
	}
	return append(lines, line)
}
