package palette

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/rvail/lumen/internal/command"
)

// Entry is one selectable row in the palette.
type Entry struct {
	Name    string
	Context string
	Key     string // bound key, if any
}

// BuildEntries lists the commands runnable in ctx, annotated with their
// key bindings from the keymap overrides.
func BuildEntries(reg *command.Registry, ctx string, bindings map[string]string) []Entry {
	cmds := reg.Commands(ctx)
	entries := make([]Entry, 0, len(cmds))
	for _, c := range cmds {
		entries = append(entries, Entry{
			Name:    c.Name,
			Context: c.Context,
			Key:     bindings[c.Name],
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Context < entries[j].Context
	})
	return entries
}

// entryNames adapts entries to fuzzy's source interface.
type entryNames []Entry

func (e entryNames) String(i int) string { return e[i].Name }
func (e entryNames) Len() int            { return len(e) }

// FilterEntries ranks entries against query. An empty query keeps the
// original order.
func FilterEntries(entries []Entry, query string) []Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}
	matches := fuzzy.FindFrom(query, entryNames(entries))
	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}
	return out
}
