// Package command implements the name-keyed command registry and dispatcher.
//
// Every viewer action (rotate, window-level, colormap, annotation edits) is
// registered here under a string name with optional bound default options
// and a context tag. The context menu, the command palette, and keyboard
// bindings all trigger actions through Run, so a command behaves
// identically no matter where it was invoked from.
package command

import (
	"fmt"
	"sync"
)

// Options is the option bag passed to command handlers.
type Options map[string]any

// Merge returns a copy of o with overlay's keys applied on top. Keys present
// in overlay win on conflict. Neither input is modified.
func (o Options) Merge(overlay Options) Options {
	merged := make(Options, len(o)+len(overlay))
	for k, v := range o {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

// Handler is a command implementation. It receives the merged option bag and
// may return a value: side-effect commands return nil, query commands return
// data consumed by the caller. An error is propagated unmodified to whoever
// invoked Run.
type Handler func(opts Options) (any, error)

// Command is a registry entry.
type Command struct {
	// Name is the dispatch key. The same name may be registered under
	// several contexts.
	Name string

	// Handler runs the command.
	Handler Handler

	// Bound holds default options merged under caller options at
	// invocation time. Caller keys win on conflict.
	Bound Options

	// Context tags which UI mode this entry applies to. Empty means the
	// command applies in any context.
	Context string
}

// NotFoundError is returned by Run when no command is registered under the
// requested name. It is never swallowed: an unregistered name is a wiring
// mistake that must surface at the call site.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command %q not registered", e.Name)
}

// ContextMismatchError is returned by Run when the name is registered but no
// entry matches the caller's context. The handler is not called.
type ContextMismatchError struct {
	Name    string
	Context string
}

func (e *ContextMismatchError) Error() string {
	return fmt.Sprintf("command %q not available in context %q", e.Name, e.Context)
}

// Registry is the dispatch table. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string][]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string][]Command)}
}

// Register adds a command. Registering the same name and context again
// replaces the previous entry; the same name under a different context is a
// distinct entry.
func (r *Registry) Register(cmd Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("register: command name is empty")
	}
	if cmd.Handler == nil {
		return fmt.Errorf("register %q: handler is nil", cmd.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.commands[cmd.Name]
	for i, e := range entries {
		if e.Context == cmd.Context {
			entries[i] = cmd
			return nil
		}
	}
	r.commands[cmd.Name] = append(entries, cmd)
	return nil
}

// Lookup returns the entry for name matching the caller context, if any.
// An entry registered without a context matches any caller context.
func (r *Registry) Lookup(name, context string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.match(name, context)
}

// match must be called with the lock held.
func (r *Registry) match(name, context string) (Command, bool) {
	for _, e := range r.commands[name] {
		if e.Context == "" || e.Context == context {
			return e, true
		}
	}
	return Command{}, false
}

// Run dispatches name with the caller's options and context. Bound options
// are merged under opts (caller wins on key conflicts) and the handler is
// called with the merged bag. The handler's return value is passed back
// verbatim; handler errors propagate unmodified.
//
// An unknown name returns *NotFoundError. A known name with no entry for the
// caller's context returns *ContextMismatchError without calling any handler.
func (r *Registry) Run(name string, opts Options, context string) (any, error) {
	r.mu.RLock()
	entries, known := r.commands[name]
	cmd, ok := r.match(name, context)
	r.mu.RUnlock()

	if !known || len(entries) == 0 {
		return nil, &NotFoundError{Name: name}
	}
	if !ok {
		return nil, &ContextMismatchError{Name: name, Context: context}
	}

	return cmd.Handler(cmd.Bound.Merge(opts))
}

// Names returns all registered command names in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	return names
}

// Commands returns the entries visible from the given context: entries
// registered for that context plus context-free entries. Used by the palette
// to list what the user can invoke right now.
func (r *Registry) Commands(context string) []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Command
	for _, entries := range r.commands {
		for _, e := range entries {
			if e.Context == "" || e.Context == context {
				out = append(out, e)
			}
		}
	}
	return out
}
