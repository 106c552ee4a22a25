// Package tools dispatches named tool calls to the expense operations.
// Arguments arrive as a JSON-decoded mapping, the shape agent frameworks
// and the HTTP adapter both speak.
package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownTool reports a call to a name no tool was registered under.
var ErrUnknownTool = errors.New("unknown tool")

// Handler executes one tool call.
type Handler func(ctx context.Context, args map[string]any) (any, error)

type tool struct {
	name        string
	description string
	handler     Handler
}

// Registry maps tool names to handlers.
type Registry struct {
	tools map[string]tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]tool)}
}

func (r *Registry) Register(name, description string, h Handler) {
	r.tools[name] = tool{name: name, description: description, handler: h}
}

// Call invokes the named tool. Unknown names fail with ErrUnknownTool so
// adapters can distinguish misrouted calls from tool failures.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	return t.handler(ctx, args)
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Description returns the registered description for name, or "".
func (r *Registry) Description(name string) string {
	return r.tools[name].description
}
