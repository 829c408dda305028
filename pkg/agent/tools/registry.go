package tools

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrToolNotFound indicates the model nominated an unregistered tool.
	ErrToolNotFound = errors.New("unknown tool")

	// ErrToolArguments indicates the tool's structured arguments failed
	// schema validation. Fed back to the model as a retryable correction,
	// never surfaced to the end user directly.
	ErrToolArguments = errors.New("invalid tool arguments")
)

// Registry manages available tools
type Registry struct {
	tools map[string]*Tool
	mu    sync.RWMutex
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*Tool),
	}
}

// Register adds a tool to the registry
func (r *Registry) Register(tool *Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name] = tool
}

// Get returns a tool by name
func (r *Registry) Get(name string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Definitions returns all tool definitions (for LLM)
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, t.ToDefinition())
	}
	return defs
}

// Names returns all registered tool names
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Execute validates the input against the named tool's declared schema
// and runs its handler.
func (r *Registry) Execute(ctx context.Context, name string, input map[string]any) (any, error) {
	r.mu.RLock()
	tool, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	if err := validateInput(tool, input); err != nil {
		return nil, err
	}

	return tool.Handler(ctx, input)
}

// validateInput checks required keys and value types against the tool's
// JSON schema. Numbers arrive from JSON decoding as float64.
func validateInput(tool *Tool, input map[string]any) error {
	props, _ := tool.Parameters["properties"].(map[string]any)

	if required, ok := tool.Parameters["required"].([]string); ok {
		for _, name := range required {
			if _, present := input[name]; !present {
				return fmt.Errorf("%w: %s is missing required parameter %q", ErrToolArguments, tool.Name, name)
			}
		}
	}

	for name, value := range input {
		schema, ok := props[name].(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s does not accept parameter %q", ErrToolArguments, tool.Name, name)
		}
		if value == nil {
			continue
		}

		wantType, _ := schema["type"].(string)
		if !typeMatches(wantType, value) {
			return fmt.Errorf("%w: parameter %q of %s must be of type %s", ErrToolArguments, name, tool.Name, wantType)
		}
	}

	return nil
}

func typeMatches(wantType string, value any) bool {
	switch wantType {
	case "string":
		_, ok := value.(string)
		return ok
	case "integer", "number":
		switch value.(type) {
		case float64, float32, int, int64:
			return true
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	}
	return true
}
