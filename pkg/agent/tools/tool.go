// Package tools manages the fixed set of capabilities the agent can
// invoke: definitions for the model, argument validation, execution and
// per-tool result extraction.
package tools

import "context"

// Tool defines a capability the agent can use
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
	Handler     Handler        `json:"-"`

	// Extract, when set, mines identifier references out of this tool's
	// raw result. Each tool declares its own extraction at registration;
	// nothing dispatches on tool name strings elsewhere.
	Extract ExtractFn `json:"-"`

	// NoteLabel prefixes the serialized identifiers in the system note
	// injected back into the conversation.
	NoteLabel string `json:"-"`
}

// Handler executes a tool and returns the result
type Handler func(ctx context.Context, input map[string]any) (any, error)

// ExtractFn pulls identifier mappings from a raw tool result. A nil
// return means nothing to inject; implementations must swallow
// structural failures rather than panic or error.
type ExtractFn func(raw any) []map[string]any

// Definition returns the tool definition without the handler (for LLM)
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ToDefinition converts a Tool to a Definition
func (t *Tool) ToDefinition() Definition {
	return Definition{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}
