// Package types contains shared conversation types with no internal
// dependencies.
package types

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"

	// RoleNote marks a system-injected message holding serialized
	// identifiers extracted from a prior tool result. Notes are rendered
	// to the model as assistant context so follow-up requests like
	// "book the second one" can resolve listing and booking IDs.
	RoleNote Role = "system_note"
)

type Message struct {
	ID        string     `json:"id"`
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type ToolCall struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Input  map[string]any `json:"input"`
	Output any            `json:"output,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Conversation is the bounded per-session history. Each session carries
// its own Conversation keyed by ID; there is no process-wide buffer.
type Conversation struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.NewString(),
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Conversation) add(role Role, content string, toolCalls []ToolCall) *Message {
	msg := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		ToolCalls: toolCalls,
		CreatedAt: time.Now(),
	}
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	return &c.Messages[len(c.Messages)-1]
}

func (c *Conversation) AddUserMessage(content string) *Message {
	return c.add(RoleUser, content, nil)
}

func (c *Conversation) AddAssistantMessage(content string, toolCalls []ToolCall) *Message {
	return c.add(RoleAssistant, content, toolCalls)
}

// AddNote appends a system note carrying extracted identifiers.
func (c *Conversation) AddNote(content string) *Message {
	return c.add(RoleNote, content, nil)
}

// Trim evicts the oldest messages until at most n remain. FIFO only;
// called before each dispatch cycle so history never grows past the
// retention window.
func (c *Conversation) Trim(n int) {
	if n < 0 || len(c.Messages) <= n {
		return
	}
	c.Messages = c.Messages[len(c.Messages)-n:]
}

type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Input     string `json:"input_val"`
}

type ChatResponse struct {
	SessionID string     `json:"session_id"`
	MessageID string     `json:"message_id"`
	Output    string     `json:"output"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}
