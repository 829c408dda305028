// Package agent orchestrates conversations: it asks the model to answer
// or pick a tool, executes tool calls, injects extracted identifiers
// back into the session history and enforces the answer contract.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/stayscout/stayscout/pkg/agent/conversation"
	"github.com/stayscout/stayscout/pkg/agent/llm"
	"github.com/stayscout/stayscout/pkg/agent/tools"
	"github.com/stayscout/stayscout/pkg/agent/types"
)

// Re-export types for convenience
type (
	Message      = types.Message
	Role         = types.Role
	ToolCall     = types.ToolCall
	Conversation = types.Conversation
	ChatRequest  = types.ChatRequest
	ChatResponse = types.ChatResponse
)

const (
	RoleUser      = types.RoleUser
	RoleAssistant = types.RoleAssistant
	RoleNote      = types.RoleNote
)

var NewConversation = types.NewConversation

// Agent runs the decide-act loop over a per-session conversation.
type Agent struct {
	provider     llm.Provider
	convStore    conversation.Store
	tools        *tools.Registry
	config       Config
	logger       *slog.Logger
	systemPrompt string
}

// Option configures the agent
type Option func(*Agent)

// WithConfig sets the agent config
func WithConfig(cfg Config) Option {
	return func(a *Agent) { a.config = cfg }
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) { a.logger = logger }
}

// New creates a new agent
func New(provider llm.Provider, convStore conversation.Store, toolRegistry *tools.Registry, opts ...Option) *Agent {
	a := &Agent{
		provider:     provider,
		convStore:    convStore,
		tools:        toolRegistry,
		config:       DefaultConfig(),
		logger:       slog.Default(),
		systemPrompt: buildSystemPrompt(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Chat handles one user input. The session's history is trimmed to the
// retention window before dispatching, and identifiers extracted from
// tool results are appended as system notes so later turns can resolve
// references like "book the second one".
func (a *Agent) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if a.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.RequestTimeout)
		defer cancel()
	}

	var conv *types.Conversation
	var err error

	if req.SessionID != "" {
		conv, err = a.convStore.Get(ctx, req.SessionID)
		if err != nil {
			return nil, fmt.Errorf("loading conversation: %w", err)
		}
	}
	if conv == nil {
		conv = NewConversation()
	}

	conv.Trim(a.config.HistoryWindow)
	conv.AddUserMessage(req.Input)

	answer, toolCalls, notes, err := a.runLoop(ctx, conv.Messages)
	if err != nil {
		return nil, fmt.Errorf("agent loop: %w", err)
	}

	msg := conv.AddAssistantMessage(answer, toolCalls)
	for _, note := range notes {
		conv.AddNote(note)
	}

	if err := a.convStore.Save(ctx, conv); err != nil {
		return nil, fmt.Errorf("saving conversation: %w", err)
	}

	return &ChatResponse{
		SessionID: conv.ID,
		MessageID: msg.ID,
		Output:    answer,
		ToolCalls: toolCalls,
	}, nil
}

// GetConversation returns a conversation by ID
func (a *Agent) GetConversation(ctx context.Context, id string) (*types.Conversation, error) {
	return a.convStore.Get(ctx, id)
}

func (a *Agent) runLoop(ctx context.Context, history []Message) (string, []ToolCall, []string, error) {
	var (
		allToolCalls []ToolCall
		notes        []string
		badAnswers   int
	)

	llmMessages := toLLMMessages(history)
	defs := a.toolDefinitions()

	for turn := 0; turn < a.config.MaxTurns; turn++ {
		resp, err := a.provider.Chat(ctx, llm.Request{
			Model:        a.config.Model,
			System:       a.systemPrompt,
			Messages:     llmMessages,
			Tools:        defs,
			MaxTokens:    a.config.MaxTokens,
			Temperature:  a.config.Temperature,
			JSONResponse: true,
		})
		if err != nil {
			return "", nil, nil, err
		}

		if resp.StopReason == llm.StopReasonToolUse {
			assistantMsg := llm.Message{
				Role:      llm.RoleAssistant,
				Content:   resp.Content,
				ToolCalls: resp.ToolCalls,
			}
			llmMessages = append(llmMessages, assistantMsg)

			for _, tc := range resp.ToolCalls {
				output, toolErr := a.executeTool(ctx, tc)

				toolCall := ToolCall{ID: tc.ID, Name: tc.Name, Input: tc.Input}

				var resultContent string
				if toolErr != nil {
					// Validation and execution failures go back to the
					// model as corrections; the conversation continues.
					toolCall.Error = toolErr.Error()
					resultContent = fmt.Sprintf("Error: %v. Please correct the arguments or try another tool.", toolErr)
					a.logger.Warn("tool call failed",
						slog.String("tool", tc.Name),
						slog.String("error", toolErr.Error()),
					)
				} else {
					toolCall.Output = output
					b, _ := json.Marshal(output)
					resultContent = string(b)

					if note, ok := a.extractNote(tc.Name, output); ok {
						notes = append(notes, note)
					}
				}

				allToolCalls = append(allToolCalls, toolCall)

				llmMessages = append(llmMessages, llm.Message{
					Role: llm.RoleTool,
					ToolResult: &llm.ToolResult{
						ToolCallID: tc.ID,
						Content:    resultContent,
						IsError:    toolErr != nil,
					},
				})
			}
			continue
		}

		// Terminal answer: enforce the output contract before accepting.
		if err := validateAnswer(resp.Content); err != nil {
			badAnswers++
			a.logger.Warn("final answer rejected",
				slog.Int("attempt", badAnswers),
				slog.String("error", err.Error()),
			)
			if badAnswers > a.config.AnswerRetries {
				return fallbackAnswer, allToolCalls, notes, nil
			}
			llmMessages = append(llmMessages,
				llm.Message{Role: llm.RoleAssistant, Content: resp.Content},
				llm.Message{Role: llm.RoleUser, Content: fmt.Sprintf(
					"That response was invalid: %v. Respond again with exactly one JSON object containing only the keys \"summary\" and \"results_to_display\", with no newline characters.", err)},
			)
			continue
		}

		return resp.Content, allToolCalls, notes, nil
	}

	a.logger.Warn("agent loop exhausted", slog.Int("max_turns", a.config.MaxTurns))
	return fallbackAnswer, allToolCalls, notes, nil
}

// executeTool runs one tool call under the tool timeout.
func (a *Agent) executeTool(ctx context.Context, tc llm.ToolCall) (any, error) {
	if a.config.ToolTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.ToolTimeout)
		defer cancel()
	}
	return a.tools.Execute(ctx, tc.Name, tc.Input)
}

// extractNote runs the tool's declared extraction over its raw result.
// Structural failures only suppress the note; they are never fatal.
func (a *Agent) extractNote(toolName string, output any) (string, bool) {
	tool, ok := a.tools.Get(toolName)
	if !ok || tool.Extract == nil {
		return "", false
	}

	refs := tool.Extract(output)
	if len(refs) == 0 {
		a.logger.Debug("no identifiers extracted from tool result",
			slog.String("tool", toolName),
		)
		return "", false
	}

	b, err := json.Marshal(refs)
	if err != nil {
		a.logger.Debug("skipping identifier note", slog.String("tool", toolName))
		return "", false
	}
	return tool.NoteLabel + " " + string(b), true
}

func (a *Agent) toolDefinitions() []llm.ToolDefinition {
	defs := a.tools.Definitions()
	result := make([]llm.ToolDefinition, len(defs))
	for i, d := range defs {
		result[i] = llm.ToolDefinition{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  d.Parameters,
		}
	}
	return result
}

// toLLMMessages renders session history for the model. System notes are
// re-injected as assistant context so stored identifiers stay visible.
func toLLMMessages(messages []Message) []llm.Message {
	result := make([]llm.Message, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case RoleUser:
			result = append(result, llm.Message{
				Role:    llm.RoleUser,
				Content: msg.Content,
			})
		case RoleAssistant, RoleNote:
			result = append(result, llm.Message{
				Role:    llm.RoleAssistant,
				Content: msg.Content,
			})
		}
	}

	return result
}
