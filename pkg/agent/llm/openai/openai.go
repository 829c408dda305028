// Package openai provides an OpenAI LLM provider implementation.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/stayscout/stayscout/pkg/agent/llm"
)

// Provider implements llm.Provider for OpenAI's chat completion API.
type Provider struct {
	client *openai.Client
}

// Config for the OpenAI provider.
type Config struct {
	APIKey  string
	BaseURL string
}

// New creates a new OpenAI provider with the given config.
func New(cfg Config) *Provider {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Provider{client: openai.NewClientWithConfig(clientCfg)}
}

// NewFromEnv creates a provider using the OPENAI_API_KEY environment variable.
func NewFromEnv() *Provider {
	return New(Config{APIKey: os.Getenv("OPENAI_API_KEY")})
}

// Chat sends a chat completion request and maps the response back.
func (p *Provider) Chat(ctx context.Context, req llm.Request) (*llm.Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    toOpenAIMessages(req.System, req.Messages),
		Temperature: float32(req.Temperature),
	}
	if req.MaxTokens > 0 {
		chatReq.MaxTokens = req.MaxTokens
	}
	if len(req.Tools) > 0 {
		chatReq.Tools = toOpenAITools(req.Tools)
	}
	if req.JSONResponse {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	return fromOpenAIResponse(resp), nil
}

func toOpenAIMessages(system string, msgs []llm.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(msgs)+1)

	if system != "" {
		result = append(result, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}

	for _, msg := range msgs {
		switch msg.Role {
		case llm.RoleUser:
			result = append(result, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: msg.Content,
			})

		case llm.RoleAssistant:
			m := openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: msg.Content,
			}
			for _, tc := range msg.ToolCalls {
				args, _ := json.Marshal(tc.Input)
				m.ToolCalls = append(m.ToolCalls, openai.ToolCall{
					ID:   tc.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      tc.Name,
						Arguments: string(args),
					},
				})
			}
			result = append(result, m)

		case llm.RoleTool:
			if msg.ToolResult != nil {
				result = append(result, openai.ChatCompletionMessage{
					Role:       openai.ChatMessageRoleTool,
					Content:    msg.ToolResult.Content,
					ToolCallID: msg.ToolResult.ToolCallID,
				})
			}
		}
	}

	return result
}

func toOpenAITools(defs []llm.ToolDefinition) []openai.Tool {
	result := make([]openai.Tool, len(defs))
	for i, d := range defs {
		result[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.Parameters,
			},
		}
	}
	return result
}

func fromOpenAIResponse(resp openai.ChatCompletionResponse) *llm.Response {
	choice := resp.Choices[0]

	result := &llm.Response{
		Content: choice.Message.Content,
		Usage: llm.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}

	for _, tc := range choice.Message.ToolCalls {
		input := make(map[string]any)
		_ = json.Unmarshal([]byte(tc.Function.Arguments), &input)
		result.ToolCalls = append(result.ToolCalls, llm.ToolCall{
			ID:    tc.ID,
			Name:  tc.Function.Name,
			Input: input,
		})
	}

	switch choice.FinishReason {
	case openai.FinishReasonToolCalls:
		result.StopReason = llm.StopReasonToolUse
	case openai.FinishReasonLength:
		result.StopReason = llm.StopReasonLength
	default:
		result.StopReason = llm.StopReasonEnd
	}

	return result
}
