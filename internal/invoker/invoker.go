// Package invoker drives a single agent's tool-use conversation against
// the Anthropic Messages API, grounded in the request/response shape used
// by the Anthropic model adapter in the retrieved goa-ai pack
// (features/model/anthropic/client.go): a MessagesClient interface narrow
// enough to mock in tests, content blocks translated to/from the SDK's
// types, and tool_use blocks dispatched locally before being fed back as
// tool_result blocks on the next turn.
//
// Unlike that adapter, tddorc has exactly four fixed agent roles and six
// fixed tools, so there is no generic ToolDefinition/ModelClass layer
// here: schemas are hardcoded for the six tools and the loop always runs
// to either end-of-turn or the iteration cap.
package invoker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ntolman/tddorc/internal/model"
	"github.com/ntolman/tddorc/internal/tools"
)

// DefaultMaxIterations bounds the recursive-looking tool-use loop
// described in spec.md §9 ("Recursive tool-use loop"): it must be an
// explicit loop with a bounded counter, not recursion.
const DefaultMaxIterations = 50

// DefaultMaxTokens is the completion cap used for every request;
// AgentConfig carries no per-role override.
const DefaultMaxTokens = 8192

// MessagesClient captures the subset of the Anthropic SDK used here, so
// tests can substitute a fake rather than hit the network.
type MessagesClient interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// Invoker runs one agent's conversation loop to completion, dispatching
// any tool_use blocks through the provided tools.Dispatcher.
type Invoker struct {
	client        MessagesClient
	maxIterations int
	maxTokens     int
}

// New builds an Invoker backed by a real Anthropic client using apiKey.
// A missing key is a configuration error, not a runtime one, so callers
// should validate it before reaching here.
func New(apiKey string) (*Invoker, error) {
	if apiKey == "" {
		return nil, errors.New("invoker: ANTHROPIC_API_KEY is required")
	}
	client := sdk.NewClient(option.WithAPIKey(apiKey))
	return NewWithClient(&client.Messages), nil
}

// NewWithClient builds an Invoker around an arbitrary MessagesClient,
// primarily for testing.
func NewWithClient(c MessagesClient) *Invoker {
	return &Invoker{client: c, maxIterations: DefaultMaxIterations, maxTokens: DefaultMaxTokens}
}

// Turn records one round of the conversation for diagnostics and for the
// error-extract logic in internal/classify, which inspects raw tool
// output rather than model text.
type Turn struct {
	AssistantText string
	ToolCalls     []ToolCall
}

// ToolCall is one tool invocation and its result within a Turn.
type ToolCall struct {
	Name   string
	Input  map[string]any
	Result tools.Result
}

// Run drives cfg's system prompt and userPrompt through the tool-use
// loop until the model stops requesting tools (or the iteration cap is
// hit), dispatching every tool_use block through dispatch. It returns the
// final assistant text and the full turn history.
func (inv *Invoker) Run(ctx context.Context, cfg model.AgentConfig, userPrompt string, dispatch *tools.Dispatcher) (string, []Turn, error) {
	if cfg.Model == "" {
		return "", nil, errors.New("invoker: agent model identifier is required")
	}
	if cfg.SystemPrompt == "" {
		return "", nil, errors.New("invoker: agent system prompt is required")
	}

	messages := []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(userPrompt))}
	toolParams := schemasFor(cfg.Tools)

	var history []Turn
	for iter := 0; iter < inv.maxIterations; iter++ {
		params := sdk.MessageNewParams{
			Model:     sdk.Model(cfg.Model),
			MaxTokens: int64(inv.maxTokens),
			System:    []sdk.TextBlockParam{{Text: cfg.SystemPrompt}},
			Messages:  messages,
		}
		if len(toolParams) > 0 {
			params.Tools = toolParams
		}

		msg, err := inv.client.New(ctx, params)
		if err != nil {
			return "", history, fmt.Errorf("anthropic messages.new: %w", err)
		}

		turn := Turn{}
		var assistantBlocks []sdk.ContentBlockParamUnion
		var textParts []string
		type pendingCall struct {
			id, name string
			input    map[string]any
		}
		var pending []pendingCall

		for _, block := range msg.Content {
			switch block.Type {
			case "text":
				if block.Text == "" {
					continue
				}
				textParts = append(textParts, block.Text)
				assistantBlocks = append(assistantBlocks, sdk.NewTextBlock(block.Text))
			case "tool_use":
				var input map[string]any
				_ = json.Unmarshal(block.Input, &input)
				assistantBlocks = append(assistantBlocks, sdk.NewToolUseBlock(block.ID, block.Input, block.Name))
				pending = append(pending, pendingCall{id: block.ID, name: block.Name, input: input})
			}
		}
		turn.AssistantText = strings.Join(textParts, "\n")
		if len(assistantBlocks) > 0 {
			messages = append(messages, sdk.NewAssistantMessage(assistantBlocks...))
		}

		if len(pending) == 0 || msg.StopReason != sdk.StopReasonToolUse {
			history = append(history, turn)
			return turn.AssistantText, history, nil
		}

		var resultBlocks []sdk.ContentBlockParamUnion
		for _, call := range pending {
			result := dispatch.Dispatch(ctx, call.name, call.input)
			turn.ToolCalls = append(turn.ToolCalls, ToolCall{Name: call.name, Input: call.input, Result: result})
			resultBlocks = append(resultBlocks, sdk.NewToolResultBlock(call.id, result.Output, result.IsError))
		}
		history = append(history, turn)
		messages = append(messages, sdk.NewUserMessage(resultBlocks...))
	}

	return "", history, fmt.Errorf("invoker: exceeded max tool-use iterations (%d)", inv.maxIterations)
}
