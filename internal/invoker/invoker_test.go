package invoker

import (
	"context"
	"encoding/json"
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ntolman/tddorc/internal/model"
	"github.com/ntolman/tddorc/internal/tools"
)

type stubClient struct {
	responses []*sdk.Message
	calls     int
	lastBody  sdk.MessageNewParams
}

func (s *stubClient) New(_ context.Context, body sdk.MessageNewParams, _ ...option.RequestOption) (*sdk.Message, error) {
	s.lastBody = body
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func textOnlyMessage(text string) *sdk.Message {
	return &sdk.Message{
		Content:    []sdk.ContentBlockUnion{{Type: "text", Text: text}},
		StopReason: sdk.StopReasonEndTurn,
	}
}

func toolUseMessage(id, name string, input map[string]any) *sdk.Message {
	raw, _ := json.Marshal(input)
	return &sdk.Message{
		Content:    []sdk.ContentBlockUnion{{Type: "tool_use", ID: id, Name: name, Input: json.RawMessage(raw)}},
		StopReason: sdk.StopReasonToolUse,
	}
}

func testAgentConfig() model.AgentConfig {
	return model.AgentConfig{
		Name:         "Planner",
		SystemPrompt: "you are a planner",
		Model:        "claude-test-model",
	}
}

func TestRun_TextOnlyEndsImmediately(t *testing.T) {
	stub := &stubClient{responses: []*sdk.Message{textOnlyMessage(`{"currentTest": null}`)}}
	inv := NewWithClient(stub)
	dispatch := tools.New(t.TempDir(), 0)

	text, history, err := inv.Run(context.Background(), testAgentConfig(), "pick the next test", dispatch)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if text != `{"currentTest": null}` {
		t.Fatalf("text = %q", text)
	}
	if len(history) != 1 {
		t.Fatalf("len(history) = %d, want 1", len(history))
	}
	if stub.calls != 1 {
		t.Fatalf("calls = %d, want 1", stub.calls)
	}
}

func TestRun_DispatchesToolUseThenEnds(t *testing.T) {
	root := t.TempDir()
	stub := &stubClient{
		responses: []*sdk.Message{
			toolUseMessage("t1", "Write", map[string]any{"file_path": "out.txt", "content": "hello"}),
			textOnlyMessage("done"),
		},
	}
	inv := NewWithClient(stub)
	dispatch := tools.New(root, 0)

	text, history, err := inv.Run(context.Background(), testAgentConfig(), "write a file", dispatch)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if text != "done" {
		t.Fatalf("text = %q", text)
	}
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
	if len(history[0].ToolCalls) != 1 || history[0].ToolCalls[0].Name != "Write" {
		t.Fatalf("expected one Write tool call in first turn, got %+v", history[0].ToolCalls)
	}
	if history[0].ToolCalls[0].Result.IsError {
		t.Fatalf("expected successful write, got error result: %+v", history[0].ToolCalls[0].Result)
	}
}

func TestRun_RequiresModelAndSystemPrompt(t *testing.T) {
	inv := NewWithClient(&stubClient{})
	dispatch := tools.New(t.TempDir(), 0)

	cfg := testAgentConfig()
	cfg.Model = ""
	if _, _, err := inv.Run(context.Background(), cfg, "x", dispatch); err == nil {
		t.Fatal("expected error for missing model")
	}

	cfg = testAgentConfig()
	cfg.SystemPrompt = ""
	if _, _, err := inv.Run(context.Background(), cfg, "x", dispatch); err == nil {
		t.Fatal("expected error for missing system prompt")
	}
}

func TestRun_IterationCapStopsLoop(t *testing.T) {
	responses := make([]*sdk.Message, 0, DefaultMaxIterations)
	for i := 0; i < DefaultMaxIterations; i++ {
		responses = append(responses, toolUseMessage("t", "Bash", map[string]any{"command": "echo hi"}))
	}
	stub := &stubClient{responses: responses}
	inv := NewWithClient(stub)
	dispatch := tools.New(t.TempDir(), 0)

	_, _, err := inv.Run(context.Background(), testAgentConfig(), "loop forever", dispatch)
	if err == nil {
		t.Fatal("expected an error once the iteration cap is hit")
	}
}

func TestSchemasFor_DefaultsToAllSixTools(t *testing.T) {
	params := schemasFor(nil)
	if len(params) != 6 {
		t.Fatalf("len(schemasFor(nil)) = %d, want 6", len(params))
	}
}

func TestSchemasFor_Narrowed(t *testing.T) {
	params := schemasFor([]model.ToolSpec{{Name: "Read"}, {Name: "Grep"}})
	if len(params) != 2 {
		t.Fatalf("len(schemasFor(narrowed)) = %d, want 2", len(params))
	}
}
