package model

// ToolSpec names a tool capability an agent is permitted to use. The
// orchestrator's fixed tool set is {Read, Write, Edit, Bash, Glob, Grep};
// AgentConfig.Tools narrows that set per role when needed.
type ToolSpec struct {
	Name string
}

// AgentConfig is a role-specific LLM configuration, constructed once per
// role at startup: Planner, Red (test), Green (implement), Refactor.
type AgentConfig struct {
	Name         string
	Description  string
	SystemPrompt string
	Tools        []ToolSpec
	Model        string
}
