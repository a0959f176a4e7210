package domain

import (
	"context"
	"strings"
)

// AssistantUsage contains token usage for one assistant step.
type AssistantUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add accumulates usage from another step.
func (u *AssistantUsage) Add(other AssistantUsage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// AssistantActionCall contains one action invocation requested by the assistant.
type AssistantActionCall struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Input string `json:"input"`
}

// AssistantMessage represents a message exchanged during an assistant exchange.
type AssistantMessage struct {
	Role         ChatRole
	Content      string
	ActionCallID *string
	ActionCalls  []AssistantActionCall
}

// IsActionCallSuccess returns true when this message is a successful action result.
func (m AssistantMessage) IsActionCallSuccess() bool {
	return m.Role == ChatRole_Tool &&
		m.ActionCallID != nil &&
		!strings.Contains(m.Content, "\"error\"")
}

// AssistantStepKind tags the two possible outcomes of one assistant step.
type AssistantStepKind string

const (
	AssistantStepKind_FinalAnswer   AssistantStepKind = "final_answer"
	AssistantStepKind_ActionRequest AssistantStepKind = "action_request"
)

// AssistantStep is the outcome of one assistant step: either the final
// answer text or a request to execute exactly one action.
type AssistantStep struct {
	Kind       AssistantStepKind
	Answer     string
	ActionCall AssistantActionCall
	Usage      AssistantUsage
}

// AssistantActionDefinition describes one action the assistant can request.
type AssistantActionDefinition struct {
	Name        string
	Description string
	Input       AssistantActionInput
	Hints       AssistantActionHints
}

// ComposeHint composes the action hints into a single string for prompting.
func (d AssistantActionDefinition) ComposeHint() string {
	parts := make([]string, 0, 3)
	if useWhen := strings.TrimSpace(d.Hints.UseWhen); useWhen != "" {
		parts = append(parts, "Use: "+useWhen)
	}
	if avoidWhen := strings.TrimSpace(d.Hints.AvoidWhen); avoidWhen != "" {
		parts = append(parts, "Avoid: "+avoidWhen)
	}
	if argRules := strings.TrimSpace(d.Hints.ArgRules); argRules != "" {
		parts = append(parts, "Args: "+argRules)
	}

	if len(parts) == 0 {
		return "Follow the tool schema and description."
	}
	return strings.Join(parts, " ")
}

// AssistantActionHints holds compact, runtime guidance for dynamic prompt injection.
type AssistantActionHints struct {
	UseWhen   string
	AvoidWhen string
	ArgRules  string
}

// AssistantActionField represents one action input field.
type AssistantActionField struct {
	Type        string
	Description string
	Enum        []string
	Required    bool
}

// AssistantActionInput describes the action input shape.
type AssistantActionInput struct {
	Type   string
	Fields map[string]AssistantActionField
}

// AssistantTurnRequest is the domain request for one assistant step.
type AssistantTurnRequest struct {
	Model    string
	Messages []AssistantMessage
	// Optional generation settings.
	Temperature      *float64
	TopP             *float64
	MaxTokens        *int
	AvailableActions []AssistantActionDefinition
}

// Assistant defines assistant interaction in domain terms.
type Assistant interface {
	// NextStep runs one model call over the transcript and returns either a
	// final answer or a single action request. Any other reply shape fails
	// with MalformedReplyErr.
	NextStep(ctx context.Context, req AssistantTurnRequest) (AssistantStep, error)
}

// AssistantAction represents one executable assistant action.
type AssistantAction interface {
	Definition() AssistantActionDefinition
	StatusMessage() string
	Execute(context.Context, AssistantActionCall, []AssistantMessage) AssistantMessage
}

// AssistantActionRegistry resolves and executes assistant actions.
type AssistantActionRegistry interface {
	Execute(context.Context, AssistantActionCall, []AssistantMessage) AssistantMessage
	StatusMessage(actionName string) string
	List() []AssistantActionDefinition
	ListRelevant(ctx context.Context, userInput string) []AssistantActionDefinition
}
