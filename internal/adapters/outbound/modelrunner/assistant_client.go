package modelrunner

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cleitonmarx/symbiont/depend"
	"github.com/clusteriq/assistant/internal/domain"
	"github.com/clusteriq/assistant/internal/telemetry"
)

// AssistantClient adapts ModelAPIClient to the domain assistant interfaces.
// It is the reasoning boundary: a raw model reply either becomes a final
// answer, a single in-catalog action request, or a MalformedReplyErr.
type AssistantClient struct {
	client ModelAPIClient
}

// NewAssistantClientAdapter creates a new adapter.
func NewAssistantClientAdapter(client ModelAPIClient) AssistantClient {
	return AssistantClient{client: client}
}

// NextStep implements domain.Assistant.
func (a AssistantClient) NextStep(ctx context.Context, req domain.AssistantTurnRequest) (domain.AssistantStep, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	resp, err := a.client.Chat(spanCtx, toChatRequest(req))
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.AssistantStep{}, err
	}
	if len(resp.Choices) == 0 {
		err := domain.NewMalformedReplyErr("model returned no choices")
		telemetry.RecordErrorAndStatus(span, err)
		return domain.AssistantStep{}, err
	}

	step, err := toAssistantStep(resp, req.AvailableActions)
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.AssistantStep{}, err
	}
	return step, nil
}

// toAssistantStep enforces the two-variant step contract over a raw reply.
func toAssistantStep(resp *ChatResponse, catalog []domain.AssistantActionDefinition) (domain.AssistantStep, error) {
	message := resp.Choices[0].Message

	var usage domain.AssistantUsage
	if resp.Usage != nil {
		usage = domain.AssistantUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	if len(message.ToolCalls) > 0 {
		if len(message.ToolCalls) > 1 {
			return domain.AssistantStep{}, domain.NewMalformedReplyErr(
				fmt.Sprintf("model requested %d tool calls; exactly one is supported", len(message.ToolCalls)),
			)
		}

		tc := message.ToolCalls[0]
		if tc.ID == "" {
			return domain.AssistantStep{}, domain.NewMalformedReplyErr("tool call has no id")
		}
		if tc.Function.Name == "" {
			return domain.AssistantStep{}, domain.NewMalformedReplyErr("tool call has no function name")
		}
		if !inCatalog(tc.Function.Name, catalog) {
			return domain.AssistantStep{}, domain.NewMalformedReplyErr(
				fmt.Sprintf("tool '%s' is not in the presented catalog", tc.Function.Name),
			)
		}

		input := tc.Function.Arguments
		if strings.TrimSpace(input) == "" {
			input = "{}"
		}
		return domain.AssistantStep{
			Kind: domain.AssistantStepKind_ActionRequest,
			ActionCall: domain.AssistantActionCall{
				ID:    tc.ID,
				Name:  tc.Function.Name,
				Input: input,
			},
			Usage: usage,
		}, nil
	}

	if strings.TrimSpace(message.Content) != "" {
		return domain.AssistantStep{
			Kind:   domain.AssistantStepKind_FinalAnswer,
			Answer: message.Content,
			Usage:  usage,
		}, nil
	}

	return domain.AssistantStep{}, domain.NewMalformedReplyErr("model returned neither answer text nor a tool call")
}

func inCatalog(name string, catalog []domain.AssistantActionDefinition) bool {
	for _, def := range catalog {
		if def.Name == name {
			return true
		}
	}
	return false
}

// VectorizeQuery implements domain.SemanticEncoder.
func (a AssistantClient) VectorizeQuery(ctx context.Context, model, query string) (domain.EmbeddingVector, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	vec, err := a.embed(spanCtx, model, "query: "+query)
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.EmbeddingVector{}, err
	}
	return vec, nil
}

// VectorizeAssistantActionDefinition implements domain.SemanticEncoder.
func (a AssistantClient) VectorizeAssistantActionDefinition(ctx context.Context, model string, action domain.AssistantActionDefinition) (domain.EmbeddingVector, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	prompt := fmt.Sprintf("passage: %s. %s %s", action.Name, action.Description, action.ComposeHint())
	vec, err := a.embed(spanCtx, model, prompt)
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.EmbeddingVector{}, err
	}
	return vec, nil
}

func (a AssistantClient) embed(ctx context.Context, model, input string) (domain.EmbeddingVector, error) {
	resp, err := a.client.Embeddings(ctx, EmbeddingsRequest{Model: model, Input: input})
	if err != nil {
		return domain.EmbeddingVector{}, err
	}
	if len(resp.Data) == 0 {
		return domain.EmbeddingVector{}, errors.New("no embedding data in response")
	}
	return domain.EmbeddingVector{
		Vector:      resp.Data[0].Embedding,
		TotalTokens: resp.Usage.TotalTokens,
	}, nil
}

func toChatRequest(req domain.AssistantTurnRequest) ChatRequest {
	adapterReq := ChatRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		TopP:        req.TopP,
		Messages:    make([]ChatMessage, len(req.Messages)),
		Tools:       make([]Tool, len(req.AvailableActions)),
	}

	for i, msg := range req.Messages {
		adpMsg := ChatMessage{
			Role:       string(msg.Role),
			ToolCallID: msg.ActionCallID,
			Content:    msg.Content,
		}
		for _, actionCall := range msg.ActionCalls {
			adpMsg.ToolCalls = append(adpMsg.ToolCalls, ToolCall{
				ID:   actionCall.ID,
				Type: "function",
				Function: ToolCallFunction{
					Name:      actionCall.Name,
					Arguments: actionCall.Input,
				},
			})
		}
		adapterReq.Messages[i] = adpMsg
	}

	for i, action := range req.AvailableActions {
		tool := Tool{
			Type: "function",
			Function: ToolFunc{
				Description: action.Description,
				Name:        action.Name,
				Parameters: ToolFuncParameters{
					Type:       action.Input.Type,
					Properties: make(map[string]ToolFuncParameterDetail),
					Required:   []string{},
				},
			},
		}

		for paramName, field := range action.Input.Fields {
			tool.Function.Parameters.Properties[paramName] = ToolFuncParameterDetail{
				Type:        field.Type,
				Description: field.Description,
				Enum:        field.Enum,
			}
			if field.Required {
				tool.Function.Parameters.Required = append(tool.Function.Parameters.Required, paramName)
			}
		}
		adapterReq.Tools[i] = tool
	}

	return adapterReq
}

// InitAssistantClient initializes the assistant client dependency.
type InitAssistantClient struct {
	HttpClient *http.Client `resolve:""`
	ModelHost  string       `config:"LLM_MODEL_HOST"`
	APIKey     string       `config:"LLM_API_KEY" default:""`
}

// Initialize registers assistant/model interfaces.
func (i InitAssistantClient) Initialize(ctx context.Context) (context.Context, error) {
	adapter := NewAssistantClientAdapter(NewModelAPIClient(i.ModelHost, i.APIKey, i.HttpClient))
	depend.Register[domain.Assistant](adapter)
	depend.Register[domain.SemanticEncoder](adapter)
	return ctx, nil
}
