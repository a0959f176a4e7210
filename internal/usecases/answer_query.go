package usecases

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cleitonmarx/symbiont/depend"
	"github.com/clusteriq/assistant/internal/common"
	"github.com/clusteriq/assistant/internal/domain"
	"github.com/clusteriq/assistant/internal/telemetry"
	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"
)

const (
	// Maximum number of repeated identical action calls before the exchange
	// is cut short.
	MAX_REPEATED_ACTION_CALL_HIT = 5

	// Keep action-calling deterministic to reduce malformed function arguments.
	CHAT_TEMPERATURE = 0.1
	CHAT_TOP_P       = 0.7

	MAX_TOOL_SELECTION_CHARS = 400
)

//go:embed prompts/chat.yml
var chatPrompt embed.FS

// Answer is the outcome of one answered query.
type Answer struct {
	Text  string
	Steps int
	Usage domain.AssistantUsage
}

// AnswerQuery defines the interface for the AnswerQuery use case.
type AnswerQuery interface {
	// Execute answers one free-text inventory question.
	Execute(ctx context.Context, query string) (Answer, error)
}

// AnswerQueryImpl runs the dispatch loop: it asks the model for the next
// step, executes requested actions and feeds results back until the model
// produces a final answer or a budget runs out.
type AnswerQueryImpl struct {
	assistant      domain.Assistant
	actionRegistry domain.AssistantActionRegistry
	timeProvider   domain.CurrentTimeProvider
	model          string
	maxSteps       int
	maxCorrections int
	stepTimeout    time.Duration
}

// NewAnswerQueryImpl creates a new instance of AnswerQueryImpl.
func NewAnswerQueryImpl(
	assistant domain.Assistant,
	actionRegistry domain.AssistantActionRegistry,
	timeProvider domain.CurrentTimeProvider,
	model string,
	maxSteps int,
	maxCorrections int,
	stepTimeout time.Duration,
) AnswerQueryImpl {
	return AnswerQueryImpl{
		assistant:      assistant,
		actionRegistry: actionRegistry,
		timeProvider:   timeProvider,
		model:          model,
		maxSteps:       maxSteps,
		maxCorrections: maxCorrections,
		stepTimeout:    stepTimeout,
	}
}

// Execute answers one free-text inventory question.
func (aq AnswerQueryImpl) Execute(ctx context.Context, query string) (Answer, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	if strings.TrimSpace(query) == "" {
		err := domain.NewValidationErr("query cannot be empty")
		telemetry.RecordErrorAndStatus(span, err)
		return Answer{}, err
	}

	session := domain.NewSession(uuid.New())
	systemMessages, err := aq.buildSystemPrompt()
	if telemetry.RecordErrorAndStatus(span, err) {
		return Answer{}, err
	}
	for _, msg := range systemMessages {
		if msg.Role == domain.ChatRole_Developer {
			session.AppendDeveloper(msg.Content)
			continue
		}
		session.AppendSystem(msg.Content)
	}
	session.AppendUserQuery(query)

	availableActions := aq.actionRegistry.ListRelevant(
		spanCtx,
		truncateToLastChars(query, MAX_TOOL_SELECTION_CHARS),
	)

	var (
		usage       domain.AssistantUsage
		corrections int
		tracker     = newRepeatedCallTracker(MAX_REPEATED_ACTION_CALL_HIT)
	)

	for {
		if session.Steps() >= aq.maxSteps {
			err := aq.budgetExceededErr(session)
			telemetry.RecordErrorAndStatus(span, err)
			return Answer{}, err
		}

		step, err := aq.nextStep(spanCtx, session, availableActions)
		session.RecordStep()
		if err != nil {
			if ctx.Err() != nil {
				// Caller cancelled; abort without correction retries.
				telemetry.RecordErrorAndStatus(span, ctx.Err())
				return Answer{}, ctx.Err()
			}

			if !isCorrectableStepErr(err) {
				telemetry.RecordErrorAndStatus(span, err)
				return Answer{}, err
			}

			if budgetErr := aq.requestCorrection(spanCtx, session, err, &corrections, availableActions); budgetErr != nil {
				telemetry.RecordErrorAndStatus(span, budgetErr)
				return Answer{}, budgetErr
			}
			continue
		}

		usage.Add(step.Usage)

		switch step.Kind {
		case domain.AssistantStepKind_FinalAnswer:
			session.AppendAssistantText(step.Answer)
			RecordLLMTokensUsed(spanCtx, usage.PromptTokens, usage.CompletionTokens)
			return Answer{
				Text:  step.Answer,
				Steps: session.Steps(),
				Usage: usage,
			}, nil

		case domain.AssistantStepKind_ActionRequest:
			call := step.ActionCall
			if tracker.hasExceededMaxActionCalls(call.Name, call.Input) {
				err := domain.NewBudgetExceededErr(
					fmt.Sprintf("model kept repeating the same '%s' call", call.Name),
					call.Name,
				)
				telemetry.RecordErrorAndStatus(span, err)
				return Answer{}, err
			}

			if err := session.AppendActionRequest(call); err != nil {
				// A call the transcript rejects is a malformed reply,
				// not a caller mistake; re-prompt instead of failing.
				malformed := domain.NewMalformedReplyErr(err.Error())
				if budgetErr := aq.requestCorrection(spanCtx, session, malformed, &corrections, availableActions); budgetErr != nil {
					telemetry.RecordErrorAndStatus(span, budgetErr)
					return Answer{}, budgetErr
				}
				continue
			}

			result := aq.executeAction(spanCtx, call, session)
			if err := session.AppendActionResult(result); err != nil {
				telemetry.RecordErrorAndStatus(span, err)
				return Answer{}, err
			}
			session.RecordStep()
			RecordDispatchStep(spanCtx, call.Name, result.IsActionCallSuccess())

		default:
			err := domain.NewMalformedReplyErr(fmt.Sprintf("unexpected step kind '%s'", step.Kind))
			telemetry.RecordErrorAndStatus(span, err)
			return Answer{}, err
		}
	}
}

// nextStep runs one bounded model call over the current transcript.
func (aq AnswerQueryImpl) nextStep(
	ctx context.Context,
	session *domain.Session,
	availableActions []domain.AssistantActionDefinition,
) (domain.AssistantStep, error) {
	stepCtx, cancel := context.WithTimeout(ctx, aq.stepTimeout)
	defer cancel()

	return aq.assistant.NextStep(stepCtx, domain.AssistantTurnRequest{
		Model:            aq.model,
		Messages:         session.Transcript(),
		Temperature:      common.Ptr(CHAT_TEMPERATURE),
		TopP:             common.Ptr(CHAT_TOP_P),
		AvailableActions: availableActions,
	})
}

// requestCorrection consumes one correction attempt and re-prompts the model
// with a developer instruction describing the unusable reply. It returns a
// terminal error once the correction budget is exhausted.
func (aq AnswerQueryImpl) requestCorrection(
	ctx context.Context,
	session *domain.Session,
	stepErr error,
	corrections *int,
	availableActions []domain.AssistantActionDefinition,
) error {
	*corrections++
	if *corrections > aq.maxCorrections {
		return domain.NewBudgetExceededErr(
			fmt.Sprintf("model produced no usable reply after %d correction attempts: %s", aq.maxCorrections, stepErr.Error()),
			"",
		)
	}
	session.AppendDeveloper(correctionInstruction(stepErr, availableActions))
	RecordDispatchCorrection(ctx)
	return nil
}

// executeAction runs one bounded action execution. Failures come back as
// tool-role error payloads, never as loop errors.
func (aq AnswerQueryImpl) executeAction(
	ctx context.Context,
	call domain.AssistantActionCall,
	session *domain.Session,
) domain.AssistantMessage {
	actionCtx, cancel := context.WithTimeout(ctx, aq.stepTimeout)
	defer cancel()

	return aq.actionRegistry.Execute(actionCtx, call, session.Transcript())
}

// budgetExceededErr describes the exhausted exchange, naming the action the
// model was still working through when the budget ran out.
func (aq AnswerQueryImpl) budgetExceededErr(session *domain.Session) error {
	lastPending := ""
	if pending := session.PendingActions(); len(pending) > 0 {
		lastPending = pending[len(pending)-1]
	}
	return domain.NewBudgetExceededErr(
		fmt.Sprintf("no answer after %d steps", session.Steps()),
		lastPending,
	)
}

// isCorrectableStepErr reports whether a failed model call should be retried
// with a correction instruction instead of failing the exchange.
func isCorrectableStepErr(err error) bool {
	var malformed *domain.MalformedReplyErr
	return errors.As(err, &malformed) || errors.Is(err, context.DeadlineExceeded)
}

// correctionInstruction builds the developer message appended after a
// malformed model reply.
func correctionInstruction(stepErr error, availableActions []domain.AssistantActionDefinition) string {
	names := make([]string, len(availableActions))
	for i, def := range availableActions {
		names[i] = def.Name
	}
	return fmt.Sprintf(
		"Your previous reply could not be used (%s). Reply with either plain answer text or exactly one call to one of these tools: %s.",
		stepErr.Error(),
		strings.Join(names, ", "),
	)
}

// buildSystemPrompt loads the embedded chat prompt and injects the current date.
func (aq AnswerQueryImpl) buildSystemPrompt() ([]domain.AssistantMessage, error) {
	file, err := chatPrompt.Open("prompts/chat.yml")
	if err != nil {
		return nil, fmt.Errorf("failed to open chat prompt: %w", err)
	}
	defer file.Close() //nolint:errcheck

	messages := []domain.AssistantMessage{}
	if err := yaml.NewDecoder(file).Decode(&messages); err != nil {
		return nil, fmt.Errorf("failed to decode chat prompt: %w", err)
	}
	for i, msg := range messages {
		if msg.Role == domain.ChatRole_Developer || msg.Role == domain.ChatRole_System {
			now := aq.timeProvider.Now()
			messages[i].Content = fmt.Sprintf(
				msg.Content,
				now.Format(time.DateOnly),
			)
		}
	}
	return messages, nil
}

// truncateToLastChars truncates the input string to the last maxChars characters,
// ensuring it does not cut off in the middle of a rune.
func truncateToLastChars(input string, maxChars int) string {
	trimmed := strings.TrimSpace(input)
	if maxChars <= 0 {
		return ""
	}

	runes := []rune(trimmed)
	if len(runes) <= maxChars {
		return trimmed
	}

	return string(runes[len(runes)-maxChars:])
}

// repeatedCallTracker cuts off a model stuck on one identical action call.
type repeatedCallTracker struct {
	maxRepeatedActionCallHit int
	lastActionCallSignature  string
	repeatActionCallCount    int
}

// newRepeatedCallTracker creates a new repeatedCallTracker.
func newRepeatedCallTracker(maxRepeatedActionCallHit int) *repeatedCallTracker {
	return &repeatedCallTracker{
		maxRepeatedActionCallHit: maxRepeatedActionCallHit,
	}
}

// hasExceededMaxActionCalls checks if the same action call has been repeated too many times.
func (t *repeatedCallTracker) hasExceededMaxActionCalls(functionName, arguments string) bool {
	signature := functionName + ":" + arguments
	if signature == t.lastActionCallSignature {
		t.repeatActionCallCount++
		return t.repeatActionCallCount >= t.maxRepeatedActionCallHit
	}
	t.lastActionCallSignature = signature
	t.repeatActionCallCount = 0
	return false
}

// InitAnswerQuery is the initializer for the AnswerQuery use case.
type InitAnswerQuery struct {
	Assistant               domain.Assistant               `resolve:""`
	AssistantActionRegistry domain.AssistantActionRegistry `resolve:""`
	TimeProvider            domain.CurrentTimeProvider     `resolve:""`
	Model                   string                         `config:"LLM_MODEL"`
	// Combined budget over model calls and action executions per query.
	MaxSteps int `config:"ASSISTANT_MAX_STEPS" default:"10"`
	// Separate budget for correction re-prompts after malformed replies.
	MaxCorrections int `config:"ASSISTANT_MAX_CORRECTIONS" default:"2"`
	// Upper bound in seconds on each model call and each action execution.
	StepTimeoutSeconds int `config:"ASSISTANT_STEP_TIMEOUT_SECONDS" default:"60"`
}

// Initialize registers the AnswerQuery use case in the dependency container.
func (i InitAnswerQuery) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[AnswerQuery](NewAnswerQueryImpl(
		i.Assistant,
		i.AssistantActionRegistry,
		i.TimeProvider,
		i.Model,
		i.MaxSteps,
		i.MaxCorrections,
		time.Duration(i.StepTimeoutSeconds)*time.Second,
	))
	return ctx, nil
}
