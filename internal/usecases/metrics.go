package usecases

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter               = otel.Meter("usecases")
	LLMTokensUsed       metric.Int64Counter
	DispatchSteps       metric.Int64Counter
	DispatchCorrections metric.Int64Counter
)

func init() {
	var err error
	// Tokens consumed by LLM (input + output)
	LLMTokensUsed, err = meter.Int64Counter(
		"llm_tokens_used_total",
		metric.WithDescription("Total LLM tokens consumed"),
	)
	if err != nil {
		panic(err)
	}

	// Action executions performed by the dispatch loop
	DispatchSteps, err = meter.Int64Counter(
		"assistant_dispatch_steps_total",
		metric.WithDescription("Total dispatch-loop action executions"),
	)
	if err != nil {
		panic(err)
	}

	// Correction re-prompts after malformed model replies
	DispatchCorrections, err = meter.Int64Counter(
		"assistant_dispatch_corrections_total",
		metric.WithDescription("Total correction re-prompts after malformed model replies"),
	)
	if err != nil {
		panic(err)
	}
}

// RecordLLMTokensUsed records the number of tokens used in an LLM chat operation.
func RecordLLMTokensUsed(ctx context.Context, promptTokens, completionTokens int) {
	LLMTokensUsed.Add(ctx, int64(promptTokens), metric.WithAttributes(
		attribute.String("token_type", "prompt"),
	))
	LLMTokensUsed.Add(ctx, int64(completionTokens), metric.WithAttributes(
		attribute.String("token_type", "completion"),
	))
}

// RecordLLMTokensEmbedding records the number of tokens used in an embedding operation.
func RecordLLMTokensEmbedding(ctx context.Context, totalTokens int) {
	LLMTokensUsed.Add(ctx, int64(totalTokens), metric.WithAttributes(
		attribute.String("token_type", "embedding"),
	))
}

// RecordDispatchStep records one executed action call and its outcome.
func RecordDispatchStep(ctx context.Context, actionName string, success bool) {
	DispatchSteps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", actionName),
		attribute.Bool("success", success),
	))
}

// RecordDispatchCorrection records one correction re-prompt.
func RecordDispatchCorrection(ctx context.Context) {
	DispatchCorrections.Add(ctx, 1)
}
