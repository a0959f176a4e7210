package domain

import "context"

// EmbeddingVector is a semantic vector plus token accounting.
type EmbeddingVector struct {
	Vector      []float64
	TotalTokens int
}

// SemanticEncoder defines embedding/vectorization behavior in domain terms.
type SemanticEncoder interface {
	// VectorizeQuery generates a semantic vector for one user query.
	VectorizeQuery(ctx context.Context, model, query string) (EmbeddingVector, error)
	// VectorizeAssistantActionDefinition generates a semantic vector for one assistant action definition.
	VectorizeAssistantActionDefinition(ctx context.Context, model string, action AssistantActionDefinition) (EmbeddingVector, error)
}
