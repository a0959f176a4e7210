package assistant

import (
	"context"
	"testing"

	"github.com/clusteriq/assistant/internal/domain"
	"github.com/clusteriq/assistant/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func namedAction(t *testing.T, name string) *mocks.MockAssistantAction {
	action := mocks.NewMockAssistantAction(t)
	action.On("Definition").Return(domain.AssistantActionDefinition{
		Name:  name,
		Input: domain.AssistantActionInput{Type: "object"},
	}).Maybe()
	action.On("StatusMessage").Return("").Maybe()
	return action
}

func TestNewAssistantActionManagerRejectsDuplicates(t *testing.T) {
	encoder := mocks.NewMockSemanticEncoder(t)

	_, err := NewAssistantActionManager(encoder, "emb-model",
		assistantActionVector{Action: namedAction(t, "get_clusters")},
		assistantActionVector{Action: namedAction(t, "get_clusters")},
	)

	var validationErr *domain.ValidationErr
	require.ErrorAs(t, err, &validationErr)
	assert.ErrorContains(t, err, "get_clusters")
}

func TestAssistantActionManagerExecute(t *testing.T) {
	ctx := context.Background()

	tests := map[string]struct {
		call            domain.AssistantActionCall
		setup           func(t *testing.T, action *mocks.MockAssistantAction)
		expectedContent string
	}{
		"unknown-action": {
			call:            domain.AssistantActionCall{ID: "c1", Name: "delete_everything", Input: `{}`},
			setup:           func(t *testing.T, action *mocks.MockAssistantAction) {},
			expectedContent: `{"error":"unknown_action","details":"Action 'delete_everything' is not registered."}`,
		},
		"missing-required-parameter": {
			call:            domain.AssistantActionCall{ID: "c2", Name: "sort_clusters", Input: `{}`},
			setup:           func(t *testing.T, action *mocks.MockAssistantAction) {},
			expectedContent: `{"error":"missing_parameter","details":"required parameter 'limit' is missing"}`,
		},
		"invalid-parameter-type": {
			call:            domain.AssistantActionCall{ID: "c3", Name: "sort_clusters", Input: `{"limit":"five"}`},
			setup:           func(t *testing.T, action *mocks.MockAssistantAction) {},
			expectedContent: `{"error":"invalid_parameter_type","details":"parameter 'limit' must be of type integer"}`,
		},
		"valid-call-reaches-action": {
			call: domain.AssistantActionCall{ID: "c4", Name: "sort_clusters", Input: `{"limit":5}`},
			setup: func(t *testing.T, action *mocks.MockAssistantAction) {
				action.On("Execute", mock.Anything, mock.Anything, mock.Anything).
					Return(domain.AssistantMessage{Role: domain.ChatRole_Tool, Content: "ok"}).
					Once()
			},
			expectedContent: "ok",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			encoder := mocks.NewMockSemanticEncoder(t)
			action := mocks.NewMockAssistantAction(t)
			action.On("Definition").Return(domain.AssistantActionDefinition{
				Name: "sort_clusters",
				Input: domain.AssistantActionInput{
					Type: "object",
					Fields: map[string]domain.AssistantActionField{
						"limit": {Type: "integer", Required: true},
					},
				},
			}).Maybe()
			tc.setup(t, action)

			manager, err := NewAssistantActionManager(encoder, "emb-model",
				assistantActionVector{Action: action},
			)
			require.NoError(t, err)

			result := manager.Execute(ctx, tc.call, nil)

			assert.Equal(t, domain.ChatRole_Tool, result.Role)
			assert.Equal(t, tc.expectedContent, result.Content)
		})
	}
}

func TestAssistantActionManagerListIsSorted(t *testing.T) {
	encoder := mocks.NewMockSemanticEncoder(t)

	manager, err := NewAssistantActionManager(encoder, "emb-model",
		assistantActionVector{Action: namedAction(t, "sort_clusters")},
		assistantActionVector{Action: namedAction(t, "get_accounts")},
		assistantActionVector{Action: namedAction(t, "get_clusters")},
	)
	require.NoError(t, err)

	defs := manager.List()
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}
	assert.Equal(t, []string{"get_accounts", "get_clusters", "sort_clusters"}, names)
}

func TestAssistantActionManagerListRelevant(t *testing.T) {
	ctx := context.Background()

	tests := map[string]struct {
		queryVector   domain.EmbeddingVector
		encodeErr     error
		expectedNames []string
	}{
		"ranked-by-similarity": {
			queryVector:   domain.EmbeddingVector{Vector: []float64{1, 0}},
			expectedNames: []string{"get_clusters"},
		},
		"embedding-failure-falls-back-to-full-catalog": {
			encodeErr:     assert.AnError,
			expectedNames: []string{"get_accounts", "get_clusters"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			encoder := mocks.NewMockSemanticEncoder(t)
			encoder.On("VectorizeQuery", mock.Anything, "emb-model", "oldest clusters").
				Return(tc.queryVector, tc.encodeErr).
				Once()

			manager, err := NewAssistantActionManager(encoder, "emb-model",
				// Aligned with the query vector.
				assistantActionVector{Action: namedAction(t, "get_clusters"), Vectors: []float64{1, 0}},
				// Orthogonal, scores below the similarity floor.
				assistantActionVector{Action: namedAction(t, "get_accounts"), Vectors: []float64{0, 1}},
			)
			require.NoError(t, err)

			defs := manager.ListRelevant(ctx, "oldest clusters")

			names := make([]string, len(defs))
			for i, def := range defs {
				names[i] = def.Name
			}
			assert.Equal(t, tc.expectedNames, names)
		})
	}
}

func TestAssistantActionManagerStatusMessage(t *testing.T) {
	encoder := mocks.NewMockSemanticEncoder(t)
	action := mocks.NewMockAssistantAction(t)
	action.On("Definition").Return(domain.AssistantActionDefinition{Name: "get_clusters"}).Maybe()
	action.On("StatusMessage").Return("🔎 Looking up clusters...").Once()

	manager, err := NewAssistantActionManager(encoder, "emb-model",
		assistantActionVector{Action: action},
	)
	require.NoError(t, err)

	assert.Equal(t, "🔎 Looking up clusters...", manager.StatusMessage("get_clusters"))
	assert.Equal(t, "⏳ Processing request...", manager.StatusMessage("unregistered"))
}
