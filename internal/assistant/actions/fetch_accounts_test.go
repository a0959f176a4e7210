package actions

import (
	"context"
	"testing"

	"github.com/clusteriq/assistant/internal/domain"
	"github.com/clusteriq/assistant/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleAccounts() []domain.Account {
	return []domain.Account{
		{Name: "payments-prod", Provider: "AWS", ClusterCount: 4},
		{Name: "data-platform", Provider: "GCP", ClusterCount: 2},
		{Name: "ml-research", Provider: "GCP", ClusterCount: 1},
		{Name: "sandbox", Provider: "GCP", ClusterCount: 0},
		{Name: "legacy", Provider: "Azure", ClusterCount: 3},
	}
}

func TestAccountFetcherActionExecute(t *testing.T) {
	ctx := context.Background()

	tests := map[string]struct {
		input  string
		setup  func(t *testing.T, inventory *mocks.MockInventoryReader)
		verify func(t *testing.T, result domain.AssistantMessage)
	}{
		"gcp-accounts-count-is-three": {
			input: `{"provider":"GCP"}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {
				inventory.On("ListAccounts", mock.Anything).Return(sampleAccounts(), nil).Once()
			},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				require.True(t, result.IsActionCallSuccess())
				assert.Contains(t, result.Content, "count: 3")
				assert.Contains(t, result.Content, "data-platform")
				assert.Contains(t, result.Content, "ml-research")
				assert.Contains(t, result.Content, "sandbox")
				assert.NotContains(t, result.Content, "payments-prod")
			},
		},
		"all-accounts": {
			input: `{}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {
				inventory.On("ListAccounts", mock.Anything).Return(sampleAccounts(), nil).Once()
			},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				require.True(t, result.IsActionCallSuccess())
				assert.Contains(t, result.Content, "count: 5")
			},
		},
		"single-account-lookup": {
			input: `{"account_name":"legacy"}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {
				inventory.On("GetAccount", mock.Anything, "legacy").
					Return(domain.Account{Name: "legacy", Provider: "Azure", ClusterCount: 3}, true, nil).
					Once()
			},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				require.True(t, result.IsActionCallSuccess())
				assert.Contains(t, result.Content, "legacy")
				assert.Contains(t, result.Content, "count: 1")
			},
		},
		"account-not-found-is-empty-listing": {
			input: `{"account_name":"ghost"}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {
				inventory.On("GetAccount", mock.Anything, "ghost").
					Return(domain.Account{}, false, nil).
					Once()
			},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				require.True(t, result.IsActionCallSuccess())
				assert.Contains(t, result.Content, "count: 0")
			},
		},
		"backend-unavailable": {
			input: `{}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {
				inventory.On("ListAccounts", mock.Anything).
					Return(nil, domain.NewBackendUnavailableErr("inventory API timed out")).
					Once()
			},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				assert.False(t, result.IsActionCallSuccess())
				assert.Equal(t, `{"error":"backend_unavailable","details":"inventory API timed out"}`, result.Content)
			},
		},
		"backend-query-error": {
			input: `{}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {
				inventory.On("ListAccounts", mock.Anything).
					Return(nil, domain.NewBackendQueryErr("inventory API returned status 500")).
					Once()
			},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				assert.False(t, result.IsActionCallSuccess())
				assert.Equal(t, `{"error":"backend_query_error","details":"inventory API returned status 500"}`, result.Content)
			},
		},
		"unknown-argument": {
			input: `{"region":"us-east-1"}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				assert.False(t, result.IsActionCallSuccess())
				assert.Contains(t, result.Content, `"error":"invalid_arguments"`)
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			inventory := mocks.NewMockInventoryReader(t)
			tc.setup(t, inventory)

			action := NewAccountFetcherAction(inventory)
			result := action.Execute(ctx, domain.AssistantActionCall{ID: "call-1", Name: "get_accounts", Input: tc.input}, nil)

			assert.Equal(t, domain.ChatRole_Tool, result.Role)
			require.NotNil(t, result.ActionCallID)
			assert.Equal(t, "call-1", *result.ActionCallID)
			tc.verify(t, result)
		})
	}
}
