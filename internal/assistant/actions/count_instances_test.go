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

func TestInstanceCounterActionExecute(t *testing.T) {
	ctx := context.Background()

	instances := []domain.Instance{
		{Name: "i-1", ClusterName: "prod-eu-1", AccountName: "payments-prod", Provider: "AWS"},
		{Name: "i-2", ClusterName: "prod-eu-1", AccountName: "payments-prod", Provider: "AWS"},
		{Name: "i-3", ClusterName: "analytics", AccountName: "data-platform", Provider: "GCP"},
	}

	tests := map[string]struct {
		input  string
		setup  func(t *testing.T, inventory *mocks.MockInventoryReader)
		verify func(t *testing.T, result domain.AssistantMessage)
	}{
		"total-only": {
			input: `{}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {
				inventory.On("ListInstances", mock.Anything).Return(instances, nil).Once()
			},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				require.True(t, result.IsActionCallSuccess())
				assert.Contains(t, result.Content, "total: 3")
				assert.NotContains(t, result.Content, "groups")
			},
		},
		"grouped-by-provider": {
			input: `{"group_by":"provider"}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {
				inventory.On("ListInstances", mock.Anything).Return(instances, nil).Once()
			},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				require.True(t, result.IsActionCallSuccess())
				assert.Contains(t, result.Content, "AWS: 2")
				assert.Contains(t, result.Content, "GCP: 1")
			},
		},
		"scoped-to-one-cluster": {
			input: `{"cluster_name":"prod-eu-1"}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {
				inventory.On("ListClusterInstances", mock.Anything, "prod-eu-1").
					Return(instances[:2], nil).
					Once()
			},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				require.True(t, result.IsActionCallSuccess())
				assert.Contains(t, result.Content, "total: 2")
			},
		},
		"invalid-group-by": {
			input: `{"group_by":"region"}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				assert.Equal(t, `{"error":"invalid_group_by","details":"unknown group_by dimension: region"}`, result.Content)
			},
		},
		"backend-failure": {
			input: `{}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {
				inventory.On("ListInstances", mock.Anything).
					Return(nil, domain.NewBackendUnavailableErr("inventory API timed out")).
					Once()
			},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				assert.Contains(t, result.Content, `"error":"backend_unavailable"`)
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			inventory := mocks.NewMockInventoryReader(t)
			tc.setup(t, inventory)

			action := NewInstanceCounterAction(inventory)
			result := action.Execute(ctx, domain.AssistantActionCall{ID: "call-5", Name: "count_instances", Input: tc.input}, nil)

			assert.Equal(t, domain.ChatRole_Tool, result.Role)
			tc.verify(t, result)
		})
	}
}
