package actions

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/clusteriq/assistant/internal/domain"
	"github.com/clusteriq/assistant/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleClusters() []domain.Cluster {
	mk := func(name string, created string, instances int) domain.Cluster {
		t, _ := time.Parse(time.DateOnly, created)
		return domain.Cluster{
			Name:          name,
			Provider:      "AWS",
			Status:        "Running",
			AccountName:   "payments-prod",
			InstanceCount: instances,
			CreatedAt:     t,
		}
	}
	return []domain.Cluster{
		mk("zeta", "2024-05-01", 9),
		mk("alpha", "2021-02-14", 4),
		mk("kappa", "2023-11-30", 16),
		mk("iota", "2020-07-08", 2),
		mk("sigma", "2022-01-19", 25),
		mk("omega", "2025-03-03", 1),
		mk("delta", "2019-12-25", 11),
	}
}

func TestClusterSorterActionExecute(t *testing.T) {
	ctx := context.Background()

	tests := map[string]struct {
		input  string
		setup  func(t *testing.T, inventory *mocks.MockInventoryReader)
		verify func(t *testing.T, result domain.AssistantMessage)
	}{
		"five-oldest-clusters": {
			input: `{"field":"creation_date","order":"asc","limit":5}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {
				inventory.On("ListClusters", mock.Anything).Return(sampleClusters(), nil).Once()
			},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				require.True(t, result.IsActionCallSuccess())
				assert.Contains(t, result.Content, "count: 5")
				for _, name := range []string{"delta", "iota", "alpha", "sigma", "kappa"} {
					assert.Contains(t, result.Content, name)
				}
				assert.NotContains(t, result.Content, "omega")
				assert.NotContains(t, result.Content, "zeta")
				// Oldest first.
				assert.Less(t, strings.Index(result.Content, "delta"), strings.Index(result.Content, "iota"))
			},
		},
		"largest-by-instance-count": {
			input: `{"field":"instance_count","order":"desc","limit":2}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {
				inventory.On("ListClusters", mock.Anything).Return(sampleClusters(), nil).Once()
			},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				require.True(t, result.IsActionCallSuccess())
				assert.Contains(t, result.Content, "sigma")
				assert.Contains(t, result.Content, "kappa")
				assert.NotContains(t, result.Content, "delta")
			},
		},
		"limit-larger-than-listing": {
			input: `{"field":"name","limit":100}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {
				inventory.On("ListClusters", mock.Anything).Return(sampleClusters(), nil).Once()
			},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				require.True(t, result.IsActionCallSuccess())
				assert.Contains(t, result.Content, "count: 7")
			},
		},
		"unknown-field": {
			input: `{"field":"cost","limit":5}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				assert.Equal(t, `{"error":"invalid_field","details":"unknown sort field: cost"}`, result.Content)
			},
		},
		"unknown-order": {
			input: `{"field":"name","order":"sideways","limit":5}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				assert.Equal(t, `{"error":"invalid_order","details":"unknown sort order: sideways"}`, result.Content)
			},
		},
		"non-positive-limit": {
			input: `{"field":"name","limit":0}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				assert.Equal(t, `{"error":"invalid_limit","details":"limit must be a positive integer"}`, result.Content)
			},
		},
		"backend-failure": {
			input: `{"field":"name","limit":3}`,
			setup: func(t *testing.T, inventory *mocks.MockInventoryReader) {
				inventory.On("ListClusters", mock.Anything).
					Return(nil, domain.NewBackendQueryErr("inventory API returned status 503")).
					Once()
			},
			verify: func(t *testing.T, result domain.AssistantMessage) {
				assert.Contains(t, result.Content, `"error":"backend_query_error"`)
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			inventory := mocks.NewMockInventoryReader(t)
			tc.setup(t, inventory)

			action := NewClusterSorterAction(inventory)
			result := action.Execute(ctx, domain.AssistantActionCall{ID: "call-9", Name: "sort_clusters", Input: tc.input}, nil)

			assert.Equal(t, domain.ChatRole_Tool, result.Role)
			require.NotNil(t, result.ActionCallID)
			assert.Equal(t, "call-9", *result.ActionCallID)
			tc.verify(t, result)
		})
	}
}
