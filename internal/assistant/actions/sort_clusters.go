package actions

import (
	"context"

	"github.com/clusteriq/assistant/internal/domain"
)

// NewClusterSorterAction creates a new instance of ClusterSorterAction.
func NewClusterSorterAction(inventory domain.InventoryReader) ClusterSorterAction {
	return ClusterSorterAction{inventory: inventory}
}

// ClusterSorterAction is an assistant action returning the top-N clusters
// ordered by a chosen field.
type ClusterSorterAction struct {
	inventory domain.InventoryReader
}

// StatusMessage returns a status message about the action execution.
func (a ClusterSorterAction) StatusMessage() string {
	return "📋 Ranking clusters..."
}

// Definition returns the assistant action definition for ClusterSorterAction.
func (a ClusterSorterAction) Definition() domain.AssistantActionDefinition {
	return domain.AssistantActionDefinition{
		Name:        "sort_clusters",
		Description: "Return the first N clusters ordered by one field. Required keys: field (creation_date, name or instance_count), limit (integer >= 1). Optional key: order (asc or desc, default asc). asc with creation_date returns the oldest clusters first. Use strict JSON only. Valid template: {\"field\":\"creation_date\",\"order\":\"asc\",\"limit\":5}.",
		Input: domain.AssistantActionInput{
			Type: "object",
			Fields: map[string]domain.AssistantActionField{
				"field": {
					Type:        "string",
					Description: "Field to order by. REQUIRED. Allowed values: creation_date, name, instance_count.",
					Enum:        []string{"creation_date", "name", "instance_count"},
					Required:    true,
				},
				"order": {
					Type:        "string",
					Description: "Optional sort direction: asc or desc. Defaults to asc.",
					Enum:        []string{"asc", "desc"},
					Required:    false,
				},
				"limit": {
					Type:        "integer",
					Description: "Number of clusters to return. REQUIRED. Positive integer only.",
					Required:    true,
				},
			},
		},
		Hints: domain.AssistantActionHints{
			UseWhen:   "the user asks for the oldest, newest, biggest or first N clusters.",
			AvoidWhen: "the user only filters clusters without asking for an ordering; use get_clusters instead.",
			ArgRules:  "For 'oldest' use field creation_date with order asc; for 'largest' use field instance_count with order desc.",
		},
	}
}

// Execute executes ClusterSorterAction.
func (a ClusterSorterAction) Execute(ctx context.Context, call domain.AssistantActionCall, _ []domain.AssistantMessage) domain.AssistantMessage {
	params := struct {
		Field string `json:"field"`
		Order string `json:"order"`
		Limit int    `json:"limit"`
	}{}

	if err := unmarshalActionInput(call.Input, &params); err != nil {
		return actionError(call.ID, "invalid_arguments", err.Error())
	}

	field, err := domain.ParseClusterSortField(params.Field)
	if err != nil {
		return actionError(call.ID, "invalid_field", err.Error())
	}
	order, err := domain.ParseSortOrder(params.Order)
	if err != nil {
		return actionError(call.ID, "invalid_order", err.Error())
	}
	if params.Limit < 1 {
		return actionError(call.ID, "invalid_limit", "limit must be a positive integer")
	}

	clusters, err := a.inventory.ListClusters(ctx)
	if err != nil {
		return backendError(call.ID, err)
	}

	sorted := domain.SortClusters(clusters, field, order)
	if params.Limit < len(sorted) {
		sorted = sorted[:params.Limit]
	}

	return actionResult(call.ID, map[string]any{
		"clusters": clusterViews(sorted),
		"count":    len(sorted),
		"field":    string(field),
		"order":    string(order),
	})
}
