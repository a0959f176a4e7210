package actions

import (
	"context"

	"github.com/clusteriq/assistant/internal/domain"
)

// NewInstanceFetcherAction creates a new instance of InstanceFetcherAction.
func NewInstanceFetcherAction(inventory domain.InventoryReader) InstanceFetcherAction {
	return InstanceFetcherAction{inventory: inventory}
}

// InstanceFetcherAction is an assistant action for listing compute instances.
type InstanceFetcherAction struct {
	inventory domain.InventoryReader
}

// StatusMessage returns a status message about the action execution.
func (a InstanceFetcherAction) StatusMessage() string {
	return "🔎 Looking up instances..."
}

// Definition returns the assistant action definition for InstanceFetcherAction.
func (a InstanceFetcherAction) Definition() domain.AssistantActionDefinition {
	return domain.AssistantActionDefinition{
		Name:        "get_instances",
		Description: "List compute instances tracked by the inventory with their type, status and owning cluster. Optional key: cluster_name (exact name) to scope the listing to one cluster. Use strict JSON only. Valid template: {\"cluster_name\":\"prod-eu-1\"}. To list every instance, pass {}.",
		Input: domain.AssistantActionInput{
			Type: "object",
			Fields: map[string]domain.AssistantActionField{
				"cluster_name": {
					Type:        "string",
					Description: "Optional exact cluster name to scope the listing.",
					Required:    false,
				},
			},
		},
		Hints: domain.AssistantActionHints{
			UseWhen:   "the user asks which instances exist or what runs inside one cluster.",
			AvoidWhen: "the user only wants how many instances there are; use count_instances instead.",
			ArgRules:  "cluster_name must match an inventory cluster name exactly.",
		},
	}
}

// Execute executes InstanceFetcherAction.
func (a InstanceFetcherAction) Execute(ctx context.Context, call domain.AssistantActionCall, _ []domain.AssistantMessage) domain.AssistantMessage {
	params := struct {
		ClusterName *string `json:"cluster_name"`
	}{}

	if err := unmarshalActionInput(call.Input, &params); err != nil {
		return actionError(call.ID, "invalid_arguments", err.Error())
	}

	var instances []domain.Instance
	var err error
	if params.ClusterName != nil {
		instances, err = a.inventory.ListClusterInstances(ctx, *params.ClusterName)
	} else {
		instances, err = a.inventory.ListInstances(ctx)
	}
	if err != nil {
		return backendError(call.ID, err)
	}

	type instanceView struct {
		Name         string `json:"name"`
		Cluster      string `json:"cluster"`
		Provider     string `json:"provider"`
		InstanceType string `json:"instance_type"`
		Status       string `json:"status"`
	}

	views := make([]instanceView, len(instances))
	for i, inst := range instances {
		views[i] = instanceView{
			Name:         inst.Name,
			Cluster:      inst.ClusterName,
			Provider:     inst.Provider,
			InstanceType: inst.InstanceType,
			Status:       inst.Status,
		}
	}

	return actionResult(call.ID, map[string]any{
		"instances": views,
		"count":     len(views),
	})
}
