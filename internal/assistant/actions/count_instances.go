package actions

import (
	"context"

	"github.com/clusteriq/assistant/internal/domain"
)

// NewInstanceCounterAction creates a new instance of InstanceCounterAction.
func NewInstanceCounterAction(inventory domain.InventoryReader) InstanceCounterAction {
	return InstanceCounterAction{inventory: inventory}
}

// InstanceCounterAction is an assistant action counting compute instances,
// optionally grouped by one dimension.
type InstanceCounterAction struct {
	inventory domain.InventoryReader
}

// StatusMessage returns a status message about the action execution.
func (a InstanceCounterAction) StatusMessage() string {
	return "🧮 Counting instances..."
}

// Definition returns the assistant action definition for InstanceCounterAction.
func (a InstanceCounterAction) Definition() domain.AssistantActionDefinition {
	return domain.AssistantActionDefinition{
		Name:        "count_instances",
		Description: "Count compute instances across the inventory. Optional keys: cluster_name (exact name, count only that cluster's instances), group_by (cluster, account or provider, return a per-group breakdown). Use strict JSON only. Valid template: {\"group_by\":\"provider\"}. For the total only, pass {}.",
		Input: domain.AssistantActionInput{
			Type: "object",
			Fields: map[string]domain.AssistantActionField{
				"cluster_name": {
					Type:        "string",
					Description: "Optional exact cluster name to count instances for one cluster.",
					Required:    false,
				},
				"group_by": {
					Type:        "string",
					Description: "Optional grouping dimension. Allowed values: cluster, account, provider.",
					Enum:        []string{"cluster", "account", "provider"},
					Required:    false,
				},
			},
		},
		Hints: domain.AssistantActionHints{
			UseWhen:   "the user asks how many instances exist, in total or per cluster/account/provider.",
			AvoidWhen: "the user wants instance details such as types or statuses; use get_instances instead.",
			ArgRules:  "cluster_name and group_by are independent; group_by accepts exactly cluster, account or provider.",
		},
	}
}

// Execute executes InstanceCounterAction.
func (a InstanceCounterAction) Execute(ctx context.Context, call domain.AssistantActionCall, _ []domain.AssistantMessage) domain.AssistantMessage {
	params := struct {
		ClusterName *string `json:"cluster_name"`
		GroupBy     *string `json:"group_by"`
	}{}

	if err := unmarshalActionInput(call.Input, &params); err != nil {
		return actionError(call.ID, "invalid_arguments", err.Error())
	}

	var groupBy *domain.InstanceGroupBy
	if params.GroupBy != nil {
		parsed, err := domain.ParseInstanceGroupBy(*params.GroupBy)
		if err != nil {
			return actionError(call.ID, "invalid_group_by", err.Error())
		}
		groupBy = &parsed
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

	output := map[string]any{
		"total": len(instances),
	}
	if groupBy != nil {
		output["group_by"] = string(*groupBy)
		output["groups"] = domain.GroupInstanceCounts(instances, *groupBy)
	}

	return actionResult(call.ID, output)
}
