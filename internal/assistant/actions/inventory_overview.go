package actions

import (
	"context"

	"github.com/clusteriq/assistant/internal/domain"
)

// NewInventoryOverviewAction creates a new instance of InventoryOverviewAction.
func NewInventoryOverviewAction(inventory domain.InventoryReader) InventoryOverviewAction {
	return InventoryOverviewAction{inventory: inventory}
}

// InventoryOverviewAction is an assistant action returning the aggregate
// inventory snapshot.
type InventoryOverviewAction struct {
	inventory domain.InventoryReader
}

// StatusMessage returns a status message about the action execution.
func (a InventoryOverviewAction) StatusMessage() string {
	return "📊 Summarizing the inventory..."
}

// Definition returns the assistant action definition for InventoryOverviewAction.
func (a InventoryOverviewAction) Definition() domain.AssistantActionDefinition {
	return domain.AssistantActionDefinition{
		Name:        "get_inventory_overview",
		Description: "Get an aggregate snapshot of the cluster inventory: how many clusters are running, stopped and archived, the total instance count and a per-provider breakdown of accounts and clusters. Takes no arguments; pass {}.",
		Input: domain.AssistantActionInput{
			Type:   "object",
			Fields: map[string]domain.AssistantActionField{},
		},
		Hints: domain.AssistantActionHints{
			UseWhen:   "the user asks for totals, a summary or the general state of the inventory.",
			AvoidWhen: "the user asks about a specific account, cluster or instance.",
			ArgRules:  "No arguments accepted.",
		},
	}
}

// Execute executes InventoryOverviewAction.
func (a InventoryOverviewAction) Execute(ctx context.Context, call domain.AssistantActionCall, _ []domain.AssistantMessage) domain.AssistantMessage {
	var params struct{}
	if err := unmarshalActionInput(call.Input, &params); err != nil {
		return actionError(call.ID, "invalid_arguments", err.Error())
	}

	overview, err := a.inventory.Overview(ctx)
	if err != nil {
		return backendError(call.ID, err)
	}

	type providerView struct {
		Provider string `json:"provider"`
		Accounts int    `json:"accounts"`
		Clusters int    `json:"clusters"`
	}

	providers := make([]providerView, len(overview.Providers))
	for i, p := range overview.Providers {
		providers[i] = providerView{
			Provider: p.Provider,
			Accounts: p.AccountCount,
			Clusters: p.ClusterCount,
		}
	}

	return actionResult(call.ID, map[string]any{
		"running_clusters":  overview.RunningClusters,
		"stopped_clusters":  overview.StoppedClusters,
		"archived_clusters": overview.ArchivedClusters,
		"total_instances":   overview.TotalInstances,
		"providers":         providers,
	})
}
