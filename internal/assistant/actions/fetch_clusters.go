package actions

import (
	"context"
	"strings"
	"time"

	"github.com/clusteriq/assistant/internal/domain"
)

// NewClusterFetcherAction creates a new instance of ClusterFetcherAction.
func NewClusterFetcherAction(inventory domain.InventoryReader, timeProvider domain.CurrentTimeProvider) ClusterFetcherAction {
	return ClusterFetcherAction{
		inventory:    inventory,
		timeProvider: timeProvider,
	}
}

// ClusterFetcherAction is an assistant action for listing clusters.
type ClusterFetcherAction struct {
	inventory    domain.InventoryReader
	timeProvider domain.CurrentTimeProvider
}

// StatusMessage returns a status message about the action execution.
func (a ClusterFetcherAction) StatusMessage() string {
	return "🔎 Looking up clusters..."
}

// Definition returns the assistant action definition for ClusterFetcherAction.
func (a ClusterFetcherAction) Definition() domain.AssistantActionDefinition {
	return domain.AssistantActionDefinition{
		Name:        "get_clusters",
		Description: "List clusters tracked by the inventory with their provider, status, region, owning account, instance count and creation date. Optional keys: cluster_name (exact name of one cluster), account_name, provider (AWS, GCP or Azure), status (Running, Stopped or Terminated), created_after, created_before (YYYY-MM-DD or a phrase like '3 months ago'). Use strict JSON only. Valid template: {\"provider\":\"AWS\",\"status\":\"Running\"}. To list every cluster, pass {}.",
		Input: domain.AssistantActionInput{
			Type: "object",
			Fields: map[string]domain.AssistantActionField{
				"cluster_name": {
					Type:        "string",
					Description: "Optional exact cluster name to look up a single cluster.",
					Required:    false,
				},
				"account_name": {
					Type:        "string",
					Description: "Optional owning account filter (exact name).",
					Required:    false,
				},
				"provider": {
					Type:        "string",
					Description: "Optional provider filter. Allowed values: AWS, GCP, Azure.",
					Required:    false,
				},
				"status": {
					Type:        "string",
					Description: "Optional status filter. Allowed values: Running, Stopped, Terminated.",
					Required:    false,
				},
				"created_after": {
					Type:        "string",
					Description: "Optional lower creation-date bound (YYYY-MM-DD or a relative phrase).",
					Required:    false,
				},
				"created_before": {
					Type:        "string",
					Description: "Optional upper creation-date bound (YYYY-MM-DD or a relative phrase).",
					Required:    false,
				},
			},
		},
		Hints: domain.AssistantActionHints{
			UseWhen:   "the user asks which clusters exist, about one named cluster, or filters clusters by provider, account, status or age.",
			AvoidWhen: "the user asks for an ordered top-N listing; use sort_clusters for that.",
			ArgRules:  "Filters combine with AND. Dates accept YYYY-MM-DD or phrases such as '2 weeks ago'.",
		},
	}
}

// Execute executes ClusterFetcherAction.
func (a ClusterFetcherAction) Execute(ctx context.Context, call domain.AssistantActionCall, history []domain.AssistantMessage) domain.AssistantMessage {
	params := struct {
		ClusterName   *string `json:"cluster_name"`
		AccountName   *string `json:"account_name"`
		Provider      *string `json:"provider"`
		Status        *string `json:"status"`
		CreatedAfter  *string `json:"created_after"`
		CreatedBefore *string `json:"created_before"`
	}{}

	if err := unmarshalActionInput(call.Input, &params); err != nil {
		return actionError(call.ID, "invalid_arguments", err.Error())
	}

	var createdAfter, createdBefore *time.Time
	if params.CreatedAfter != nil || params.CreatedBefore != nil {
		now := a.timeProvider.Now()
		if params.CreatedAfter != nil {
			t, ok := extractDateParam(*params.CreatedAfter, history, now)
			if !ok {
				return actionError(call.ID, "invalid_created_after", "Could not parse created_after date.")
			}
			createdAfter = &t
		}
		if params.CreatedBefore != nil {
			t, ok := extractDateParam(*params.CreatedBefore, history, now)
			if !ok {
				return actionError(call.ID, "invalid_created_before", "Could not parse created_before date.")
			}
			createdBefore = &t
		}
	}

	var clusters []domain.Cluster
	if params.ClusterName != nil {
		cluster, found, err := a.inventory.GetCluster(ctx, *params.ClusterName)
		if err != nil {
			return backendError(call.ID, err)
		}
		if found {
			clusters = []domain.Cluster{cluster}
		}
	} else {
		var err error
		clusters, err = a.inventory.ListClusters(ctx)
		if err != nil {
			return backendError(call.ID, err)
		}
	}

	filtered := make([]domain.Cluster, 0, len(clusters))
	for _, cluster := range clusters {
		if params.AccountName != nil && !strings.EqualFold(cluster.AccountName, *params.AccountName) {
			continue
		}
		if params.Provider != nil && !strings.EqualFold(cluster.Provider, *params.Provider) {
			continue
		}
		if params.Status != nil && !strings.EqualFold(cluster.Status, *params.Status) {
			continue
		}
		if createdAfter != nil && cluster.CreatedAt.Before(*createdAfter) {
			continue
		}
		if createdBefore != nil && cluster.CreatedAt.After(*createdBefore) {
			continue
		}
		filtered = append(filtered, cluster)
	}

	return actionResult(call.ID, map[string]any{
		"clusters": clusterViews(filtered),
		"count":    len(filtered),
	})
}

type clusterView struct {
	Name      string `json:"name"`
	Account   string `json:"account"`
	Provider  string `json:"provider"`
	Status    string `json:"status"`
	Region    string `json:"region"`
	Instances int    `json:"instances"`
	CreatedAt string `json:"created_at"`
}

func clusterViews(clusters []domain.Cluster) []clusterView {
	views := make([]clusterView, len(clusters))
	for i, cluster := range clusters {
		views[i] = clusterView{
			Name:      cluster.Name,
			Account:   cluster.AccountName,
			Provider:  cluster.Provider,
			Status:    cluster.Status,
			Region:    cluster.Region,
			Instances: cluster.InstanceCount,
			CreatedAt: cluster.CreatedAt.Format(time.DateOnly),
		}
	}
	return views
}
