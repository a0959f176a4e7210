package actions

import (
	"context"
	"strings"

	"github.com/clusteriq/assistant/internal/domain"
)

// NewAccountFetcherAction creates a new instance of AccountFetcherAction.
func NewAccountFetcherAction(inventory domain.InventoryReader) AccountFetcherAction {
	return AccountFetcherAction{inventory: inventory}
}

// AccountFetcherAction is an assistant action for listing cloud accounts.
type AccountFetcherAction struct {
	inventory domain.InventoryReader
}

// StatusMessage returns a status message about the action execution.
func (a AccountFetcherAction) StatusMessage() string {
	return "🔎 Looking up accounts..."
}

// Definition returns the assistant action definition for AccountFetcherAction.
func (a AccountFetcherAction) Definition() domain.AssistantActionDefinition {
	return domain.AssistantActionDefinition{
		Name:        "get_accounts",
		Description: "List cloud accounts tracked by the inventory, with cluster counts per account. Optional keys: account_name (exact name of one account), provider (AWS, GCP or Azure). Use strict JSON only. Valid template: {\"provider\":\"GCP\"}. To list every account, pass {}.",
		Input: domain.AssistantActionInput{
			Type: "object",
			Fields: map[string]domain.AssistantActionField{
				"account_name": {
					Type:        "string",
					Description: "Optional exact account name to look up a single account.",
					Required:    false,
				},
				"provider": {
					Type:        "string",
					Description: "Optional provider filter. Allowed values: AWS, GCP, Azure.",
					Required:    false,
				},
			},
		},
		Hints: domain.AssistantActionHints{
			UseWhen:   "the user asks which accounts exist, how many accounts a provider has, or about one named account.",
			AvoidWhen: "the question is about clusters or instances rather than accounts.",
			ArgRules:  "provider accepts exactly AWS, GCP or Azure; never combine values.",
		},
	}
}

// Execute executes AccountFetcherAction.
func (a AccountFetcherAction) Execute(ctx context.Context, call domain.AssistantActionCall, _ []domain.AssistantMessage) domain.AssistantMessage {
	params := struct {
		AccountName *string `json:"account_name"`
		Provider    *string `json:"provider"`
	}{}

	if err := unmarshalActionInput(call.Input, &params); err != nil {
		return actionError(call.ID, "invalid_arguments", err.Error())
	}

	var accounts []domain.Account
	if params.AccountName != nil {
		account, found, err := a.inventory.GetAccount(ctx, *params.AccountName)
		if err != nil {
			return backendError(call.ID, err)
		}
		if found {
			accounts = []domain.Account{account}
		}
	} else {
		var err error
		accounts, err = a.inventory.ListAccounts(ctx)
		if err != nil {
			return backendError(call.ID, err)
		}
	}

	if params.Provider != nil {
		filtered := make([]domain.Account, 0, len(accounts))
		for _, account := range accounts {
			if strings.EqualFold(account.Provider, *params.Provider) {
				filtered = append(filtered, account)
			}
		}
		accounts = filtered
	}

	type accountView struct {
		Name     string `json:"name"`
		Provider string `json:"provider"`
		Clusters int    `json:"clusters"`
	}

	views := make([]accountView, len(accounts))
	for i, account := range accounts {
		views[i] = accountView{
			Name:     account.Name,
			Provider: account.Provider,
			Clusters: account.ClusterCount,
		}
	}

	return actionResult(call.ID, map[string]any{
		"accounts": views,
		"count":    len(views),
	})
}
