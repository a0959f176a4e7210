// Package mcp exposes the cluster inventory as Model Context Protocol
// tools, so external MCP-capable agents can query the same data the
// built-in assistant uses.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/clusteriq/assistant/internal/domain"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// InventoryMCPServer serves inventory read tools over the MCP
// streamable HTTP transport.
type InventoryMCPServer struct {
	Port      int                    `config:"MCP_PORT" default:"8081"`
	Logger    *log.Logger            `resolve:""`
	Inventory domain.InventoryReader `resolve:""`
}

// Run starts the MCP HTTP server.
func (srv InventoryMCPServer) Run(ctx context.Context) error {
	server := srv.buildServer()

	handler := mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
		return server
	}, nil)

	s := &http.Server{
		Handler: handler,
		Addr:    fmt.Sprintf(":%d", srv.Port),
	}

	errCh := make(chan error, 1)
	go func() {
		srv.Logger.Printf("InventoryMCPServer: Listening on port %d", srv.Port)
		errCh <- s.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.Shutdown(shutdownCtx)
		if err != nil {
			srv.Logger.Printf("InventoryMCPServer: error during shutdown: %v", err)
		} else {
			srv.Logger.Println("InventoryMCPServer: stopped")
		}
		return err
	case err := <-errCh:
		return err
	}
}

func (srv InventoryMCPServer) buildServer() *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "clusteriq-inventory", Version: "1.0.0"}, nil)

	server.AddTool(&mcpsdk.Tool{
		Name:        "get_inventory_overview",
		Description: "Aggregate counts of clusters and instances across all cloud providers.",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
	}, srv.handleOverview)

	server.AddTool(&mcpsdk.Tool{
		Name:        "get_accounts",
		Description: "List cloud accounts, optionally filtered by name.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"account_name": map[string]any{"type": "string"},
			},
		},
	}, srv.handleAccounts)

	server.AddTool(&mcpsdk.Tool{
		Name:        "get_clusters",
		Description: "List clusters, optionally filtered by name.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"cluster_name": map[string]any{"type": "string"},
			},
		},
	}, srv.handleClusters)

	server.AddTool(&mcpsdk.Tool{
		Name:        "get_instances",
		Description: "List instances, optionally filtered by cluster name.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"cluster_name": map[string]any{"type": "string"},
			},
		},
	}, srv.handleInstances)

	return server
}

type nameFilter struct {
	AccountName string `json:"account_name"`
	ClusterName string `json:"cluster_name"`
}

func (srv InventoryMCPServer) handleOverview(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	overview, err := srv.Inventory.Overview(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return toolResult(overview)
}

func (srv InventoryMCPServer) handleAccounts(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	filter, err := decodeFilter(req)
	if err != nil {
		return toolError(err), nil
	}

	if filter.AccountName != "" {
		account, found, err := srv.Inventory.GetAccount(ctx, filter.AccountName)
		if err != nil {
			return toolError(err), nil
		}
		if !found {
			return toolResult([]domain.Account{})
		}
		return toolResult([]domain.Account{account})
	}

	accounts, err := srv.Inventory.ListAccounts(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return toolResult(accounts)
}

func (srv InventoryMCPServer) handleClusters(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	filter, err := decodeFilter(req)
	if err != nil {
		return toolError(err), nil
	}

	if filter.ClusterName != "" {
		cluster, found, err := srv.Inventory.GetCluster(ctx, filter.ClusterName)
		if err != nil {
			return toolError(err), nil
		}
		if !found {
			return toolResult([]domain.Cluster{})
		}
		return toolResult([]domain.Cluster{cluster})
	}

	clusters, err := srv.Inventory.ListClusters(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return toolResult(clusters)
}

func (srv InventoryMCPServer) handleInstances(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	filter, err := decodeFilter(req)
	if err != nil {
		return toolError(err), nil
	}

	var instances []domain.Instance
	if filter.ClusterName != "" {
		instances, err = srv.Inventory.ListClusterInstances(ctx, filter.ClusterName)
	} else {
		instances, err = srv.Inventory.ListInstances(ctx)
	}
	if err != nil {
		return toolError(err), nil
	}
	return toolResult(instances)
}

func decodeFilter(req *mcpsdk.CallToolRequest) (nameFilter, error) {
	var filter nameFilter
	if len(req.Params.Arguments) == 0 {
		return filter, nil
	}
	if err := json.Unmarshal(req.Params.Arguments, &filter); err != nil {
		return filter, fmt.Errorf("invalid tool arguments: %w", err)
	}
	return filter, nil
}

func toolResult(payload any) (*mcpsdk.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil
}

func toolError(err error) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		IsError: true,
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
	}
}
