package mcp

import (
	"context"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/clusteriq/assistant/internal/domain"
	"github.com/clusteriq/assistant/internal/domain/mocks"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestSession(t *testing.T, inventory domain.InventoryReader) *mcpsdk.ClientSession {
	t.Helper()

	srv := InventoryMCPServer{
		Logger:    log.New(&strings.Builder{}, "", 0),
		Inventory: inventory,
	}
	server := srv.buildServer()

	serverTransport, clientTransport := mcpsdk.NewInMemoryTransports()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() {
		session, err := server.Connect(ctx, serverTransport, nil)
		if err != nil {
			return
		}
		<-ctx.Done()
		_ = session.Close()
	}()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func textContent(t *testing.T, result *mcpsdk.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestInventoryMCPServerListTools(t *testing.T) {
	inventory := mocks.NewMockInventoryReader(t)
	session := setupTestSession(t, inventory)

	var names []string
	for tool, err := range session.Tools(context.Background(), nil) {
		require.NoError(t, err)
		names = append(names, tool.Name)
	}

	assert.ElementsMatch(t, []string{
		"get_inventory_overview",
		"get_accounts",
		"get_clusters",
		"get_instances",
	}, names)
}

func TestInventoryMCPServerGetAccounts(t *testing.T) {
	inventory := mocks.NewMockInventoryReader(t)
	inventory.On("ListAccounts", mock.Anything).Return([]domain.Account{
		{Name: "ocp-dev", Provider: "GCP", ClusterCount: 2},
	}, nil)
	session := setupTestSession(t, inventory)

	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      "get_accounts",
		Arguments: map[string]any{},
	})

	require.NoError(t, err)
	assert.False(t, result.IsError)
	body := textContent(t, result)
	assert.Contains(t, body, `"name":"ocp-dev"`)
	assert.Contains(t, body, `"provider":"GCP"`)
}

func TestInventoryMCPServerGetClustersByName(t *testing.T) {
	inventory := mocks.NewMockInventoryReader(t)
	inventory.On("GetCluster", mock.Anything, "prod-eu").Return(domain.Cluster{
		Name:      "prod-eu",
		Provider:  "AWS",
		Status:    "Running",
		CreatedAt: time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
	}, true, nil)
	session := setupTestSession(t, inventory)

	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      "get_clusters",
		Arguments: map[string]any{"cluster_name": "prod-eu"},
	})

	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, textContent(t, result), `"name":"prod-eu"`)
}

func TestInventoryMCPServerBackendFailure(t *testing.T) {
	inventory := mocks.NewMockInventoryReader(t)
	inventory.On("ListInstances", mock.Anything).
		Return(nil, domain.NewBackendUnavailableErr("inventory API unreachable: connection refused"))
	session := setupTestSession(t, inventory)

	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      "get_instances",
		Arguments: map[string]any{},
	})

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textContent(t, result), "unreachable")
}
