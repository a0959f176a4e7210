package app

import (
	"github.com/cleitonmarx/symbiont"
	"github.com/clusteriq/assistant/internal/adapters/inbound/http"
	"github.com/clusteriq/assistant/internal/adapters/inbound/mcp"
	"github.com/clusteriq/assistant/internal/adapters/outbound/clusteriq"
	"github.com/clusteriq/assistant/internal/adapters/outbound/config"
	"github.com/clusteriq/assistant/internal/adapters/outbound/log"
	"github.com/clusteriq/assistant/internal/adapters/outbound/modelrunner"
	"github.com/clusteriq/assistant/internal/adapters/outbound/time"
	"github.com/clusteriq/assistant/internal/assistant"
	"github.com/clusteriq/assistant/internal/telemetry"
	"github.com/clusteriq/assistant/internal/usecases"
)

// NewAssistantApp creates and returns a new instance of the assistant application.
func NewAssistantApp(initializers ...symbiont.Initializer) *symbiont.App {
	return symbiont.NewApp().
		Initialize(initializers...).
		Initialize(
			&log.InitLogger{},
			&telemetry.InitOpenTelemetry{},
			&telemetry.InitHttpClient{},
			&config.InitVaultProvider{},
			&time.InitCurrentTimeProvider{},
			&clusteriq.InitInventoryReader{},
			&modelrunner.InitAssistantClient{},

			&assistant.InitAssistantActionRegistry{},
			&usecases.InitAnswerQuery{},
		).
		Host(
			&http.AssistantAPIServer{},
			&mcp.InventoryMCPServer{},
		).
		Introspect(&MermaidGraphIntrospector{})
}
