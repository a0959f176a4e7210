package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/clusteriq/assistant/internal/telemetry"
	"github.com/clusteriq/assistant/internal/usecases"
	"github.com/rs/cors"
)

// AssistantAPIServer is the REST API HTTP server for the assistant service.
type AssistantAPIServer struct {
	Port               int                  `config:"HTTP_PORT" default:"8080"`
	Logger             *log.Logger          `resolve:""`
	AnswerQueryUseCase usecases.AnswerQuery `resolve:""`
}

// Run starts the HTTP server.
func (api AssistantAPIServer) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", api.handleChat)
	mux.HandleFunc("GET /healthz", api.handleHealthz)

	// Register introspection endpoint for debugging and testing purposes
	mux.HandleFunc("GET /introspect", IntrospectHandler)

	h := telemetry.Middleware("assistant-api")(mux)

	// Apply CORS at the top-level so preflight requests hit it, too.
	h = cors.AllowAll().Handler(h)

	s := &http.Server{
		Handler: h,
		Addr:    fmt.Sprintf(":%d", api.Port),
	}

	errCh := make(chan error, 1)
	go func() {
		api.Logger.Printf("AssistantAPIServer: Listening on port %d", api.Port)
		errCh <- s.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.Shutdown(shutdownCtx)
		if err != nil {
			api.Logger.Printf("AssistantAPIServer: error during shutdown: %v", err)
		} else {
			api.Logger.Println("AssistantAPIServer: stopped")
		}
		return err
	case err := <-errCh:
		return err
	}
}

// IsReady checks if the server is up by calling the health endpoint.
func (api AssistantAPIServer) IsReady(ctx context.Context) error {
	resp, err := http.Get(fmt.Sprintf("http://:%d/healthz", api.Port))
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

func (api AssistantAPIServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
