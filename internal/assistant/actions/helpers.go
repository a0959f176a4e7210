package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/clusteriq/assistant/internal/domain"
	"github.com/toon-format/toon-go"
)

// unmarshalActionInput unmarshals the action input from a JSON string into
// the target struct, ensuring that only a single JSON object is present and
// that there are no unknown fields.
func unmarshalActionInput(arguments string, target any) error {
	if strings.TrimSpace(arguments) == "" {
		arguments = "{}"
	}

	decoder := json.NewDecoder(strings.NewReader(arguments))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return err
	}

	// Reject trailing JSON values after the first object.
	var extra any
	if err := decoder.Decode(&extra); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return fmt.Errorf("action arguments must contain a single JSON object")
}

// extractDateParam tries to extract a date from the provided parameter
// or from the user message history.
func extractDateParam(param string, history []domain.AssistantMessage, referenceDate time.Time) (time.Time, bool) {
	if t, ok := domain.ExtractTimeFromText(param, referenceDate, referenceDate.Location()); ok {
		return t, true
	}

	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if msg.Role != domain.ChatRole_User {
			continue
		}
		if t, ok := domain.ExtractTimeFromText(msg.Content, referenceDate, referenceDate.Location()); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// actionError builds a tool-role message carrying a JSON error object.
func actionError(callID, code, details string) domain.AssistantMessage {
	return domain.AssistantMessage{
		Role:         domain.ChatRole_Tool,
		ActionCallID: &callID,
		Content:      fmt.Sprintf(`{"error":"%s","details":"%s"}`, code, details),
	}
}

// backendError maps inventory read failures to a stable error code so the
// model can tell an unreachable backend from a failed query.
func backendError(callID string, err error) domain.AssistantMessage {
	code := "backend_query_error"
	var unavailable *domain.BackendUnavailableErr
	if errors.As(err, &unavailable) {
		code = "backend_unavailable"
	}
	return actionError(callID, code, err.Error())
}

// actionResult builds a tool-role message with a TOON-encoded payload to
// keep tool turns token-compact.
func actionResult(callID string, payload any) domain.AssistantMessage {
	content, err := toon.MarshalString(payload, toon.WithLengthMarkers(true))
	if err != nil {
		return actionError(callID, "marshal_error", err.Error())
	}
	return domain.AssistantMessage{
		Role:         domain.ChatRole_Tool,
		ActionCallID: &callID,
		Content:      content,
	}
}
