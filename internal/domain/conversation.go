package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ChatRole identifies the author of a transcript message.
type ChatRole string

const (
	ChatRole_System    ChatRole = "system"
	ChatRole_Developer ChatRole = "developer"
	ChatRole_User      ChatRole = "user"
	ChatRole_Assistant ChatRole = "assistant"
	ChatRole_Tool      ChatRole = "tool"
)

// Session is the append-only transcript of one question/answer exchange.
// It lives only for the duration of the exchange and is owned by the
// dispatch loop; nothing persists it.
type Session struct {
	ID         uuid.UUID
	transcript []AssistantMessage
	steps      int
	pending    map[string]string // action call ID -> action name
}

// NewSession creates an empty session.
func NewSession(id uuid.UUID) *Session {
	return &Session{
		ID:      id,
		pending: make(map[string]string),
	}
}

// AppendSystem appends a system message.
func (s *Session) AppendSystem(content string) {
	s.transcript = append(s.transcript, AssistantMessage{Role: ChatRole_System, Content: content})
}

// AppendDeveloper appends a developer instruction, used for correction re-prompts.
func (s *Session) AppendDeveloper(content string) {
	s.transcript = append(s.transcript, AssistantMessage{Role: ChatRole_Developer, Content: content})
}

// AppendUserQuery appends the user's question.
func (s *Session) AppendUserQuery(content string) {
	s.transcript = append(s.transcript, AssistantMessage{Role: ChatRole_User, Content: content})
}

// AppendAssistantText appends plain assistant text.
func (s *Session) AppendAssistantText(content string) {
	s.transcript = append(s.transcript, AssistantMessage{Role: ChatRole_Assistant, Content: content})
}

// AppendActionRequest appends an assistant message carrying one action call
// and marks the call as awaiting its result.
func (s *Session) AppendActionRequest(call AssistantActionCall) error {
	if call.ID == "" {
		return NewValidationErr("action call has no ID")
	}
	if _, exists := s.pending[call.ID]; exists {
		return NewValidationErr(fmt.Sprintf("action call %s already pending", call.ID))
	}
	s.pending[call.ID] = call.Name
	s.transcript = append(s.transcript, AssistantMessage{
		Role:        ChatRole_Assistant,
		ActionCalls: []AssistantActionCall{call},
	})
	return nil
}

// AppendActionResult appends a tool-role result message. The result must
// correspond to a pending action request.
func (s *Session) AppendActionResult(msg AssistantMessage) error {
	if msg.Role != ChatRole_Tool || msg.ActionCallID == nil {
		return NewValidationErr("action result must be a tool message with a call ID")
	}
	if _, exists := s.pending[*msg.ActionCallID]; !exists {
		return NewValidationErr(fmt.Sprintf("no pending action call %s", *msg.ActionCallID))
	}
	delete(s.pending, *msg.ActionCallID)
	s.transcript = append(s.transcript, msg)
	return nil
}

// PendingActions returns the names of action calls still awaiting a result.
func (s *Session) PendingActions() []string {
	names := make([]string, 0, len(s.pending))
	for _, name := range s.pending {
		names = append(names, name)
	}
	return names
}

// Transcript returns a copy of the transcript in append order.
func (s *Session) Transcript() []AssistantMessage {
	out := make([]AssistantMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// RecordStep increments and returns the combined model/action step counter.
func (s *Session) RecordStep() int {
	s.steps++
	return s.steps
}

// Steps returns the number of steps consumed so far.
func (s *Session) Steps() int {
	return s.steps
}
