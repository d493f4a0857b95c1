// Package chat holds the in-memory conversation state for one interactive
// session.
package chat

import "github.com/diogo/routerchat/internal/models"

// ContextWindow is the number of most recent turns sent as context with
// each request.
const ContextWindow = 5

// Turn is one message in the conversation. Tokens is only meaningful on
// assistant turns, where it records the usage reported for that completion.
// Turns are immutable once appended.
type Turn struct {
	Role    string
	Content string
	Tokens  int
}

// Session is the conversation state for a single interactive session: the
// ordered turn sequence, the running token counter, and the selected model.
// Nothing here outlives the process. A Session is owned by one goroutine;
// it performs no locking of its own.
type Session struct {
	turns       []Turn
	totalTokens int
	modelID     string
}

// NewSession creates an empty session for the given model
func NewSession(modelID string) *Session {
	return &Session{modelID: modelID}
}

// AppendUser records a user turn
func (s *Session) AppendUser(content string) {
	s.turns = append(s.turns, Turn{Role: models.RoleUser, Content: content})
}

// AppendAssistant records a completed assistant turn and adds its token
// count to the running total
func (s *Session) AppendAssistant(content string, tokens int) {
	s.turns = append(s.turns, Turn{Role: models.RoleAssistant, Content: content, Tokens: tokens})
	s.totalTokens += tokens
}

// Reset clears the turn sequence and zeroes the token counter. The selected
// model is kept.
func (s *Session) Reset() {
	s.turns = nil
	s.totalTokens = 0
}

// Turns returns a copy of the turn sequence in conversation order
func (s *Session) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of turns
func (s *Session) Len() int {
	return len(s.turns)
}

// TotalTokens returns the sum of token counts over committed assistant turns
func (s *Session) TotalTokens() int {
	return s.totalTokens
}

// Model returns the session's model identifier
func (s *Session) Model() string {
	return s.modelID
}

// SetModel changes the model used for subsequent requests
func (s *Session) SetModel(modelID string) {
	s.modelID = modelID
}

// Window returns the last n turns as {role, content} messages, dropping the
// token counts. Order is preserved; fewer entries are returned when the
// history is shorter.
func (s *Session) Window(n int) []models.Message {
	start := len(s.turns) - n
	if start < 0 {
		start = 0
	}

	window := make([]models.Message, 0, len(s.turns)-start)
	for _, turn := range s.turns[start:] {
		window = append(window, models.Message{Role: turn.Role, Content: turn.Content})
	}
	return window
}
