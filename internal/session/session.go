// Package session holds per-session conversational state. Each session owns
// its own history; ledger-derived data is shared read-only elsewhere.
package session

import (
	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

// Session accumulates query/response pairs, bounded to maxTurns pairs.
// Oldest turns are dropped first so long sessions cannot grow without limit.
type Session struct {
	maxTurns int
	msgs     []types.ChatMessage
}

func New(maxTurns int) *Session {
	if maxTurns <= 0 {
		maxTurns = 1
	}
	return &Session{maxTurns: maxTurns}
}

// Append records one completed query/response pair.
func (s *Session) Append(userQuery, response string) {
	s.msgs = append(s.msgs,
		types.ChatMessage{Role: "user", Content: userQuery},
		types.ChatMessage{Role: "assistant", Content: response},
	)
	if over := len(s.msgs) - s.maxTurns*2; over > 0 {
		s.msgs = append(s.msgs[:0:0], s.msgs[over:]...)
	}
}

// Messages returns a copy of the transcript, oldest first.
func (s *Session) Messages() []types.ChatMessage {
	out := make([]types.ChatMessage, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// Turns is the number of retained query/response pairs.
func (s *Session) Turns() int {
	return len(s.msgs) / 2
}

// Clear drops the transcript.
func (s *Session) Clear() {
	s.msgs = nil
}
