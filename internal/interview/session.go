package interview

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talentscout/hiring-assistant/internal/candidate"
)

// Speaker labels one side of the conversation in the transcript.
type Speaker string

const (
	SpeakerAssistant Speaker = "TalentScout"
	SpeakerCandidate Speaker = "You"
)

// Turn is one transcript entry. The transcript is append-only.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Session is the single owner of all per-conversation state. It is created
// by the turn-processing entry point and passed by pointer into every
// component call.
type Session struct {
	ID            uuid.UUID
	Profile       candidate.Profile
	Stage         Stage
	Transcript    []Turn
	Questions     []string
	QuestionIndex int

	ended bool
}

// NewSession returns a fresh session at the greeting stage.
func NewSession() *Session {
	return &Session{
		ID:    uuid.New(),
		Stage: StageGreeting,
	}
}

// Append adds one turn to the transcript.
func (s *Session) Append(speaker Speaker, text string) {
	s.Transcript = append(s.Transcript, Turn{Speaker: speaker, Text: text})
}

// Ended reports whether the conversation has reached its terminal state.
func (s *Session) Ended() bool {
	return s.ended
}

// ConversationLines renders the transcript as speaker-labeled lines, the
// form used both for model context and for the persisted record.
func (s *Session) ConversationLines() []string {
	lines := make([]string, 0, len(s.Transcript))
	for _, turn := range s.Transcript {
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Speaker, turn.Text))
	}
	return lines
}
