// Package recorder persists finished screening sessions. Persistence is
// best-effort: callers log and swallow failures so the candidate-facing
// farewell is never affected.
package recorder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talentscout/hiring-assistant/internal/candidate"
)

// Record is the snapshot written once per completed session.
type Record struct {
	ID                 uuid.UUID         `json:"id"`
	Timestamp          time.Time         `json:"timestamp"`
	CandidateInfo      candidate.Profile `json:"candidate_info"`
	Conversation       []string          `json:"conversation"`
	TechnicalQuestions []string          `json:"technical_questions"`
}

// Validate enforces the field-level format checks that apply at save time.
func (r *Record) Validate() error {
	if err := r.CandidateInfo.Validate(); err != nil {
		return fmt.Errorf("validating candidate profile: %w", err)
	}
	return nil
}

// Recorder is the storage collaborator boundary.
type Recorder interface {
	Save(ctx context.Context, record *Record) error
}
