// Package interview implements the screening conversation: the stage
// machine, the per-session state, and the free-text field extractor.
package interview

// Stage identifies the current phase of the screening conversation.
// Transitions are strictly forward along stageOrder; farewell is absorbing.
type Stage string

const (
	StageGreeting              Stage = "greeting"
	StageCollectingName        Stage = "collecting_name"
	StageCollectingEmail       Stage = "collecting_email"
	StageCollectingPhone       Stage = "collecting_phone"
	StageCollectingPosition    Stage = "collecting_position"
	StageCollectingExperience  Stage = "collecting_experience"
	StageCollectingTechStack   Stage = "collecting_tech_stack"
	StageTechStackConfirmation Stage = "tech_stack_confirmation"
	StageTechnicalQuestions    Stage = "technical_questions"
	StageFarewell              Stage = "farewell"
)

var stageOrder = []Stage{
	StageGreeting,
	StageCollectingName,
	StageCollectingEmail,
	StageCollectingPhone,
	StageCollectingPosition,
	StageCollectingExperience,
	StageCollectingTechStack,
	StageTechStackConfirmation,
	StageTechnicalQuestions,
	StageFarewell,
}

// Index returns the position of the stage in the canonical ordering, or -1
// for an unknown value.
func (s Stage) Index() int {
	for i, stage := range stageOrder {
		if stage == s {
			return i
		}
	}
	return -1
}

// Terminal reports whether the stage ends the conversation.
func (s Stage) Terminal() bool {
	return s == StageFarewell
}

// Collecting reports whether field extraction runs during the stage. The
// extractor is bypassed while questions are being asked and after farewell.
func (s Stage) Collecting() bool {
	switch s {
	case StageTechnicalQuestions, StageFarewell:
		return false
	default:
		return s.Index() >= 0
	}
}

func (s Stage) String() string {
	return string(s)
}
