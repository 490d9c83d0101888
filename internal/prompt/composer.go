// Package prompt assembles the context bundle handed to the model
// collaborator: stage instructions, known profile fields, the transcript,
// and the technical question list once the session reaches that phase.
package prompt

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/talentscout/hiring-assistant/internal/ai"
	"github.com/talentscout/hiring-assistant/internal/candidate"
	"github.com/talentscout/hiring-assistant/internal/interview"
)

//go:embed templates/base.md
var basePrompt string

//go:embed templates/greeting.md
var greetingPrompt string

//go:embed templates/collecting_info.md
var collectingInfoPrompt string

//go:embed templates/tech_stack_confirmation.md
var techStackConfirmationPrompt string

//go:embed templates/technical_questions.md
var technicalQuestionsPrompt string

//go:embed templates/farewell.md
var farewellPrompt string

//go:embed templates/question_generation.md
var questionGenerationPrompt string

// Composer builds model-call context bundles. It performs no generation and
// cannot fail.
type Composer struct{}

// NewComposer returns a Composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Compose renders the full context for one turn: the stage instruction
// block, every known profile field, the literal stage name, the transcript,
// the question list while in the technical phase, and finally the latest
// user input.
func (c *Composer) Compose(s *interview.Session, userInput string) []ai.Message {
	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: SystemPrompt(s.Stage)},
		{Role: ai.RoleSystem, Content: profileContext(s.Profile)},
		{Role: ai.RoleSystem, Content: fmt.Sprintf("Current conversation stage: %s", s.Stage)},
		{Role: ai.RoleSystem, Content: "Previous conversation:\n" + strings.Join(s.ConversationLines(), "\n")},
	}

	if s.Stage == interview.StageTechnicalQuestions && len(s.Questions) > 0 {
		messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: questionsContext(s)})
	}

	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: userInput})

	return messages
}

// SystemPrompt selects the role-specific instruction block for the stage,
// falling back to the generic base block for unrecognized stages.
func SystemPrompt(stage interview.Stage) string {
	switch stage {
	case interview.StageGreeting:
		return basePrompt + greetingPrompt
	case interview.StageCollectingName,
		interview.StageCollectingEmail,
		interview.StageCollectingPhone,
		interview.StageCollectingPosition,
		interview.StageCollectingExperience,
		interview.StageCollectingTechStack:
		return basePrompt + collectingInfoPrompt
	case interview.StageTechStackConfirmation:
		return basePrompt + techStackConfirmationPrompt
	case interview.StageTechnicalQuestions:
		return basePrompt + technicalQuestionsPrompt
	case interview.StageFarewell:
		return basePrompt + farewellPrompt
	default:
		return basePrompt
	}
}

// QuestionGeneration renders the prompt asking a model collaborator for
// technical questions on the given position/tech-stack description.
func QuestionGeneration(description string, count int) string {
	prompt := strings.ReplaceAll(questionGenerationPrompt, "{{NUM_QUESTIONS}}", strconv.Itoa(count))
	return prompt + "\nTech stack: " + description
}

// profileContext renders every captured field as a labeled line. Unset
// fields are omitted.
func profileContext(p candidate.Profile) string {
	var b strings.Builder
	b.WriteString("Candidate Information:\n")

	fields := p.Fields()
	for _, name := range candidate.FieldNames {
		value := fields[name]
		if value == "" {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", candidate.DisplayName(name), value)
	}

	return b.String()
}

func questionsContext(s *interview.Session) string {
	var b strings.Builder
	b.WriteString("Technical questions to ask:\n")
	for i, q := range s.Questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	fmt.Fprintf(&b, "\nCurrent question index: %d", s.QuestionIndex)
	return b.String()
}
