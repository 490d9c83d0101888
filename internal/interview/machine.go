package interview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talentscout/hiring-assistant/internal/ai"
	"github.com/talentscout/hiring-assistant/internal/recorder"
)

// InitialGreeting opens every session before the first candidate turn.
const InitialGreeting = `Hello! I'm TalentScout, an AI hiring assistant for tech positions.

I'll be conducting your initial screening interview to learn more about your background and technical skills.

To get started, could you please tell me your full name?`

// SessionEndedNotice is returned for every turn after farewell.
const SessionEndedNotice = "The conversation has ended. Please start a new session to talk to me again."

const introduction = "Hello! I'm TalentScout, an AI hiring assistant. I'll be conducting your initial screening interview. Could you please tell me your full name?"

const closingTemplate = `Thank you for taking the time to chat with me, %s!

I've collected your information and technical responses, which will be reviewed by our recruitment team. If your profile matches any of our current openings, a recruiter will contact you at %s or %s for the next steps in the process.

Best of luck with your job search, and we hope to speak with you again soon!

- TalentScout Hiring Assistant`

// exitKeywords force an immediate transition to farewell when found as
// case-insensitive substrings of the raw input.
var exitKeywords = []string{"exit", "quit", "bye", "goodbye", "end", "stop"}

// HasExitKeyword reports whether the input requests an immediate farewell.
func HasExitKeyword(input string) bool {
	lowered := strings.ToLower(input)
	for _, keyword := range exitKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// Machine drives the stage transitions. It owns the fixed transition
// messages and the two collaborator boundaries reached from inside a
// transition: question generation and session recording.
type Machine struct {
	questions     ai.QuestionGenerator
	recorder      recorder.Recorder
	questionCount int
	logger        *zap.Logger
}

// NewMachine builds the stage machine. The recorder may be nil, in which
// case finished sessions are not persisted. A nil generator falls back to
// the static question bank.
func NewMachine(questions ai.QuestionGenerator, rec recorder.Recorder, questionCount int, logger *zap.Logger) *Machine {
	if questions == nil {
		questions = ai.NewStaticQuestionGenerator()
	}
	if questionCount <= 0 {
		questionCount = ai.DefaultQuestionCount
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Machine{
		questions:     questions,
		recorder:      rec,
		questionCount: questionCount,
		logger:        logger,
	}
}

// Advance inspects the session after extraction and decides the next stage
// and the final response for this turn. When no transition condition holds,
// the externally supplied model response passes through unchanged.
func (m *Machine) Advance(ctx context.Context, s *Session, userInput, modelResponse string) string {
	if s.Ended() || s.Stage.Terminal() {
		return SessionEndedNotice
	}

	profile := &s.Profile

	switch {
	case s.Stage == StageGreeting && strings.ToLower(strings.TrimSpace(userInput)) == "hey":
		s.Stage = StageCollectingName
		return introduction

	case (s.Stage == StageGreeting || s.Stage == StageCollectingName) && profile.Name != "":
		s.Stage = StageCollectingEmail
		return fmt.Sprintf("Thank you, %s! What's your email address?", profile.Name)

	case s.Stage == StageCollectingEmail && profile.Email != "":
		s.Stage = StageCollectingPhone
		return "Great! Now, could you please provide your phone number?"

	case s.Stage == StageCollectingPhone && profile.Phone != "":
		s.Stage = StageCollectingPosition
		return "Thanks! What area or position would you like to work in? (e.g., Web Development, Data Science, DevOps, etc.)"

	case s.Stage == StageCollectingPosition && profile.Position != "":
		s.Stage = StageCollectingExperience
		return fmt.Sprintf("Got it! How many years of experience do you have in %s?", profile.Position)

	case s.Stage == StageCollectingExperience && profile.Experience != "":
		s.Stage = StageCollectingTechStack
		return "Thank you! " + techStackQuestion(profile.Position)

	case s.Stage == StageCollectingTechStack && profile.TechStack != "":
		s.Stage = StageTechStackConfirmation
		return fmt.Sprintf("Thank you for sharing your skills in %s. Is there anything else you'd like to add before we move on to some technical questions?", profile.TechStack)

	case s.Stage == StageTechStackConfirmation && len(s.Questions) == 0:
		s.Questions = m.generateQuestions(ctx, s)
		s.QuestionIndex = 0
		s.Stage = StageTechnicalQuestions
		return fmt.Sprintf("Great! Now I'll ask you some technical questions based on your experience.\n\n%s", s.Questions[0])

	case s.Stage == StageTechnicalQuestions:
		s.QuestionIndex++
		if s.QuestionIndex < len(s.Questions) {
			return fmt.Sprintf("Thank you for your answer. Next question:\n\n%s", s.Questions[s.QuestionIndex])
		}
		return m.EndConversation(ctx, s)
	}

	return modelResponse
}

// EndConversation moves the session to farewell, requests best-effort
// persistence, and returns the closing message. Safe to call from any stage;
// repeated calls return the session-ended notice.
func (m *Machine) EndConversation(ctx context.Context, s *Session) string {
	if s.Ended() {
		return SessionEndedNotice
	}

	s.Stage = StageFarewell
	s.ended = true

	name := s.Profile.Name
	if name == "" {
		name = "candidate"
	}
	email := s.Profile.Email
	if email == "" {
		email = "your email address"
	}
	phone := s.Profile.Phone
	if phone == "" {
		phone = "your phone number"
	}

	closing := fmt.Sprintf(closingTemplate, name, email, phone)

	m.persist(ctx, s)

	return closing
}

// generateQuestions asks the collaborator once, on first entry to the
// technical phase. The set is immutable for the rest of the session.
func (m *Machine) generateQuestions(ctx context.Context, s *Session) []string {
	description := fmt.Sprintf("Tech stack: %s", s.Profile.TechStack)
	if s.Profile.Position != "" {
		description = fmt.Sprintf("Position: %s %s", s.Profile.Position, description)
	}

	questions, err := m.questions.Generate(ctx, description, m.questionCount)
	if err != nil || len(questions) == 0 {
		m.logger.Warn("question generation failed, using canned questions", zap.Error(err))
		questions, _ = ai.NewStaticQuestionGenerator().Generate(ctx, description, m.questionCount)
	}

	m.logger.Debug("technical questions prepared",
		zap.String("session_id", s.ID.String()),
		zap.Int("count", len(questions)),
	)

	return questions
}

// persist hands the finished session to the recorder. Failures are logged
// and swallowed; the farewell message the candidate sees is never affected.
func (m *Machine) persist(ctx context.Context, s *Session) {
	if m.recorder == nil {
		m.logger.Debug("no recorder configured, skipping session record")
		return
	}

	record := &recorder.Record{
		ID:                 s.ID,
		Timestamp:          time.Now(),
		CandidateInfo:      s.Profile,
		Conversation:       s.ConversationLines(),
		TechnicalQuestions: s.Questions,
	}

	if err := m.recorder.Save(ctx, record); err != nil {
		m.logger.Warn("saving session record failed",
			zap.String("session_id", s.ID.String()),
			zap.Error(err),
		)
		return
	}

	m.logger.Info("session record saved", zap.String("session_id", s.ID.String()))
}

// techStackQuestion selects the example list by keyword match against the
// stored position.
func techStackQuestion(position string) string {
	base := "Please list your technical skills relevant to this position. "
	pos := strings.ToLower(position)

	switch {
	case strings.Contains(pos, "web") || strings.Contains(pos, "front"):
		return base + "For example: HTML, CSS, JavaScript, React, Angular, Vue, etc."
	case strings.Contains(pos, "back"):
		return base + "For example: Node.js, Python, Java, PHP, Ruby, databases, etc."
	case strings.Contains(pos, "data"):
		return base + "For example: Python, R, SQL, Pandas, Matplotlib, machine learning libraries, etc."
	case strings.Contains(pos, "devops"):
		return base + "For example: Docker, Kubernetes, AWS, CI/CD, Linux, etc."
	case strings.Contains(pos, "mobile"):
		return base + "For example: Swift, Kotlin, React Native, Flutter, etc."
	default:
		return base + "For example: programming languages, frameworks, tools, and technologies you're proficient in."
	}
}
