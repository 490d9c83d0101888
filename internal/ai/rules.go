package ai

import (
	"context"
	"strings"
)

const stageMarker = "Current conversation stage:"

// RuleBasedResponder is the deterministic substitute for a live model. It
// scans the latest user text for stage-appropriate keywords and returns one
// fixed sentence per match. It never fails.
type RuleBasedResponder struct{}

// NewRuleBasedResponder returns the deterministic responder.
func NewRuleBasedResponder() *RuleBasedResponder {
	return &RuleBasedResponder{}
}

// Respond implements Responder without consulting any external service.
func (r *RuleBasedResponder) Respond(_ context.Context, messages []Message, _ GenerationParams) (string, error) {
	userText := strings.ToLower(LatestUserText(messages))
	stage := stageFromContext(messages)

	switch {
	case strings.Contains(userText, "name") && stage == "greeting":
		return "Nice to meet you! Could you please share your email address so our team can contact you?", nil
	case strings.Contains(userText, "email") && strings.Contains(userText, "@"):
		return "Thanks for your email. What's your phone number in case we need to reach you quickly?", nil
	case containsAny(userText, "phone", "number", "contact"):
		return "Great! How many years of experience do you have in your field?", nil
	case containsAny(userText, "experience", "year", "worked"):
		return "Thank you. What position are you currently looking for?", nil
	case containsAny(userText, "position", "job", "role", "looking for"):
		return "Where are you currently located? We want to match you with opportunities in your area.", nil
	case containsAny(userText, "location", "city", "area", "based"):
		return "Please tell me about your tech stack. What programming languages, frameworks, and tools are you proficient in?", nil
	case stage == "technical_questions":
		return "Thank you for your answer. That shows good understanding of the technology.", nil
	case containsAny(userText, "bye", "exit"):
		return "Thank you for your time! Our recruitment team will review your information and get back to you soon if there's a match. Have a great day!", nil
	default:
		return "Thank you for that information. Is there anything else you'd like to share about your skills or experience?", nil
	}
}

// stageFromContext recovers the stage name from the system context blocks.
func stageFromContext(messages []Message) string {
	stage := "greeting"
	for _, msg := range messages {
		if msg.Role != RoleSystem {
			continue
		}
		if idx := strings.Index(msg.Content, stageMarker); idx != -1 {
			stage = strings.TrimSpace(msg.Content[idx+len(stageMarker):])
		}
	}
	return stage
}

func containsAny(s string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
