package interview

import (
	"context"
	"strings"
	"testing"

	"github.com/talentscout/hiring-assistant/internal/recorder"
)

type countingRecorder struct {
	saves   int
	lastRec *recorder.Record
	err     error
}

func (c *countingRecorder) Save(_ context.Context, rec *recorder.Record) error {
	c.saves++
	c.lastRec = rec
	return c.err
}

func newTestMachine(rec recorder.Recorder) *Machine {
	return NewMachine(nil, rec, 5, nil)
}

// advanceTurn mimics one full turn: extraction, then the transition decision.
func advanceTurn(m *Machine, s *Session, input string) string {
	s.Append(SpeakerCandidate, input)
	s.Profile = ExtractProfile(input, s.Profile, s.Stage)
	response := m.Advance(context.Background(), s, input, "model response")
	s.Append(SpeakerAssistant, response)
	return response
}

func TestMachineHappyPath(t *testing.T) {
	rec := &countingRecorder{}
	m := newTestMachine(rec)
	s := NewSession()

	resp := advanceTurn(m, s, "Jane Doe")
	if s.Stage != StageCollectingEmail {
		t.Fatalf("expected collecting_email, got %s", s.Stage)
	}
	if !strings.Contains(resp, "Thank you, Jane Doe!") {
		t.Fatalf("unexpected response: %q", resp)
	}

	advanceTurn(m, s, "jane.doe@example.com")
	if s.Stage != StageCollectingPhone {
		t.Fatalf("expected collecting_phone, got %s", s.Stage)
	}

	advanceTurn(m, s, "(555) 123-4567")
	if s.Stage != StageCollectingPosition {
		t.Fatalf("expected collecting_position, got %s", s.Stage)
	}

	advanceTurn(m, s, "I want to be a backend developer")
	if s.Stage != StageCollectingExperience {
		t.Fatalf("expected collecting_experience, got %s", s.Stage)
	}

	resp = advanceTurn(m, s, "I have 4 years of experience")
	if s.Stage != StageCollectingTechStack {
		t.Fatalf("expected collecting_tech_stack, got %s", s.Stage)
	}
	if !strings.Contains(resp, "Node.js, Python, Java, PHP, Ruby, databases") {
		t.Fatalf("expected back-end example set, got %q", resp)
	}

	resp = advanceTurn(m, s, "mostly python and some sql")
	if s.Stage != StageTechStackConfirmation {
		t.Fatalf("expected tech_stack_confirmation, got %s", s.Stage)
	}
	if !strings.Contains(resp, "python, sql") {
		t.Fatalf("expected captured stack in confirmation, got %q", resp)
	}

	resp = advanceTurn(m, s, "nothing else to add right now")
	if s.Stage != StageTechnicalQuestions {
		t.Fatalf("expected technical_questions, got %s", s.Stage)
	}
	if len(s.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(s.Questions))
	}
	if !strings.Contains(resp, s.Questions[0]) {
		t.Fatalf("first question missing from response: %q", resp)
	}

	// Four more answers walk the cursor to the last question.
	for i := 0; i < 4; i++ {
		resp = advanceTurn(m, s, "an answer")
		if s.Stage != StageTechnicalQuestions {
			t.Fatalf("expected to stay in technical_questions, got %s", s.Stage)
		}
		if !strings.Contains(resp, s.Questions[s.QuestionIndex]) {
			t.Fatalf("expected question %d in response: %q", s.QuestionIndex, resp)
		}
	}

	// The answer to the final question ends the session.
	resp = advanceTurn(m, s, "final answer")
	if s.Stage != StageFarewell {
		t.Fatalf("expected farewell, got %s", s.Stage)
	}
	if !s.Ended() {
		t.Fatal("session should be ended")
	}
	if !strings.Contains(resp, "Thank you for taking the time to chat with me, Jane Doe!") {
		t.Fatalf("unexpected closing message: %q", resp)
	}
	if !strings.Contains(resp, "jane.doe@example.com") {
		t.Fatalf("closing message should name the email, got %q", resp)
	}
	if rec.saves != 1 {
		t.Fatalf("expected exactly one persistence call, got %d", rec.saves)
	}
	if rec.lastRec.CandidateInfo.Name != "Jane Doe" {
		t.Fatalf("unexpected recorded name: %q", rec.lastRec.CandidateInfo.Name)
	}
	if len(rec.lastRec.TechnicalQuestions) != 5 {
		t.Fatalf("expected 5 recorded questions, got %d", len(rec.lastRec.TechnicalQuestions))
	}
}

func TestMachineNeverTransitionsBackward(t *testing.T) {
	m := newTestMachine(nil)
	s := NewSession()

	inputs := []string{
		"Jane Doe",
		"gibberish",
		"jane@example.com",
		"more gibberish",
		"555-123-4567",
		"backend developer role",
		"6 years",
		"python react sql",
		"nothing else",
		"answer", "answer", "answer", "answer", "answer",
	}

	last := s.Stage.Index()
	for _, input := range inputs {
		advanceTurn(m, s, input)
		if idx := s.Stage.Index(); idx < last {
			t.Fatalf("stage went backward: %s (index %d < %d)", s.Stage, idx, last)
		} else {
			last = idx
		}
	}
}

func TestMachinePassesThroughModelResponse(t *testing.T) {
	m := newTestMachine(nil)
	s := NewSession()

	// A greeting carries no extractable name, so no transition fires.
	resp := advanceTurn(m, s, "hello")
	if resp != "model response" {
		t.Fatalf("expected pass-through of model response, got %q", resp)
	}
	if s.Stage != StageGreeting {
		t.Fatalf("stage should not move, got %s", s.Stage)
	}
}

func TestMachineHeyShortcut(t *testing.T) {
	m := newTestMachine(nil)
	s := NewSession()

	resp := advanceTurn(m, s, "hey")
	if s.Stage != StageCollectingName {
		t.Fatalf("expected collecting_name, got %s", s.Stage)
	}
	if !strings.Contains(resp, "Could you please tell me your full name?") {
		t.Fatalf("unexpected introduction: %q", resp)
	}

	resp = advanceTurn(m, s, "Jane Doe")
	if s.Stage != StageCollectingEmail {
		t.Fatalf("expected collecting_email after name, got %s", s.Stage)
	}
}

func TestExitKeywordForcesFarewell(t *testing.T) {
	for _, keyword := range []string{"exit", "quit", "bye", "goodbye", "end", "stop", "I want to QUIT now"} {
		rec := &countingRecorder{}
		m := newTestMachine(rec)
		s := NewSession()
		s.Stage = StageCollectingPhone

		if !HasExitKeyword(keyword) {
			t.Fatalf("%q should be recognized as an exit request", keyword)
		}

		resp := m.EndConversation(context.Background(), s)
		if s.Stage != StageFarewell {
			t.Fatalf("expected farewell after %q, got %s", keyword, s.Stage)
		}
		if !strings.Contains(resp, "Thank you for taking the time to chat with me, candidate!") {
			t.Fatalf("expected placeholder name in closing, got %q", resp)
		}
		if rec.saves != 1 {
			t.Fatalf("expected one persistence call, got %d", rec.saves)
		}
	}
}

func TestFarewellIsAbsorbing(t *testing.T) {
	rec := &countingRecorder{}
	m := newTestMachine(rec)
	s := NewSession()

	m.EndConversation(context.Background(), s)

	for i := 0; i < 3; i++ {
		resp := m.Advance(context.Background(), s, "anything", "model response")
		if resp != SessionEndedNotice {
			t.Fatalf("expected session-ended notice, got %q", resp)
		}
		if s.Stage != StageFarewell {
			t.Fatalf("stage left farewell: %s", s.Stage)
		}
	}

	if rec.saves != 1 {
		t.Fatalf("record must only be saved once, got %d saves", rec.saves)
	}
}

func TestRecorderFailureDoesNotChangeClosing(t *testing.T) {
	rec := &countingRecorder{err: context.DeadlineExceeded}
	m := newTestMachine(rec)
	s := NewSession()
	s.Profile.Name = "Jane Doe"

	resp := m.EndConversation(context.Background(), s)
	if !strings.Contains(resp, "Thank you for taking the time to chat with me, Jane Doe!") {
		t.Fatalf("closing message altered by persistence failure: %q", resp)
	}
	if !s.Ended() {
		t.Fatal("session must still end cleanly")
	}
}

func TestTechStackExampleSets(t *testing.T) {
	cases := []struct {
		position string
		expected string
	}{
		{"Frontend Engineer", "HTML, CSS, JavaScript"},
		{"Backend Developer", "Node.js, Python, Java, PHP, Ruby, databases"},
		{"Data Analyst", "Pandas, Matplotlib"},
		{"devops specialist", "Docker, Kubernetes, AWS, CI/CD, Linux"},
		{"Mobile Developer", "Swift, Kotlin, React Native, Flutter"},
		{"Security Researcher", "programming languages, frameworks, tools"},
	}

	for _, tc := range cases {
		got := techStackQuestion(tc.position)
		if !strings.Contains(got, tc.expected) {
			t.Fatalf("position %q: expected example set containing %q, got %q", tc.position, tc.expected, got)
		}
	}
}
