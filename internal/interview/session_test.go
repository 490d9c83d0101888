package interview

import "testing"

func TestSessionStartsAtGreeting(t *testing.T) {
	s := NewSession()
	if s.Stage != StageGreeting {
		t.Fatalf("expected greeting, got %s", s.Stage)
	}
	if s.Ended() {
		t.Fatal("new session must not be ended")
	}
	if s.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("expected a generated session id")
	}
}

func TestConversationLines(t *testing.T) {
	s := NewSession()
	s.Append(SpeakerAssistant, "Hello!")
	s.Append(SpeakerCandidate, "Jane Doe")

	lines := s.ConversationLines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "TalentScout: Hello!" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if lines[1] != "You: Jane Doe" {
		t.Fatalf("unexpected second line: %q", lines[1])
	}
}

func TestStageOrdering(t *testing.T) {
	if StageGreeting.Index() != 0 {
		t.Fatalf("greeting must be first, got %d", StageGreeting.Index())
	}
	if StageFarewell.Index() != len(stageOrder)-1 {
		t.Fatalf("farewell must be last, got %d", StageFarewell.Index())
	}

	for i := 1; i < len(stageOrder); i++ {
		if stageOrder[i].Index() <= stageOrder[i-1].Index() {
			t.Fatalf("stage order not strictly increasing at %s", stageOrder[i])
		}
	}

	if Stage("unknown").Index() != -1 {
		t.Fatal("unknown stage must have index -1")
	}
}

func TestStageCollecting(t *testing.T) {
	collecting := []Stage{
		StageGreeting, StageCollectingName, StageCollectingEmail,
		StageCollectingPhone, StageCollectingPosition,
		StageCollectingExperience, StageCollectingTechStack,
		StageTechStackConfirmation,
	}
	for _, stage := range collecting {
		if !stage.Collecting() {
			t.Fatalf("%s should be a collecting stage", stage)
		}
	}

	for _, stage := range []Stage{StageTechnicalQuestions, StageFarewell, Stage("bogus")} {
		if stage.Collecting() {
			t.Fatalf("%s should not be a collecting stage", stage)
		}
	}
}
