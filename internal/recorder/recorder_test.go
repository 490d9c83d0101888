package recorder

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentscout/hiring-assistant/internal/candidate"
)

func validRecord() *Record {
	return &Record{
		ID:        uuid.New(),
		Timestamp: time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC),
		CandidateInfo: candidate.Profile{
			Name:      "Jane Doe",
			Email:     "jane.doe@example.com",
			Phone:     "+1 (555) 123-4567",
			Position:  "Backend Developer",
			TechStack: "python, sql",
		},
		Conversation:       []string{"TalentScout: Hello!", "You: Jane Doe"},
		TechnicalQuestions: []string{"How do you handle exceptions in Python?"},
	}
}

func TestFileRecorderWritesRecord(t *testing.T) {
	dir := t.TempDir()
	r := NewFileRecorder(dir, zap.NewNop())

	record := validRecord()
	if err := r.Save(context.Background(), record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join(dir, "conversation_jane_doe_20250314_150926.json")
	data, err := os.ReadFile(expected)
	if err != nil {
		t.Fatalf("reading record file: %v", err)
	}

	var decoded Record
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding record file: %v", err)
	}

	if decoded.CandidateInfo.Email != "jane.doe@example.com" {
		t.Fatalf("unexpected email in record: %q", decoded.CandidateInfo.Email)
	}
	if len(decoded.Conversation) != 2 {
		t.Fatalf("unexpected conversation length: %d", len(decoded.Conversation))
	}
}

func TestFileRecorderUnknownCandidateName(t *testing.T) {
	dir := t.TempDir()
	r := NewFileRecorder(dir, nil)

	record := validRecord()
	record.CandidateInfo.Name = ""
	if err := r.Save(context.Background(), record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("listing record dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one record file, got %d", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "conversation_unknown_") {
		t.Fatalf("unexpected filename: %q", entries[0].Name())
	}
}

func TestSaveRejectsShortPhone(t *testing.T) {
	r := NewFileRecorder(t.TempDir(), nil)

	record := validRecord()
	record.CandidateInfo.Phone = "123-456-789"

	if err := r.Save(context.Background(), record); err == nil {
		t.Fatal("expected validation error for 9-digit phone")
	}
}

func TestSaveRejectsMalformedEmail(t *testing.T) {
	r := NewFileRecorder(t.TempDir(), nil)

	record := validRecord()
	record.CandidateInfo.Email = "not-an-email"

	if err := r.Save(context.Background(), record); err == nil {
		t.Fatal("expected validation error for malformed email")
	}
}

func TestSQLiteRecorderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interviews.db")

	r, err := NewSQLiteRecorder(path, zap.NewNop())
	if err != nil {
		t.Fatalf("opening sqlite recorder: %v", err)
	}
	defer r.Close()

	record := validRecord()
	if err := r.Save(context.Background(), record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var name, techStack, questions string
	row := r.db.QueryRow("SELECT name, tech_stack, questions FROM interviews WHERE id = ?", record.ID.String())
	if err := row.Scan(&name, &techStack, &questions); err != nil {
		t.Fatalf("reading row back: %v", err)
	}

	if name != "Jane Doe" {
		t.Fatalf("unexpected name: %q", name)
	}
	if techStack != "python, sql" {
		t.Fatalf("unexpected tech stack: %q", techStack)
	}
	if !strings.Contains(questions, "exceptions in Python") {
		t.Fatalf("questions column missing content: %q", questions)
	}
}
