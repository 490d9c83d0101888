package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultDir is where session records land when no directory is configured.
const DefaultDir = "data"

// FileRecorder writes one indented JSON file per completed session.
type FileRecorder struct {
	dir    string
	logger *zap.Logger
}

// NewFileRecorder builds a recorder writing into dir, created on demand.
func NewFileRecorder(dir string, logger *zap.Logger) *FileRecorder {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDir
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileRecorder{dir: dir, logger: logger}
}

// Save validates the record and writes it to
// <dir>/conversation_<name>_<timestamp>.json.
func (r *FileRecorder) Save(_ context.Context, record *Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("creating record directory: %w", err)
	}

	path := filepath.Join(r.dir, recordFilename(record))

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating record file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	r.logger.Debug("session record written", zap.String("path", path))

	return nil
}

func recordFilename(record *Record) string {
	name := strings.ToLower(strings.TrimSpace(record.CandidateInfo.Name))
	if name == "" {
		name = "unknown"
	}
	name = strings.ReplaceAll(name, " ", "_")

	return fmt.Sprintf("conversation_%s_%s.json", name, record.Timestamp.Format("20060102_150405"))
}
