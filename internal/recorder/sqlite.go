package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	_ "modernc.org/sqlite" // sqlite driver
)

const interviewsSchema = `
CREATE TABLE IF NOT EXISTS interviews (
	id          TEXT PRIMARY KEY,
	created_at  TEXT NOT NULL,
	name        TEXT,
	email       TEXT,
	phone       TEXT,
	experience  TEXT,
	position    TEXT,
	location    TEXT,
	tech_stack  TEXT,
	transcript  TEXT NOT NULL,
	questions   TEXT NOT NULL
);`

// SQLiteRecorder stores session records in a local sqlite database, one row
// per completed session.
type SQLiteRecorder struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteRecorder opens (and initializes, if needed) the database at path.
func NewSQLiteRecorder(path string, logger *zap.Logger) (*SQLiteRecorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("opening interview database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging interview database: %w", err)
	}

	if _, err := db.Exec(interviewsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing interview schema: %w", err)
	}

	// sqlite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	logger.Debug("interview database ready", zap.String("path", path))

	return &SQLiteRecorder{db: db, logger: logger}, nil
}

// Save validates the record and inserts one row keyed by the session ID.
func (r *SQLiteRecorder) Save(ctx context.Context, record *Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	transcript, err := json.Marshal(record.Conversation)
	if err != nil {
		return fmt.Errorf("encoding transcript: %w", err)
	}

	questions, err := json.Marshal(record.TechnicalQuestions)
	if err != nil {
		return fmt.Errorf("encoding questions: %w", err)
	}

	info := record.CandidateInfo
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO interviews
			(id, created_at, name, email, phone, experience, position, location, tech_stack, transcript, questions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID.String(),
		record.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		info.Name, info.Email, info.Phone, info.Experience, info.Position, info.Location, info.TechStack,
		string(transcript), string(questions),
	)
	if err != nil {
		return fmt.Errorf("inserting interview record: %w", err)
	}

	r.logger.Debug("session record inserted", zap.String("session_id", record.ID.String()))

	return nil
}

// Close releases the underlying database handle.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
