package devserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/cutlistlab/cabplan/internal/model"
)

var errSessionNotFound = errors.New("session not found")

// storage keeps sessions and their document snapshots in sqlite. Every
// persist appends a snapshot; the session row points at the latest one.
type storage struct {
	db *sql.DB
}

func openStorage(path string) (*storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps in-memory databases coherent and sidesteps
	// sqlite write contention.
	db.SetMaxOpenConns(1)

	s := &storage{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *storage) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id          TEXT NOT NULL PRIMARY KEY,
			snapshot_id TEXT,
			created_at  TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS snapshots (
			id         TEXT NOT NULL PRIMARY KEY,
			session_id TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

func (s *storage) close() error {
	return s.db.Close()
}

func (s *storage) createSession(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions(id, created_at) VALUES (?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

func (s *storage) sessionExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// saveProject appends a snapshot and repoints the session at it.
func (s *storage) saveProject(ctx context.Context, sessionID string, project *model.Project) error {
	ok, err := s.sessionExists(ctx, sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return errSessionNotFound
	}

	content, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start tx: %w", err)
	}
	defer tx.Rollback()

	snapshotID := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots(id, session_id, content, created_at) VALUES (?, ?, ?, ?)`,
		snapshotID, sessionID, string(content), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE sessions SET snapshot_id = ? WHERE id = ?`,
		snapshotID, sessionID); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return tx.Commit()
}

// loadProject returns the latest snapshot's document, or an empty project
// when the session has none yet.
func (s *storage) loadProject(ctx context.Context, sessionID string) (*model.Project, error) {
	ok, err := s.sessionExists(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errSessionNotFound
	}

	var content string
	err = s.db.QueryRowContext(ctx, `
		SELECT sn.content
		FROM snapshots sn
		INNER JOIN sessions se ON sn.id = se.snapshot_id
		WHERE se.id = ?`, sessionID).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewProject(""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var p model.Project
	if err := json.Unmarshal([]byte(content), &p); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &p, nil
}
