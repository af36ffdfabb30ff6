package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/cutlistlab/cabplan/internal/config"
	"github.com/cutlistlab/cabplan/internal/editor"
	"github.com/cutlistlab/cabplan/internal/history"
	"github.com/cutlistlab/cabplan/internal/model"
	"github.com/cutlistlab/cabplan/internal/session"
	"github.com/cutlistlab/cabplan/internal/store"
	"github.com/cutlistlab/cabplan/internal/toast"
)

// workspace wires the state layer for one CLI invocation: the store, the
// history engine (restored from its sidecar file), the session client and
// the editor.
type workspace struct {
	store   *store.Store
	history *history.Engine
	client  *session.Client
	toasts  *toast.Queue
	editor  *editor.Editor

	projectPath string
	historyPath string
}

// historyFile is the on-disk form of the undo/redo stacks between
// invocations.
type historyFile struct {
	SessionID string             `json:"session_id,omitempty"`
	Undo      []history.Snapshot `json:"undo,omitempty"`
	Redo      []history.Snapshot `json:"redo,omitempty"`
}

func projectPath() string {
	if projectFile != "" {
		return projectFile
	}
	return config.GetProjectFile()
}

func openWorkspace() (*workspace, error) {
	ws := &workspace{
		store:       store.New(),
		projectPath: projectPath(),
	}
	ws.historyPath = ws.projectPath + ".history"
	ws.history = history.New(ws.store, config.GetHistoryLimit())
	ws.toasts = toast.NewQueue(toast.WithTTL(config.GetToastDuration()))

	if raw, err := os.ReadFile(ws.projectPath); err == nil {
		var p model.Project
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", ws.projectPath, err)
		}
		ws.store.Load(&p)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var resumeSession string
	if raw, err := os.ReadFile(ws.historyPath); err == nil {
		var hf historyFile
		if err := json.Unmarshal(raw, &hf); err == nil {
			ws.history.SetState(hf.Undo, hf.Redo)
			resumeSession = hf.SessionID
		}
	}

	if !offline {
		url := serverURL
		if url == "" {
			url = config.GetServerURL()
		}
		ws.client = session.NewClient(url,
			session.WithHTTPClient(&http.Client{Timeout: config.GetRequestTimeout()}),
			session.WithSessionID(resumeSession),
		)
	}

	ws.editor = editor.New(ws.store, ws.history, ws.client, ws.toasts, editor.Config{
		RollbackOnFailure: config.GetRollbackOnFailure(),
	})

	return ws, nil
}

// save writes the project file and the history sidecar.
func (ws *workspace) save() error {
	p := ws.store.Current()
	if p == nil {
		return nil
	}

	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	if err := os.WriteFile(ws.projectPath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}

	undo, redo := ws.history.State()
	hf := historyFile{Undo: undo, Redo: redo}
	if ws.client != nil {
		hf.SessionID = ws.client.SessionID()
	}
	hraw, err := json.Marshal(hf)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := os.WriteFile(ws.historyPath, hraw, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}

// finish reports sync warnings and persists local state. Sync failures are
// not fatal: the optimistic local value is kept.
func (ws *workspace) finish(syncErr error) error {
	if syncErr != nil {
		var syncFailure *session.SyncError
		var sessionFailure *session.SessionCreationError
		if !errors.As(syncErr, &syncFailure) && !errors.As(syncErr, &sessionFailure) {
			return syncErr
		}
	}
	for _, t := range ws.toasts.Active() {
		if t.Severity == toast.Error || t.Severity == toast.Warning {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", t.Message)
		}
	}
	if syncErr != nil {
		fmt.Fprintln(os.Stderr, "Changes kept locally; retry with the service reachable.")
	}
	return ws.save()
}
