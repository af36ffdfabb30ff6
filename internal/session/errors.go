package session

import "fmt"

// SessionCreationError reports a failed session-creation request. Persist
// calls cannot proceed until a retry succeeds; the client never retries on
// its own.
type SessionCreationError struct {
	Status string
	Err    error
}

func (e *SessionCreationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("session creation failed: %v", e.Err)
	}
	return fmt.Sprintf("session creation failed: %s", e.Status)
}

func (e *SessionCreationError) Unwrap() error {
	return e.Err
}

// SyncError reports a failed persist request after a session existed. The
// message comes from the server's structured error body when present,
// otherwise from the HTTP status text. Local state keeps the optimistic
// value; rollback is the editing layer's decision.
type SyncError struct {
	Message string
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync failed: %s", e.Message)
}
