package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// RecordedRequest is one request the fake API received.
type RecordedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// FakeAPI is an in-memory planning service for tests. It implements the
// session surface, records every request, and can be told to fail.
type FakeAPI struct {
	T      *testing.T
	Server *httptest.Server

	mu             sync.Mutex
	nextSession    int
	sessionCreates int
	requests       []RecordedRequest

	// FailStatus makes every subsequent request fail with the given
	// status. FailBody, when set, is returned verbatim as the response
	// body.
	FailStatus int
	FailBody   string
}

// NewFakeAPI starts a fake planning service.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{T: t}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the fake service.
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// SessionCreates returns how many session-creation requests were received.
func (f *FakeAPI) SessionCreates() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessionCreates
}

// Requests returns the recorded requests in arrival order.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// LastRequest returns the most recent request, failing the test when none
// arrived.
func (f *FakeAPI) LastRequest() RecordedRequest {
	f.T.Helper()
	reqs := f.Requests()
	if len(reqs) == 0 {
		f.T.Fatal("no requests recorded")
	}
	return reqs[len(reqs)-1]
}

// FailWith makes every subsequent request fail.
func (f *FakeAPI) FailWith(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FailStatus = status
	f.FailBody = body
}

// Recover clears an injected failure.
func (f *FakeAPI) Recover() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FailStatus = 0
	f.FailBody = ""
}

func (f *FakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Body:   body,
	})
	failStatus, failBody := f.FailStatus, f.FailBody
	f.mu.Unlock()

	if failStatus != 0 {
		w.WriteHeader(failStatus)
		if failBody != "" {
			fmt.Fprint(w, failBody)
		}
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/healthz":
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodPost && r.URL.Path == "/api/sessions":
		f.mu.Lock()
		f.sessionCreates++
		f.nextSession++
		id := fmt.Sprintf("sess-%d", f.nextSession)
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": id})

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/sessions/"):
		w.WriteHeader(http.StatusNoContent)

	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/nest"):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"sheets":[],"utilization":0}`)

	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"not found"}`)
	}
}
