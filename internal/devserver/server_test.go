package devserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutlistlab/cabplan/internal/devserver"
	"github.com/cutlistlab/cabplan/internal/model"
	"github.com/cutlistlab/cabplan/internal/session"
)

func startServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv, err := devserver.New(":memory:", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	resp, err := http.Post(url, "application/json", reader)
	require.NoError(t, err)
	return resp
}

func putJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	return body.Error
}

func createSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()

	resp := postJSON(t, ts.URL+"/api/sessions", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.ID)
	return body.ID
}

func TestHealthz(t *testing.T) {
	ts := startServer(t)

	resp, err := http.Get(ts.URL + "/api/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, session.IsAvailable(ts.URL))
}

func TestProjectRoundTrip(t *testing.T) {
	ts := startServer(t)
	id := createSession(t, ts)

	p := model.NewProject("kitchen")
	p.Cabinets = append(p.Cabinets, model.NewCabinet("base", 600, 720, 580))

	resp := putJSON(t, fmt.Sprintf("%s/api/sessions/%s/project", ts.URL, id), p)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(fmt.Sprintf("%s/api/sessions/%s/project", ts.URL, id))
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var loaded model.Project
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&loaded))
	assert.Equal(t, "kitchen", loaded.Name)
	require.Len(t, loaded.Cabinets, 1)
	assert.Equal(t, "base", loaded.Cabinets[0].Name)
}

func TestGetProjectBeforeFirstPersist(t *testing.T) {
	ts := startServer(t)
	id := createSession(t, ts)

	resp, err := http.Get(fmt.Sprintf("%s/api/sessions/%s/project", ts.URL, id))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loaded model.Project
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loaded))
	assert.Empty(t, loaded.Cabinets, "a fresh session holds an empty project")
}

func TestUnknownSessionIs404(t *testing.T) {
	ts := startServer(t)

	resp := putJSON(t, ts.URL+"/api/sessions/nope/project", model.NewProject("p"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "session not found", decodeError(t, resp))
}

func TestSessionsAreIsolated(t *testing.T) {
	ts := startServer(t)
	first := createSession(t, ts)
	second := createSession(t, ts)
	require.NotEqual(t, first, second)

	resp := putJSON(t, fmt.Sprintf("%s/api/sessions/%s/project", ts.URL, first), model.NewProject("first"))
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(fmt.Sprintf("%s/api/sessions/%s/project", ts.URL, second))
	require.NoError(t, err)
	defer getResp.Body.Close()

	var loaded model.Project
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&loaded))
	assert.NotEqual(t, "first", loaded.Name, "sessions must not see each other's documents")
}

func TestPutCabinetPatchesEntry(t *testing.T) {
	ts := startServer(t)
	id := createSession(t, ts)

	p := model.NewProject("kitchen")
	p.Cabinets = append(p.Cabinets, model.NewCabinet("base", 600, 720, 580))
	resp := putJSON(t, fmt.Sprintf("%s/api/sessions/%s/project", ts.URL, id), p)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	widened := model.NewCabinet("base", 900, 720, 580)
	resp = putJSON(t, fmt.Sprintf("%s/api/sessions/%s/cabinets/0", ts.URL, id), widened)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(fmt.Sprintf("%s/api/sessions/%s/project", ts.URL, id))
	require.NoError(t, err)
	defer getResp.Body.Close()

	var loaded model.Project
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&loaded))
	require.Len(t, loaded.Cabinets, 1)
	assert.Equal(t, 900.0, loaded.Cabinets[0].Width)
}

func TestPutCabinetOutOfRange(t *testing.T) {
	ts := startServer(t)
	id := createSession(t, ts)

	resp := putJSON(t, fmt.Sprintf("%s/api/sessions/%s/cabinets/5", ts.URL, id), model.NewCabinet("x", 600, 720, 580))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "cabinet index out of range", decodeError(t, resp))
}

func TestPutCabinetInvalidIndex(t *testing.T) {
	ts := startServer(t)
	id := createSession(t, ts)

	resp := putJSON(t, fmt.Sprintf("%s/api/sessions/%s/cabinets/xyz", ts.URL, id), model.NewCabinet("x", 600, 720, 580))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid cabinet index", decodeError(t, resp))
}

func TestNestEndpoint(t *testing.T) {
	ts := startServer(t)
	id := createSession(t, ts)

	p := model.NewProject("kitchen")
	p.Cabinets = append(p.Cabinets, model.NewCabinet("base", 600, 720, 580))
	resp := putJSON(t, fmt.Sprintf("%s/api/sessions/%s/project", ts.URL, id), p)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	nestResp := postJSON(t, fmt.Sprintf("%s/api/sessions/%s/nest", ts.URL, id), nil)
	defer nestResp.Body.Close()
	require.Equal(t, http.StatusOK, nestResp.StatusCode)

	var result model.NestingResult
	require.NoError(t, json.NewDecoder(nestResp.Body).Decode(&result))
	assert.NotEmpty(t, result.Sheets)
	assert.Empty(t, result.Unplaced)
	assert.Greater(t, result.Utilization, 0.0)

	// The result is cached on the stored document.
	getResp, err := http.Get(fmt.Sprintf("%s/api/sessions/%s/project", ts.URL, id))
	require.NoError(t, err)
	defer getResp.Body.Close()

	var loaded model.Project
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&loaded))
	assert.NotNil(t, loaded.Nesting)
}

func TestNestRejectsInvalidProject(t *testing.T) {
	ts := startServer(t)
	id := createSession(t, ts)

	p := model.NewProject("broken")
	p.Cabinets = append(p.Cabinets, model.NewCabinet("bad", 0, 720, 580))
	resp := putJSON(t, fmt.Sprintf("%s/api/sessions/%s/project", ts.URL, id), p)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	nestResp := postJSON(t, fmt.Sprintf("%s/api/sessions/%s/nest", ts.URL, id), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, nestResp.StatusCode)
	assert.Contains(t, decodeError(t, nestResp), "dimensions must be positive")
}

func TestClientAgainstDevServer(t *testing.T) {
	ts := startServer(t)
	client := session.NewClient(ts.URL)
	ctx := context.Background()

	p := model.NewProject("kitchen")
	p.Cabinets = append(p.Cabinets, model.NewCabinet("base", 600, 720, 580))
	require.NoError(t, client.UpdateProject(ctx, p))
	require.NoError(t, client.UpdateCabinet(ctx, 0, model.NewCabinet("base", 800, 720, 580)))

	result, err := client.Nest(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Sheets)
}
