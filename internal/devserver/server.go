// Package devserver implements the planning API locally so the CLI and the
// integration tests can run without the real service. It speaks the same
// surface: session creation, document and cabinet persists, and nesting.
package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cutlistlab/cabplan/internal/model"
	"github.com/cutlistlab/cabplan/internal/nesting"
)

// Server serves the planning API over a sqlite-backed store.
type Server struct {
	store *storage
	log   *slog.Logger
	mux   *chi.Mux
}

// New opens the database at path (":memory:" for tests) and builds the
// router.
func New(path string, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.Default()
	}
	store, err := openStorage(path)
	if err != nil {
		return nil, err
	}

	s := &Server{store: store, log: log}

	mux := chi.NewRouter()
	mux.Use(s.requestLogger)
	mux.Route("/api", func(r chi.Router) {
		r.Get("/healthz", s.healthz)
		r.Post("/sessions", s.createSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/project", s.getProject)
			r.Put("/project", s.putProject)
			r.Put("/cabinets/{index}", s.putCabinet)
			r.Post("/nest", s.nest)
		})
	})
	s.mux = mux
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Close releases the database.
func (s *Server) Close() error {
	return s.store.close()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &recordingWriter{inner: w}
		next.ServeHTTP(rw, r)
		s.log.Info("handled", "method", r.Method, "url", r.URL.String(), "status", rw.statusCode)
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.store.createSession(r.Context())
	if err != nil {
		s.log.Error("failed to create session", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.store.loadProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) putProject(w http.ResponseWriter, r *http.Request) {
	var project model.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		writeError(w, http.StatusBadRequest, "invalid project body")
		return
	}
	if err := s.store.saveProject(r.Context(), chi.URLParam(r, "id"), &project); err != nil {
		s.storageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) putCabinet(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, "invalid cabinet index")
		return
	}

	var cabinet model.Cabinet
	if err := json.NewDecoder(r.Body).Decode(&cabinet); err != nil {
		writeError(w, http.StatusBadRequest, "invalid cabinet body")
		return
	}

	sessionID := chi.URLParam(r, "id")
	project, err := s.store.loadProject(r.Context(), sessionID)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if index >= len(project.Cabinets) {
		writeError(w, http.StatusBadRequest, "cabinet index out of range")
		return
	}

	project.Cabinets[index] = cabinet
	if err := s.store.saveProject(r.Context(), sessionID, project); err != nil {
		s.storageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) nest(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	project, err := s.store.loadProject(r.Context(), sessionID)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if v := project.Validate(); v.HasErrors() {
		writeError(w, http.StatusUnprocessableEntity, v.Errors[0])
		return
	}

	result := nesting.Nest(project.Parts(), project.Stock)

	project.Nesting = result
	if err := s.store.saveProject(r.Context(), sessionID, project); err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) storageError(w http.ResponseWriter, err error) {
	if err == errSessionNotFound {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	s.log.Error("storage failure", "err", err)
	writeError(w, http.StatusInternalServerError, "storage failure")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// recordingWriter captures the status code for request logging.
type recordingWriter struct {
	inner      http.ResponseWriter
	statusCode int
}

func (r *recordingWriter) Header() http.Header {
	return r.inner.Header()
}

func (r *recordingWriter) Write(b []byte) (int, error) {
	if r.statusCode == 0 {
		r.statusCode = http.StatusOK
	}
	return r.inner.Write(b)
}

func (r *recordingWriter) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.inner.WriteHeader(statusCode)
}
