// Package stub serves canned responses for the backend's documented routes.
// It backs the client tests and the `arxivcs stub` development command.
package stub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/jask/arxivcs/internal/api"
)

const DefaultFailToken = "#fail"

type Options struct {
	// Latency delays every POST response.
	Latency time.Duration
	// FailToken makes chat, search and visualize return 500 when the query
	// or concept contains it. Empty disables the trigger.
	FailToken string
	Papers    []api.Paper
}

type Server struct {
	opts     Options
	validate *validator.Validate

	mu     sync.RWMutex
	images map[string][]byte
}

func New(opts Options) *Server {
	if opts.Papers == nil {
		opts.Papers = DefaultPapers()
	}
	return &Server{
		opts:     opts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		images:   map[string][]byte{},
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/search", s.handleSearch).Methods(http.MethodPost)
	r.HandleFunc("/visualize", s.handleVisualize).Methods(http.MethodPost)
	r.HandleFunc("/images/{name}", s.handleImage).Methods(http.MethodGet)
	r.Use(logRequests)
	return r
}

// PutImage stores an image so GET /images/{name} can serve it.
func (s *Server) PutImage(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[name] = bytes.Clone(data)
}

func (s *Server) image(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.images[name]
	return data, ok
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{Message: "arXiv CS Expert Chatbot API is running"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req api.ChatRequest
	if !s.decode(w, r, &req, "No query provided") {
		return
	}
	if !s.wait(r.Context()) || s.shouldFail(w, req.Query, "Error processing query") {
		return
	}
	resp := api.ChatResponse{
		Response: fmt.Sprintf("**You asked:** %s\n\nThis is a canned answer from the stub backend.", req.Query),
		Sources:  toSources(matchPapers(s.opts.Papers, req.Query, 3)),
	}
	if mentionsDiagram(req.Query) {
		name, err := s.render(req.Query)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "Error processing query: "+err.Error())
			return
		}
		resp.Image = name
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req := api.SearchRequest{MaxResults: 10}
	if !s.decode(w, r, &req, "No query provided") {
		return
	}
	if !s.wait(r.Context()) || s.shouldFail(w, req.Query, "Error searching papers") {
		return
	}
	writeJSON(w, http.StatusOK, matchPapers(s.opts.Papers, req.Query, req.MaxResults))
}

func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	var req api.VisualizeRequest
	if !s.decode(w, r, &req, "No concept provided") {
		return
	}
	if !s.wait(r.Context()) || s.shouldFail(w, req.Concept, "Error generating visualization") {
		return
	}
	name, err := s.render(req.Concept)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Error generating visualization: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, api.VisualizeResponse{
		Image:   name,
		Message: fmt.Sprintf("Visualization of %s created successfully", req.Concept),
	})
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	data, ok := s.image(name)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Image not found")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) render(label string) (string, error) {
	data, err := Diagram(label)
	if err != nil {
		return "", err
	}
	name := uuid.NewString() + ".png"
	s.PutImage(name, data)
	return name, nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any, missing string) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("Failed to decode request body")
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("Request validation failed")
		writeDetail(w, http.StatusBadRequest, missing)
		return false
	}
	return true
}

func (s *Server) wait(ctx context.Context) bool {
	if s.opts.Latency <= 0 {
		return true
	}
	t := time.NewTimer(s.opts.Latency)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Server) shouldFail(w http.ResponseWriter, input, prefix string) bool {
	if s.opts.FailToken == "" || !strings.Contains(input, s.opts.FailToken) {
		return false
	}
	writeDetail(w, http.StatusInternalServerError, prefix+": induced failure")
	return true
}

func mentionsDiagram(q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(q, "diagram") || strings.Contains(q, "visualize") || strings.Contains(q, "draw")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, api.ErrorBody{Detail: detail})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(started)).
			Msg("stub request")
	})
}
