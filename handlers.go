package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"codeexplainer/internal/explain"
	"codeexplainer/internal/github"
	"codeexplainer/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxRequestBody = 4 << 20

type contextKey string

const requestIDKey contextKey = "requestID"

// server holds the process-wide, read-only collaborators of every handler.
type server struct {
	engine *explain.Engine
	github *github.Client
}

func newServer(engine *explain.Engine, gh *github.Client) *server {
	return &server{engine: engine, github: gh}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/explain", corsMiddleware(s.explainHandler))
	mux.HandleFunc("/api/review", corsMiddleware(s.reviewHandler))
	mux.HandleFunc("/api/github/tree", corsMiddleware(s.treeHandler))
	mux.HandleFunc("/api/github/file", corsMiddleware(s.fileHandler))
	mux.HandleFunc("/health", corsMiddleware(healthCheckHandler))
	return requestIDMiddleware(mux)
}

// CORS middleware to handle cross-origin requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-GitHub-Token, X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", "86400")

		// Handle preflight OPTIONS request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestIDMiddleware tags every request with an ID, echoes it in X-Request-ID and
// logs the outcome under it.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey, reqID)))

		logrus.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
		}).Info("HTTP request")
	})
}

func requestLogger(r *http.Request) *logrus.Entry {
	reqID, _ := r.Context().Value(requestIDKey).(string)
	return logrus.WithField("request_id", reqID)
}

func (s *server) explainHandler(w http.ResponseWriter, r *http.Request) {
	s.handleExplain(w, r, func(ctx context.Context, sample models.CodeSample, question string) (models.ExplanationResult, error) {
		return s.engine.Explain(ctx, sample, question)
	})
}

func (s *server) reviewHandler(w http.ResponseWriter, r *http.Request) {
	s.handleExplain(w, r, func(ctx context.Context, sample models.CodeSample, _ string) (models.ExplanationResult, error) {
		return s.engine.Review(ctx, sample)
	})
}

type explainFunc func(ctx context.Context, sample models.CodeSample, question string) (models.ExplanationResult, error)

func (s *server) handleExplain(w http.ResponseWriter, r *http.Request, run explainFunc) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req models.ExplainRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Error decoding JSON request")
		return
	}
	code, ok := req.CodeText()
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing code")
		return
	}

	sample := models.CodeSample{Text: code, DeclaredLanguage: req.Language, Path: req.Path}
	result, err := run(r.Context(), sample, req.Question)
	if errors.Is(err, explain.ErrMissingCode) {
		writeError(w, http.StatusBadRequest, "Missing code")
		return
	}
	if err != nil {
		requestLogger(r).WithError(err).Error("Explanation failed")
		writeError(w, http.StatusInternalServerError, "Failed to generate explanation")
		return
	}

	writeJSON(w, http.StatusOK, models.ExplainResponse{
		Explanation: result.Body,
		SourceMode:  result.SourceMode,
		Note:        result.Note,
	})
}

func (s *server) treeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}
	repoURL := r.URL.Query().Get("url")
	if repoURL == "" {
		writeError(w, http.StatusBadRequest, "Missing url")
		return
	}

	tree, err := s.github.FetchTree(r.Context(), repoURL, r.Header.Get("X-GitHub-Token"))
	if err != nil {
		writeFetchError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (s *server) fileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}
	repoURL := r.URL.Query().Get("url")
	filePath := r.URL.Query().Get("path")
	if repoURL == "" || filePath == "" {
		writeError(w, http.StatusBadRequest, "Missing url or path")
		return
	}

	file, err := s.github.FetchFile(r.Context(), repoURL, filePath, r.Header.Get("X-GitHub-Token"))
	if err != nil {
		writeFetchError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, file)
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeFetchError(w http.ResponseWriter, r *http.Request, err error) {
	var statusErr *github.StatusError
	switch {
	case errors.As(err, &statusErr):
		requestLogger(r).WithField("status", statusErr.Status).Warn(statusErr.Message)
		writeJSON(w, statusErr.Status, models.ErrorResponse{Error: statusErr.Message, Status: statusErr.Status})
	case errors.Is(err, github.ErrInvalidURL):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		requestLogger(r).WithError(err).Error("GitHub fetch failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("Failed to write response")
	}
}
