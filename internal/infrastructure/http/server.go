// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/0xcro3dile/robobob/internal/domain/entities"
)

const maxBodyBytes = 64 << 10

// Asker answers a question request. Implemented by usecases.Dispatcher.
type Asker interface {
	Ask(ctx context.Context, req *entities.QuestionRequest) (*entities.AnswerResponse, error)
}

// Options tunes the HTTP server.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server is the HTTP server for the question API.
type Server struct {
	asker  Asker
	logger *zap.Logger
	opts   Options
	router *httprouter.Router
}

// NewServer creates a new HTTP server.
func NewServer(asker Asker, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	s := &Server{
		asker:  asker,
		logger: logger,
		opts:   opts,
		router: httprouter.New(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.POST("/api/questions", s.handleQuestion)
	s.router.GET("/api/health", s.handleHealth)

	s.router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found", []string{"No route for " + r.URL.Path})
	})
	s.router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		s.logger.Error("Unexpected error occurred", zap.Any("panic", v), zap.String("path", r.URL.Path))
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred", []string{"Please check your question"})
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return requestIDMiddleware(loggingMiddleware(s.logger, corsMiddleware(s.router)))
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	s.logger.Info("RoboBob server starting", zap.String("addr", s.opts.Addr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	s.logger.Info("RoboBob server shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleQuestion answers a single question.
func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Question *string `json:"question"`
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		s.logger.Warn("Bad request", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Question is invalid", []string{err.Error()})
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		s.logger.Warn("Bad request", zap.String("reason", "trailing data after JSON body"))
		writeError(w, http.StatusBadRequest, "Question is invalid", []string{"request body must contain a single JSON object"})
		return
	}
	if body.Question == nil {
		writeError(w, http.StatusBadRequest, "Validation failed", []string{"must not be null"})
		return
	}
	if strings.TrimSpace(*body.Question) == "" {
		writeError(w, http.StatusBadRequest, "Validation failed", []string{"must not be blank"})
		return
	}

	s.logger.Info("Received question", zap.String("question", *body.Question))
	resp, err := s.asker.Ask(r.Context(), &entities.QuestionRequest{Question: *body.Question})
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.logger.Info("Answer", zap.String("answer", resp.Answer))

	writeJSON(w, http.StatusOK, resp)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Timestamp string   `json:"timestamp"`
	Status    int      `json:"status"`
	Error     string   `json:"error"`
	Messages  []string `json:"messages"`
}

// failureStatus maps each failure kind to its status and error title.
var failureStatus = map[entities.FailureKind]struct {
	status int
	title  string
}{
	entities.KindNotFound:   {http.StatusNotFound, "Not found"},
	entities.KindSyntax:     {http.StatusUnprocessableEntity, "Invalid arithmetic expression"},
	entities.KindEvaluation: {http.StatusUnprocessableEntity, "Arithmetic evaluation failed"},
	entities.KindBadRequest: {http.StatusBadRequest, "Question is invalid"},
}

func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	kind := entities.KindOf(err)
	mapped, ok := failureStatus[kind]
	if !ok {
		s.logger.Error("Unexpected error occurred", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred", []string{"Please check your question"})
		return
	}
	s.logger.Warn(mapped.title, zap.Stringer("kind", kind), zap.Error(err))
	writeError(w, mapped.status, mapped.title, []string{err.Error()})
}

func writeError(w http.ResponseWriter, status int, title string, messages []string) {
	writeJSON(w, status, ErrorResponse{
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		Status:    status,
		Error:     title,
		Messages:  messages,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type requestIDKey struct{}

// RequestID returns the request id stored by the middleware, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func loggingMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", RequestID(r.Context())))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
