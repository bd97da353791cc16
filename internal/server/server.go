// Package server exposes the canonicalizer over HTTP.
//
//	POST /tool          execute a tool call ({"tool": ..., "params": {...}})
//	POST /canonicalize  canonicalize one equation ({"equation": "..."})
//	GET  /schema        tool schema for agent registration
//	GET  /health        liveness check
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/njchilds90/gopoly"
	"github.com/njchilds90/gopoly/internal/config"
	"github.com/njchilds90/gopoly/internal/logger"
)

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

// Server serves tool calls against one pipeline.
type Server struct {
	cfg      config.ServerConfig
	pipeline *gopoly.Pipeline
	log      *logger.Logger
	router   *httprouter.Router
	server   *http.Server
	started  time.Time
}

// New creates a server. A nil log discards output.
func New(cfg config.ServerConfig, p *gopoly.Pipeline, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{
		cfg:      cfg,
		pipeline: p,
		log:      log.WithComponent("server"),
		router:   httprouter.New(),
		started:  time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.POST("/tool", s.handleTool)
	s.router.POST("/canonicalize", s.handleCanonicalize)
	s.router.GET("/schema", s.handleSchema)
	s.router.GET("/health", s.handleHealth)
	s.router.PanicHandler = s.handlePanic
}

// Handler returns the routed handler with request IDs and access logging.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		r = r.WithContext(withRequestID(r.Context(), id))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		s.router.ServeHTTP(rec, r)

		s.log.Debug("request", logger.Fields(
			logger.FieldRequestID, id,
			"method", r.Method,
			logger.FieldPath, r.URL.Path,
			"status", rec.status,
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
	})
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout.Duration,
		ReadTimeout:       s.cfg.ReadTimeout.Duration,
		WriteTimeout:      s.cfg.WriteTimeout.Duration,
		IdleTimeout:       s.cfg.IdleTimeout.Duration,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", logger.Fields("addr", ln.Addr().String()))
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		return s.Stop()
	}
}

// Stop shuts the server down, waiting up to the configured shutdown timeout.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	timeout := s.cfg.ShutdownTimeout.Duration
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("shutting down")
	return s.server.Shutdown(ctx)
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req gopoly.ToolRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp := s.pipeline.HandleToolCall(req)
	if resp.Error != "" {
		s.log.Debug("tool failed", logger.Fields(
			logger.FieldRequestID, requestID(r.Context()),
			logger.FieldOperation, req.Tool,
			logger.FieldError, resp.Error,
		))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CanonicalizeRequest is the body of POST /canonicalize.
type CanonicalizeRequest struct {
	Equation string `json:"equation"`
}

// CanonicalizeResponse carries every intermediate product of a successful
// run, or the error and its kind.
type CanonicalizeResponse struct {
	Input     string          `json:"input"`
	Output    string          `json:"output,omitempty"`
	LaTeX     string          `json:"latex,omitempty"`
	Sanitized string          `json:"sanitized,omitempty"`
	Postfix   string          `json:"postfix,omitempty"`
	Terms     json.RawMessage `json:"terms,omitempty"`
	Error     string          `json:"error,omitempty"`
	Kind      string          `json:"kind,omitempty"`
}

func (s *Server) handleCanonicalize(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CanonicalizeRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.pipeline.Run(req.Equation)
	if err != nil {
		resp := CanonicalizeResponse{Input: req.Equation, Error: err.Error()}
		if kind := gopoly.KindOf(err); kind != nil {
			resp.Kind = kind.Error()
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	terms, err := gopoly.ToJSON(res.Terms)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, CanonicalizeResponse{
		Input:     res.Input,
		Output:    res.Output,
		LaTeX:     gopoly.FormatLaTeX(res.Terms),
		Sanitized: res.Sanitized,
		Postfix:   res.Postfix,
		Terms:     json.RawMessage(terms),
	})
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, gopoly.ToolSpec())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handlePanic(w http.ResponseWriter, r *http.Request, rec interface{}) {
	s.log.Error("panic in handler", logger.Fields(
		logger.FieldRequestID, requestID(r.Context()),
		logger.FieldPath, r.URL.Path,
		"panic", fmt.Sprint(rec),
		"stack", string(debug.Stack()),
	))
	writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
}

// decode reads exactly one JSON value from the body. It writes a 400 and
// returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return false
		}
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	if dec.More() {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON: trailing data"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
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

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
