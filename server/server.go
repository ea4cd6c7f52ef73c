// Package server exposes the content generation and approval workflow
// over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/spetersoncode/postpilot/images"
	"github.com/spetersoncode/postpilot/linkedin"
	"github.com/spetersoncode/postpilot/pipeline"
	"github.com/spetersoncode/postpilot/store"
	"github.com/spetersoncode/postpilot/telegram"
)

// Publisher posts approved content to the social network.
// *linkedin.Client satisfies it.
type Publisher interface {
	PostText(ctx context.Context, content string) (*linkedin.Post, error)
}

// Notifier routes content to the human reviewer. *telegram.Bot
// satisfies it.
type Notifier interface {
	SendApprovalRequest(ctx context.Context, chatID int64, contentID, topic, content string) (*telegram.Message, error)
	SendMessage(ctx context.Context, chatID int64, text string) (*telegram.Message, error)
	AnswerCallback(ctx context.Context, queryID, text string) error
}

// ImageGenerator produces post imagery. *images.Service satisfies it.
type ImageGenerator interface {
	Generate(ctx context.Context, theme, style string, count int) ([]images.Image, error)
}

// Server wires the pipeline, store, reviewer bot, and publisher into
// an HTTP API.
type Server struct {
	generator *pipeline.Generator
	store     *store.Store
	logger    *slog.Logger

	// Optional collaborators; nil disables the corresponding feature.
	imageGen  ImageGenerator
	notifier  Notifier
	publisher Publisher

	// approvalChatID is the reviewer's Telegram chat.
	approvalChatID int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and workflow logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithImageGenerator enables image generation for new content.
func WithImageGenerator(g ImageGenerator) Option {
	return func(s *Server) { s.imageGen = g }
}

// WithNotifier enables Telegram approval notifications to the given chat.
func WithNotifier(n Notifier, chatID int64) Option {
	return func(s *Server) {
		s.notifier = n
		s.approvalChatID = chatID
	}
}

// WithPublisher enables publishing approved content to LinkedIn.
func WithPublisher(p Publisher) Option {
	return func(s *Server) { s.publisher = p }
}

// New creates a server around the generator and store.
func New(generator *pipeline.Generator, st *store.Store, opts ...Option) *Server {
	s := &Server{
		generator: generator,
		store:     st,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/content/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/v1/content/variations", s.handleVariations)
	mux.HandleFunc("GET /api/v1/content", s.handleListContent)
	mux.HandleFunc("GET /api/v1/content/{id}", s.handleGetContent)
	mux.HandleFunc("DELETE /api/v1/content/{id}", s.handleDeleteContent)
	mux.HandleFunc("POST /api/v1/content/{id}/approval", s.handleApproval)
	mux.HandleFunc("POST /api/v1/telegram/webhook", s.handleTelegramWebhook)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return s.logRequests(mux)
}

// statusRecorder captures the response code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
