package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spetersoncode/postpilot/chat"
)

const (
	defaultTemperature  = 0.7
	defaultMaxTokens    = 2048
	defaultStageTimeout = 2 * time.Minute
)

// Request carries the inputs for one generation run.
type Request struct {
	// CompanyInfo grounds all generated claims. Required.
	CompanyInfo string `json:"company_info"`

	// Topic is the content subject. Required.
	Topic string `json:"topic"`

	// Style selects the writing voice. Defaults to StyleProfessional.
	Style Style `json:"style,omitempty"`

	// TargetAudience optionally narrows who the post addresses.
	TargetAudience string `json:"target_audience,omitempty"`

	// ContentLength selects the target length band. Defaults to LengthMedium.
	ContentLength Length `json:"content_length,omitempty"`
}

// Validate checks required fields and enum values, applying defaults
// for omitted style and length.
func (r *Request) Validate() error {
	if r.CompanyInfo == "" {
		return fmt.Errorf("company_info is required")
	}
	if r.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	if r.Style == "" {
		r.Style = StyleProfessional
	}
	if err := r.Style.validate(); err != nil {
		return err
	}
	if r.ContentLength == "" {
		r.ContentLength = LengthMedium
	}
	return r.ContentLength.validate()
}

// Generator runs the content generation pipeline against a chat client.
// A Generator is safe for concurrent use; each run owns its own State.
type Generator struct {
	client       chat.Client
	logger       *slog.Logger
	quality      QualityConfig
	scorer       func(content string) (QualityReport, error)
	temperature  float64
	maxTokens    int
	stageTimeout time.Duration
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets the logger for pipeline events.
func WithLogger(l *slog.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = l }
}

// WithQualityConfig overrides the review stage's quality gate settings.
func WithQualityConfig(cfg QualityConfig) GeneratorOption {
	return func(g *Generator) {
		g.quality = cfg
		g.scorer = func(content string) (QualityReport, error) {
			return cfg.Evaluate(content), nil
		}
	}
}

// WithQualityScorer replaces the deterministic scorer entirely. A
// scorer error is treated as accept.
func WithQualityScorer(fn func(content string) (QualityReport, error)) GeneratorOption {
	return func(g *Generator) { g.scorer = fn }
}

// WithTemperature sets the base sampling temperature for stage calls.
func WithTemperature(t float64) GeneratorOption {
	return func(g *Generator) { g.temperature = t }
}

// WithMaxTokens sets the per-call completion token budget.
func WithMaxTokens(n int) GeneratorOption {
	return func(g *Generator) { g.maxTokens = n }
}

// WithStageTimeout bounds each stage's external call. The bound is per
// stage, not per run, so a slow research call cannot starve the later
// stages of their chance to execute. Zero disables the timeout.
func WithStageTimeout(d time.Duration) GeneratorOption {
	return func(g *Generator) { g.stageTimeout = d }
}

// NewGenerator creates a pipeline generator backed by the given client.
func NewGenerator(client chat.Client, opts ...GeneratorOption) *Generator {
	g := &Generator{
		client:       client,
		logger:       slog.Default(),
		quality:      DefaultQualityConfig(),
		temperature:  defaultTemperature,
		maxTokens:    defaultMaxTokens,
		stageTimeout: defaultStageTimeout,
	}
	g.scorer = func(content string) (QualityReport, error) {
		return g.quality.Evaluate(content), nil
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs the full pipeline for one request. The returned error
// covers invalid input only; collaborator failures are absorbed by
// stage fallbacks and reported through the Result's Status and Error.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g.logger.Info("starting content generation",
		"topic", req.Topic,
		"style", req.Style,
		"length", req.ContentLength)

	state := State{
		CompanyInfo:    req.CompanyInfo,
		Topic:          req.Topic,
		Style:          req.Style,
		TargetAudience: req.TargetAudience,
		ContentLength:  req.ContentLength,
		Status:         StatusStarted,
	}

	state = g.execute(ctx, state)
	result := assemble(state)

	if result.Failed() {
		g.logger.Error("content generation failed",
			"topic", req.Topic,
			"error", result.Error)
	} else {
		g.logger.Info("content generation complete",
			"topic", req.Topic,
			"status", result.Status,
			"hashtags", len(result.Hashtags))
	}
	return result, nil
}
