// Package client provides a provider-backed chat client with automatic
// retry on transient errors. It is the production implementation of
// [github.com/spetersoncode/postpilot/chat.Client].
package client

import (
	"context"
	"fmt"

	ai "github.com/spetersoncode/postpilot"
	"github.com/spetersoncode/postpilot/provider/anthropic"
	"github.com/spetersoncode/postpilot/provider/google"
	"github.com/spetersoncode/postpilot/provider/openai"
	"github.com/spetersoncode/postpilot/retry"
)

// Config holds configuration for creating a client.
type Config struct {
	// Provider selects the LLM backend.
	Provider ai.Provider

	// APIKey authenticates with the selected provider.
	APIKey string

	// Model overrides the provider's default chat model.
	Model string

	// RetryConfig configures retry behavior for transient errors.
	// If nil, the default retry configuration is used.
	RetryConfig *retry.Config
}

// ErrFeatureNotSupported is returned when a feature is unavailable for the provider.
type ErrFeatureNotSupported struct {
	Provider string
	Feature  string
}

func (e *ErrFeatureNotSupported) Error() string {
	return fmt.Sprintf("%s provider does not support %s", e.Provider, e.Feature)
}

// Client dispatches chat and image requests to a configured provider,
// retrying transient failures with exponential backoff.
type Client struct {
	provider    ai.Provider
	chat        ai.ChatProvider
	images      ai.ImageProvider // nil when the provider has no image support
	retryConfig retry.Config
	defaultOpts []ai.Option
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultTemperature sets the default temperature for chat requests.
// Per-request options override this default.
func WithDefaultTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.defaultOpts = append(c.defaultOpts, ai.WithTemperature(t))
	}
}

// WithDefaultMaxTokens sets the default max tokens for chat requests.
// Per-request options override this default.
func WithDefaultMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.defaultOpts = append(c.defaultOpts, ai.WithMaxTokens(n))
	}
}

// New creates a client for the configured provider.
func New(ctx context.Context, cfg Config, opts ...ClientOption) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("client: no API key configured for %s", cfg.Provider)
	}

	c := &Client{
		provider:    cfg.Provider,
		retryConfig: retry.DefaultConfig(),
	}
	if cfg.RetryConfig != nil {
		c.retryConfig = *cfg.RetryConfig
	}

	switch cfg.Provider {
	case ai.ProviderAnthropic:
		var popts []anthropic.ClientOption
		if cfg.Model != "" {
			popts = append(popts, anthropic.WithModel(cfg.Model))
		}
		c.chat = anthropic.New(cfg.APIKey, popts...)

	case ai.ProviderOpenAI:
		var popts []openai.ClientOption
		if cfg.Model != "" {
			popts = append(popts, openai.WithModel(cfg.Model))
		}
		oc := openai.New(cfg.APIKey, popts...)
		c.chat = oc
		c.images = oc

	case ai.ProviderGoogle:
		var popts []google.ClientOption
		if cfg.Model != "" {
			popts = append(popts, google.WithModel(cfg.Model))
		}
		gc, err := google.New(ctx, cfg.APIKey, popts...)
		if err != nil {
			return nil, err
		}
		c.chat = gc

	default:
		return nil, fmt.Errorf("client: unknown provider %q", cfg.Provider)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Chat sends a conversation and returns a complete response.
// Transient provider errors are retried per the configured retry policy.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	merged := make([]ai.Option, 0, len(c.defaultOpts)+len(opts))
	merged = append(merged, c.defaultOpts...)
	merged = append(merged, opts...)

	return retry.Do(ctx, c.retryConfig, func() (*ai.Response, error) {
		return c.chat.Chat(ctx, messages, merged...)
	})
}

// GenerateImage creates images from a text prompt.
// Returns ErrFeatureNotSupported for providers without image support.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts ...ai.ImageOption) (*ai.ImageResponse, error) {
	if c.images == nil {
		return nil, &ErrFeatureNotSupported{Provider: string(c.provider), Feature: "image generation"}
	}
	return retry.Do(ctx, c.retryConfig, func() (*ai.ImageResponse, error) {
		return c.images.GenerateImage(ctx, prompt, opts...)
	})
}
