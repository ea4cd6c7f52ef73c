// Package chat provides the canonical chat client interface.
//
// This package exists so the pipeline, server, and cmd packages can share one
// interface without import cycles. The
// [github.com/spetersoncode/postpilot/client.Client] type implements it.
package chat

import (
	"context"

	ai "github.com/spetersoncode/postpilot"
)

// Client defines the interface for high-level chat clients.
// This is the canonical interface consumed by the generation pipeline.
type Client interface {
	// Chat sends a conversation and returns a complete response.
	Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error)
}
