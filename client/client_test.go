package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/postpilot"
	"github.com/spetersoncode/postpilot/retry"
)

type fakeChat struct {
	calls    int
	failures int
	lastOpts *ai.Options
}

func (f *fakeChat) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	f.calls++
	f.lastOpts = ai.ApplyOptions(opts...)
	if f.calls <= f.failures {
		return nil, ai.NewTransientError("temporary outage", 503, nil)
	}
	return &ai.Response{Content: "ok"}, nil
}

func newTestClient(chat ai.ChatProvider, opts ...ClientOption) *Client {
	c := &Client{
		provider:    ai.ProviderOpenAI,
		chat:        chat,
		retryConfig: retry.Config{MaxAttempts: 3, Multiplier: 1.0},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: ai.ProviderOpenAI})
	assert.Error(t, err)
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: ai.Provider("mystery"), APIKey: "key"})
	assert.Error(t, err)
}

func TestChatRetriesTransientErrors(t *testing.T) {
	fake := &fakeChat{failures: 2}
	c := newTestClient(fake)

	resp, err := c.Chat(context.Background(), []ai.Message{ai.NewUserMessage("hi")})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, 3, fake.calls)
}

func TestChatMergesDefaultOptions(t *testing.T) {
	fake := &fakeChat{}
	c := newTestClient(fake, WithDefaultTemperature(0.3), WithDefaultMaxTokens(512))

	_, err := c.Chat(context.Background(), []ai.Message{ai.NewUserMessage("hi")})
	require.NoError(t, err)
	require.NotNil(t, fake.lastOpts.Temperature)
	assert.InDelta(t, 0.3, *fake.lastOpts.Temperature, 1e-9)
	assert.Equal(t, 512, fake.lastOpts.MaxTokens)
}

func TestChatPerRequestOptionsOverrideDefaults(t *testing.T) {
	fake := &fakeChat{}
	c := newTestClient(fake, WithDefaultTemperature(0.3))

	_, err := c.Chat(context.Background(), []ai.Message{ai.NewUserMessage("hi")}, ai.WithTemperature(0.9))
	require.NoError(t, err)
	require.NotNil(t, fake.lastOpts.Temperature)
	assert.InDelta(t, 0.9, *fake.lastOpts.Temperature, 1e-9)
}

func TestGenerateImageUnsupported(t *testing.T) {
	c := newTestClient(&fakeChat{})
	c.provider = ai.ProviderAnthropic

	_, err := c.GenerateImage(context.Background(), "a poster")
	var unsupported *ErrFeatureNotSupported
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "image generation", unsupported.Feature)
}
