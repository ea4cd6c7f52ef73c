package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/postpilot"
)

const (
	testCompanyInfo = "Acme Corp builds fencing for warehouses"
	testTopic       = "warehouse safety"
)

const goodDraft = "Warehouse injuries are preventable, and at Acme Corp we prove it every day. " +
	"Our fencing systems separate people from moving equipment where it matters most. " +
	"What is the one safety upgrade your facility keeps postponing? " +
	"#WarehouseSafety #Safety #Logistics"

const goodRewrite = "At Acme Corp, we believe warehouse safety starts with the right barriers. " +
	"Our team designs fencing that protects people and product alike, without slowing the work down. " +
	"What does your facility do to keep workers safe? Share your thoughts below. " +
	"#WarehouseSafety #Safety #Logistics #Manufacturing"

// mockClient routes each chat call to a per-stage responder, keyed off
// the system prompt. It records which stages were invoked.
type mockClient struct {
	mu     sync.Mutex
	stages []string

	research    func(user string) (string, error)
	draft       func(user string) (string, error)
	imagePrompt func(user string) (string, error)
	review      func(user string) (string, error)
}

func newMockClient() *mockClient {
	return &mockClient{
		research:    func(string) (string, error) { return "Acme Corp's context supports a worker-safety angle.", nil },
		draft:       func(string) (string, error) { return goodDraft, nil },
		imagePrompt: func(string) (string, error) { return "Professional photograph of warehouse safety fencing, modern facility", nil },
		review:      func(string) (string, error) { return goodRewrite, nil },
	}
}

func (m *mockClient) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	if len(messages) != 2 {
		return nil, errors.New("mock: expected system and user messages")
	}
	system, user := messages[0].Content, messages[1].Content

	var name string
	var fn func(string) (string, error)
	switch {
	case strings.Contains(system, "RESEARCH SPECIALIZATION"):
		name, fn = stageResearch, m.research
	case strings.Contains(system, "CONTENT CREATION SPECIALIZATION"):
		name, fn = stageDraft, m.draft
	case strings.Contains(system, "image prompts"):
		name, fn = stageImagePrompt, m.imagePrompt
	case strings.Contains(system, "REVIEW SPECIALIZATION"):
		name, fn = stageReview, m.review
	default:
		return nil, errors.New("mock: unrecognized system prompt")
	}

	m.mu.Lock()
	m.stages = append(m.stages, name)
	m.mu.Unlock()

	content, err := fn(user)
	if err != nil {
		return nil, err
	}
	return &ai.Response{Content: content, FinishReason: "stop"}, nil
}

func (m *mockClient) called() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.stages...)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGenerator(m *mockClient, opts ...GeneratorOption) *Generator {
	opts = append([]GeneratorOption{WithLogger(quietLogger())}, opts...)
	return NewGenerator(m, opts...)
}

func testRequest() Request {
	return Request{
		CompanyInfo: testCompanyInfo,
		Topic:       testTopic,
		Style:       StyleProfessional,
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	mock := newMockClient()
	gen := newTestGenerator(mock)

	result, err := gen.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, goodRewrite, result.FinalContent)
	assert.Equal(t, goodDraft, result.DraftContent)
	assert.GreaterOrEqual(t, len(result.Hashtags), 3)
	assert.LessOrEqual(t, len(result.Hashtags), 5)
	assert.NotEmpty(t, result.ImagePrompt)
	assert.Empty(t, result.Error)

	assert.Equal(t, testTopic, result.Metadata.Topic)
	assert.Equal(t, StyleProfessional, result.Metadata.Style)
	assert.Equal(t, LengthMedium, result.Metadata.ContentLength)
	assert.False(t, result.Metadata.GeneratedAt.IsZero())
	assert.Equal(t,
		[]string{stageResearch, stageDraft, stageImagePrompt, stageReview, stageFinalize},
		result.Metadata.WorkflowSteps)
}

func TestGenerateResearchFailureDoesNotStopLaterStages(t *testing.T) {
	mock := newMockClient()
	mock.research = func(string) (string, error) {
		return "", ai.NewTransientError("rate limited", 429, nil)
	}
	gen := newTestGenerator(mock)

	result, err := gen.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.NotEmpty(t, result.FinalContent)
	assert.Contains(t, result.Error, "rate limited")
	assert.Equal(t,
		[]string{stageResearch, stageDraft, stageImagePrompt, stageReview},
		mock.called())
	assert.Equal(t,
		[]string{stageResearch, stageDraft, stageImagePrompt, stageReview, stageFinalize},
		result.Metadata.WorkflowSteps)
}

func TestGenerateDraftSeesResearchFallbackNotes(t *testing.T) {
	mock := newMockClient()
	mock.research = func(string) (string, error) { return "", errors.New("research backend down") }

	var draftUser string
	mock.draft = func(user string) (string, error) {
		draftUser = user
		return goodDraft, nil
	}
	gen := newTestGenerator(mock)

	_, err := gen.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Contains(t, draftUser, "Research unavailable: research backend down")
}

func TestGenerateAllCallsFailReturnsFailed(t *testing.T) {
	mock := newMockClient()
	fail := func(string) (string, error) { return "", errors.New("provider unavailable") }
	mock.research, mock.draft, mock.imagePrompt, mock.review = fail, fail, fail, fail
	gen := newTestGenerator(mock)

	result, err := gen.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, result.Status)
	assert.Empty(t, result.FinalContent)
	assert.NotEmpty(t, result.Error)
	// All five stages still executed.
	assert.Equal(t,
		[]string{stageResearch, stageDraft, stageImagePrompt, stageReview, stageFinalize},
		result.Metadata.WorkflowSteps)
}

func TestGenerateNeverCompletesWithEmptyContent(t *testing.T) {
	mock := newMockClient()
	mock.draft = func(string) (string, error) { return "", errors.New("draft failed") }
	mock.review = func(string) (string, error) { return "", errors.New("review failed") }
	gen := newTestGenerator(mock)

	result, err := gen.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	if result.Status != StatusFailed {
		assert.NotEmpty(t, result.FinalContent)
	}
	assert.Equal(t, StatusFailed, result.Status)
}

func TestGenerateReviewFailureFallsBackToDraft(t *testing.T) {
	mock := newMockClient()
	mock.review = func(string) (string, error) { return "", errors.New("review timed out") }
	gen := newTestGenerator(mock)

	result, err := gen.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, goodDraft+"\n\n[Content review incomplete]", result.FinalContent)
	assert.Contains(t, result.Error, "review timed out")
}

func TestGenerateQualityGateRejectionRevertsToDraft(t *testing.T) {
	mock := newMockClient()
	// Short, no company reference, no engagement cue, no hashtag.
	mock.review = func(string) (string, error) { return "A bland rewrite.", nil }
	gen := newTestGenerator(mock)

	result, err := gen.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, goodDraft+"\n\n[Content reviewed for accuracy]", result.FinalContent)
}

func TestGenerateScorerErrorFailsOpen(t *testing.T) {
	mock := newMockClient()
	gen := newTestGenerator(mock, WithQualityScorer(func(string) (QualityReport, error) {
		return QualityReport{}, errors.New("scorer broken")
	}))

	result, err := gen.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, goodRewrite, result.FinalContent)
}

func TestGenerateImagePromptFallback(t *testing.T) {
	mock := newMockClient()
	mock.imagePrompt = func(string) (string, error) { return "", errors.New("image model offline") }
	gen := newTestGenerator(mock)

	result, err := gen.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, "Professional business image related to warehouse safety", result.ImagePrompt)
}

func TestGenerateHashtagFallbackWhenDraftHasNone(t *testing.T) {
	noTags := "At Acme Corp we take safety seriously. Our fencing keeps people clear of moving equipment. " +
		"What keeps your team safe on the floor?"
	mock := newMockClient()
	mock.draft = func(string) (string, error) { return noTags, nil }
	mock.review = func(string) (string, error) { return noTags, nil }
	gen := newTestGenerator(mock)

	result, err := gen.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, []string{"LinkedIn", "Professional", "Business", "Warehouse", "Safety"}, result.Hashtags)
}

func TestGenerateEmptyResponseTriggersFallback(t *testing.T) {
	mock := newMockClient()
	mock.imagePrompt = func(string) (string, error) { return "   ", nil }
	gen := newTestGenerator(mock)

	result, err := gen.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "Professional business image related to warehouse safety", result.ImagePrompt)
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"valid", Request{CompanyInfo: testCompanyInfo, Topic: testTopic, Style: StyleCasual, ContentLength: LengthShort}, false},
		{"defaults applied", Request{CompanyInfo: testCompanyInfo, Topic: testTopic}, false},
		{"missing company info", Request{Topic: testTopic}, true},
		{"missing topic", Request{CompanyInfo: testCompanyInfo}, true},
		{"bad style", Request{CompanyInfo: testCompanyInfo, Topic: testTopic, Style: "sarcastic"}, true},
		{"bad length", Request{CompanyInfo: testCompanyInfo, Topic: testTopic, ContentLength: "epic"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequestValidateAppliesDefaults(t *testing.T) {
	req := Request{CompanyInfo: testCompanyInfo, Topic: testTopic}
	require.NoError(t, req.Validate())
	assert.Equal(t, StyleProfessional, req.Style)
	assert.Equal(t, LengthMedium, req.ContentLength)
}

func TestGenerateInvalidRequestReturnsError(t *testing.T) {
	gen := newTestGenerator(newMockClient())
	_, err := gen.Generate(context.Background(), Request{})
	assert.Error(t, err)
}
