package pipeline

import (
	"context"
	"fmt"
	"strings"

	ai "github.com/spetersoncode/postpilot"
)

// invoke sends a system/user prompt pair to the chat client and returns
// the response text. An empty response is an error so the calling stage
// falls back rather than propagating blank content.
func (g *Generator) invoke(ctx context.Context, system, user string) (string, error) {
	resp, err := g.client.Chat(ctx,
		[]ai.Message{ai.NewSystemMessage(system), ai.NewUserMessage(user)},
		ai.WithTemperature(g.temperature),
		ai.WithMaxTokens(g.maxTokens),
	)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Content) == "" {
		return "", ai.ErrEmptyResponse
	}
	return resp.Content, nil
}

// research gathers content angles grounded only in the supplied company
// context. Its notes feed the draft stage; a failure here degrades the
// draft's input but never stops the run.
func (g *Generator) research(ctx context.Context, s State) (Delta, error) {
	notes, err := g.invoke(ctx, researchSystem, researchUserPrompt(s))
	if err != nil {
		return Delta{}, err
	}
	return Delta{
		ResearchNotes: notes,
		Status:        StatusResearched,
	}, nil
}

func researchFallback(_ State, err error) Delta {
	return Delta{
		ResearchNotes: fmt.Sprintf("Research unavailable: %v", err),
		Status:        StatusResearchFailed,
	}
}

// draft produces the post body and extracts its hashtags.
func (g *Generator) draft(ctx context.Context, s State) (Delta, error) {
	content, err := g.invoke(ctx, draftSystem, draftUserPrompt(s))
	if err != nil {
		return Delta{}, err
	}
	return Delta{
		DraftContent: content,
		Hashtags:     ExtractHashtags(content),
		Status:       StatusDraftGenerated,
	}, nil
}

// A failed draft leaves DraftContent empty. Fabricating body text from
// an error message would let a contentless run reach StatusCompleted;
// finalize marks the run failed instead when nothing else produced text.
func draftFallback(_ State, _ error) Delta {
	return Delta{Status: StatusDraftFailed}
}

// imagePrompt produces a description for downstream image generation.
func (g *Generator) imagePrompt(ctx context.Context, s State) (Delta, error) {
	prompt, err := g.invoke(ctx, imagePromptSystem, imagePromptUserPrompt(s))
	if err != nil {
		return Delta{}, err
	}
	return Delta{
		ImagePrompt: prompt,
		Status:      StatusImagePromptGenerated,
	}, nil
}

func imagePromptFallback(s State, _ error) Delta {
	return Delta{
		ImagePrompt: fmt.Sprintf("Professional business image related to %s", s.Topic),
		Status:      StatusImagePromptFallback,
	}
}

// review asks for a fact-checked rewrite of the draft, then gates the
// rewrite with the deterministic quality scorer. A rejected rewrite
// reverts to the draft with a disclaimer marker.
func (g *Generator) review(ctx context.Context, s State) (Delta, error) {
	content, err := g.invoke(ctx, reviewSystem, reviewUserPrompt(s))
	if err != nil {
		return Delta{}, err
	}

	report, err := g.scorer(content)
	if err != nil {
		// Fail open: a human approves the output downstream, so a broken
		// scorer should not block a successful rewrite.
		g.logger.Warn("quality check failed, accepting content", "error", err)
		return Delta{
			FinalContent: content,
			ReviewNotes:  fmt.Sprintf("Quality check incomplete: %v", err),
			Status:       StatusContentReviewed,
		}, nil
	}

	if !report.Acceptable {
		g.logger.Warn("rewrite rejected by quality gate, reverting to draft",
			"score", report.Score)
		d := Delta{
			ReviewNotes: report.Feedback,
			Status:      StatusReviewFallback,
		}
		if s.DraftContent != "" {
			d.FinalContent = s.DraftContent + "\n\n[Content reviewed for accuracy]"
		}
		return d, nil
	}

	return Delta{
		FinalContent: content,
		ReviewNotes:  report.Feedback,
		Status:       StatusContentReviewed,
	}, nil
}

func reviewFallback(s State, err error) Delta {
	d := Delta{
		ReviewNotes: fmt.Sprintf("Review failed: %v", err),
		Status:      StatusReviewFailed,
	}
	if s.DraftContent != "" {
		d.FinalContent = s.DraftContent + "\n\n[Content review incomplete]"
	}
	return d
}

// finalize reconciles the terminal content, guarantees hashtags, and
// sets the terminal status. It is the only stage whose failure marks
// the whole run failed.
func (g *Generator) finalize(_ context.Context, s State) (Delta, error) {
	final := s.FinalContent
	if strings.TrimSpace(final) == "" {
		final = s.DraftContent
	}
	if strings.TrimSpace(final) == "" {
		return Delta{}, fmt.Errorf("no content generated in workflow")
	}

	hashtags := s.Hashtags
	if len(hashtags) == 0 {
		hashtags = FallbackHashtags(s.Topic)
	}

	return Delta{
		FinalContent: final,
		Hashtags:     hashtags,
		Status:       StatusCompleted,
	}, nil
}

func finalizeFallback(_ State, _ error) Delta {
	return Delta{Status: StatusFailed}
}
