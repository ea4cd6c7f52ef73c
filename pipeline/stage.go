package pipeline

import (
	"context"
	"time"
)

// Stage names, recorded in run metadata in execution order.
const (
	stageResearch    = "research"
	stageDraft       = "draft"
	stageImagePrompt = "image_prompt"
	stageReview      = "review"
	stageFinalize    = "finalize"
)

// stage is one unit of the pipeline. run transforms the current state
// into a partial update; fallback converts a run failure into a
// degraded partial update so execution can continue.
type stage struct {
	name     string
	run      func(ctx context.Context, s State) (Delta, error)
	fallback func(s State, err error) Delta
}

// execute runs all stages in fixed order, merging each partial update
// into the state before the next stage starts. A stage failure is
// absorbed at the stage boundary via its fallback; it never aborts the
// run.
func (g *Generator) execute(ctx context.Context, state State) State {
	for _, st := range g.stages() {
		stageCtx := ctx
		if g.stageTimeout > 0 {
			var cancel context.CancelFunc
			stageCtx, cancel = context.WithTimeout(ctx, g.stageTimeout)
			defer cancel()
		}

		start := time.Now()
		delta, err := st.run(stageCtx, state)
		if err != nil {
			g.logger.Error("stage failed, applying fallback",
				"stage", st.name,
				"topic", state.Topic,
				"error", err)
			delta = st.fallback(state, err)
			if delta.Error == "" {
				delta.Error = err.Error()
			}
		}

		state.apply(st.name, delta)
		g.logger.Debug("stage complete",
			"stage", st.name,
			"status", state.Status,
			"duration", time.Since(start))
	}
	return state
}

func (g *Generator) stages() []stage {
	return []stage{
		{name: stageResearch, run: g.research, fallback: researchFallback},
		{name: stageDraft, run: g.draft, fallback: draftFallback},
		{name: stageImagePrompt, run: g.imagePrompt, fallback: imagePromptFallback},
		{name: stageReview, run: g.review, fallback: reviewFallback},
		{name: stageFinalize, run: g.finalize, fallback: finalizeFallback},
	}
}
