package pipeline

import "time"

// Metadata describes one generation run.
type Metadata struct {
	Topic         string    `json:"topic"`
	Style         Style     `json:"style"`
	ContentLength Length    `json:"content_length"`
	GeneratedAt   time.Time `json:"generated_at"`
	WorkflowSteps []string  `json:"workflow_steps"`
}

// Result is the immutable outcome of a pipeline run, assembled from the
// terminal state. Status is StatusCompleted for usable content
// (possibly degraded by stage fallbacks, recorded in Error) or
// StatusFailed when no stage produced any content.
type Result struct {
	FinalContent string   `json:"final_content"`
	DraftContent string   `json:"draft_content"`
	Hashtags     []string `json:"hashtags"`
	ImagePrompt  string   `json:"image_prompt,omitempty"`
	Status       string   `json:"status"`
	Error        string   `json:"error,omitempty"`
	Metadata     Metadata `json:"metadata"`
}

// Failed reports whether the run produced no usable content.
func (r *Result) Failed() bool {
	return r.Status == StatusFailed
}

// assemble folds a terminal state into a Result.
func assemble(s State) *Result {
	return &Result{
		FinalContent: s.FinalContent,
		DraftContent: s.DraftContent,
		Hashtags:     s.Hashtags,
		ImagePrompt:  s.ImagePrompt,
		Status:       s.Status,
		Error:        s.Error,
		Metadata: Metadata{
			Topic:         s.Topic,
			Style:         s.Style,
			ContentLength: s.ContentLength,
			GeneratedAt:   time.Now(),
			WorkflowSteps: s.Steps,
		},
	}
}
