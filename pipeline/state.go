package pipeline

import "fmt"

// Style selects the writing voice for generated content.
type Style string

const (
	StyleProfessional  Style = "professional"
	StyleCasual        Style = "casual"
	StyleInspirational Style = "inspirational"
	StyleTechnical     Style = "technical"
	StyleStorytelling  Style = "storytelling"
)

// Length selects the target length band for generated content.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// Status values recorded on the generation state. Each stage writes the
// status of its own outcome, so the state's status always describes the
// most recently completed stage.
const (
	StatusStarted              = "started"
	StatusResearched           = "researched"
	StatusResearchFailed       = "research_failed"
	StatusDraftGenerated       = "draft_generated"
	StatusDraftFailed          = "draft_failed"
	StatusImagePromptGenerated = "image_prompt_generated"
	StatusImagePromptFallback  = "image_prompt_fallback"
	StatusContentReviewed      = "content_reviewed"
	StatusReviewFallback       = "review_fallback"
	StatusReviewFailed         = "review_failed"
	StatusCompleted            = "completed"
	StatusFailed               = "failed"
)

// State is the shared record threaded through a single pipeline run.
// Stages accumulate fields into it as they execute. A State is owned by
// exactly one run and is never shared between concurrent runs.
type State struct {
	// Immutable inputs, set once at run start.
	CompanyInfo    string
	Topic          string
	Style          Style
	TargetAudience string
	ContentLength  Length

	// Accumulated stage outputs.
	ResearchNotes string
	DraftContent  string
	Hashtags      []string
	ImagePrompt   string
	FinalContent  string
	ReviewNotes   string

	// Run bookkeeping.
	Status       string
	Error        string
	WorkflowStep string
	Steps        []string
}

// Delta is the partial update a stage returns. Zero-valued fields are
// left untouched during merge; a stage that needs to clear a field
// replaces it with an explanatory value instead.
type Delta struct {
	ResearchNotes string
	DraftContent  string
	Hashtags      []string
	ImagePrompt   string
	FinalContent  string
	ReviewNotes   string
	Status        string
	Error         string
}

// apply merges a stage's partial update into the state and records the
// stage as executed.
func (s *State) apply(stageName string, d Delta) {
	if d.ResearchNotes != "" {
		s.ResearchNotes = d.ResearchNotes
	}
	if d.DraftContent != "" {
		s.DraftContent = d.DraftContent
	}
	if d.Hashtags != nil {
		s.Hashtags = d.Hashtags
	}
	if d.ImagePrompt != "" {
		s.ImagePrompt = d.ImagePrompt
	}
	if d.FinalContent != "" {
		s.FinalContent = d.FinalContent
	}
	if d.ReviewNotes != "" {
		s.ReviewNotes = d.ReviewNotes
	}
	if d.Status != "" {
		s.Status = d.Status
	}
	if d.Error != "" {
		s.Error = d.Error
	}
	s.WorkflowStep = stageName
	s.Steps = append(s.Steps, stageName)
}

// ValidStyles lists the accepted content styles.
func ValidStyles() []Style {
	return []Style{StyleProfessional, StyleCasual, StyleInspirational, StyleTechnical, StyleStorytelling}
}

// ValidLengths lists the accepted content length bands.
func ValidLengths() []Length {
	return []Length{LengthShort, LengthMedium, LengthLong}
}

func (s Style) validate() error {
	for _, v := range ValidStyles() {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("invalid style %q", s)
}

func (l Length) validate() error {
	for _, v := range ValidLengths() {
		if l == v {
			return nil
		}
	}
	return fmt.Errorf("invalid content length %q", l)
}
