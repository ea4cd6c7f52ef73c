package pipeline

import (
	"fmt"
	"strings"
)

// QualityConfig tunes the deterministic quality gate applied by the
// review stage before accepting a rewrite.
type QualityConfig struct {
	// Threshold is the minimum fraction of checks that must pass.
	// With four checks, 0.6 means at least three must pass.
	Threshold float64

	// MinLength and MaxLength bound acceptable content size in characters.
	MinLength int
	MaxLength int
}

// DefaultQualityConfig returns the standard gate configuration.
func DefaultQualityConfig() QualityConfig {
	return QualityConfig{
		Threshold: 0.6,
		MinLength: 100,
		MaxLength: 2000,
	}
}

// QualityReport is the outcome of scoring a piece of candidate content.
type QualityReport struct {
	HasCompanyReference  bool
	HasEngagementElement bool
	AppropriateLength    bool
	HasHashtags          bool

	Score      float64
	Acceptable bool
	Feedback   string
}

var (
	companyReferenceTokens = []string{"we", "our", "company", "team"}
	engagementTokens       = []string{"?", "comment", "share", "thoughts"}
)

// Evaluate scores content against four heuristic checks: a company or
// first-person-plural reference, an engagement cue, a length within
// bounds, and the presence of at least one hashtag.
func (c QualityConfig) Evaluate(content string) QualityReport {
	lower := strings.ToLower(content)

	r := QualityReport{
		HasCompanyReference:  containsAny(lower, companyReferenceTokens),
		HasEngagementElement: containsAny(lower, engagementTokens),
		AppropriateLength:    len(content) >= c.MinLength && len(content) <= c.MaxLength,
		HasHashtags:          strings.Contains(content, "#"),
	}

	passed := 0
	for _, ok := range []bool{r.HasCompanyReference, r.HasEngagementElement, r.AppropriateLength, r.HasHashtags} {
		if ok {
			passed++
		}
	}
	r.Score = float64(passed) / 4
	r.Acceptable = r.Score >= c.Threshold
	r.Feedback = fmt.Sprintf("Quality score: %.0f%%. Checks passed: %d/4", r.Score*100, passed)
	return r
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
