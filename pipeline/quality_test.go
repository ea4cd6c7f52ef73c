package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// passingContent satisfies all four checks: company reference,
// engagement cue, length in bounds, and a hashtag.
const passingContent = "At Acme Corp, we build fencing that keeps warehouse teams safe. " +
	"Our approach starts with listening to the people on the floor. " +
	"What does your facility do to protect its workers? #WarehouseSafety"

func TestQualityEvaluateAllChecksPass(t *testing.T) {
	r := DefaultQualityConfig().Evaluate(passingContent)
	assert.True(t, r.HasCompanyReference)
	assert.True(t, r.HasEngagementElement)
	assert.True(t, r.AppropriateLength)
	assert.True(t, r.HasHashtags)
	assert.Equal(t, 1.0, r.Score)
	assert.True(t, r.Acceptable)
}

func TestQualityEvaluateThreeOfFourPasses(t *testing.T) {
	// No hashtag: 3/4 = 0.75, above the 0.6 threshold.
	content := strings.ReplaceAll(passingContent, "#WarehouseSafety", "Stay safe out there.")
	r := DefaultQualityConfig().Evaluate(content)
	assert.False(t, r.HasHashtags)
	assert.Equal(t, 0.75, r.Score)
	assert.True(t, r.Acceptable)
}

func TestQualityEvaluateTwoOfFourFails(t *testing.T) {
	// Too short and no hashtag: 2/4 = 0.5, below threshold.
	r := DefaultQualityConfig().Evaluate("We did a thing. Thoughts?")
	assert.Equal(t, 0.5, r.Score)
	assert.False(t, r.Acceptable)
}

func TestQualityEvaluateLengthBounds(t *testing.T) {
	cfg := DefaultQualityConfig()

	atMin := strings.Repeat("a", 100)
	assert.True(t, cfg.Evaluate(atMin).AppropriateLength)

	belowMin := strings.Repeat("a", 99)
	assert.False(t, cfg.Evaluate(belowMin).AppropriateLength)

	atMax := strings.Repeat("a", 2000)
	assert.True(t, cfg.Evaluate(atMax).AppropriateLength)

	aboveMax := strings.Repeat("a", 2001)
	assert.False(t, cfg.Evaluate(aboveMax).AppropriateLength)
}

func TestQualityEvaluateEmptyContent(t *testing.T) {
	r := DefaultQualityConfig().Evaluate("")
	assert.Equal(t, 0.0, r.Score)
	assert.False(t, r.Acceptable)
}

func TestQualityCustomThreshold(t *testing.T) {
	cfg := DefaultQualityConfig()
	cfg.Threshold = 0.5
	r := cfg.Evaluate("We did a thing. Thoughts?")
	assert.Equal(t, 0.5, r.Score)
	assert.True(t, r.Acceptable)
}
