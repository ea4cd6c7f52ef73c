package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHashtags(t *testing.T) {
	tags := ExtractHashtags("Big news for safety teams! #WarehouseSafety #Logistics #Safety")
	assert.Equal(t, []string{"WarehouseSafety", "Logistics", "Safety"}, tags)
}

func TestExtractHashtagsPreservesFirstOccurrenceOrder(t *testing.T) {
	tags := ExtractHashtags("#Zebra then #Alpha then #Zebra again and #Mango")
	assert.Equal(t, []string{"Zebra", "Alpha", "Mango"}, tags)
}

func TestExtractHashtagsCapsAtFive(t *testing.T) {
	tags := ExtractHashtags("#One #Two #Three #Four #Five #Six #Seven")
	assert.Equal(t, []string{"One", "Two", "Three", "Four", "Five"}, tags)
}

func TestExtractHashtagsNoneFound(t *testing.T) {
	assert.Nil(t, ExtractHashtags("no tags in this text at all"))
}

func TestExtractHashtagsIdempotent(t *testing.T) {
	content := "Launch day. #Product #Launch #Team #Product"
	first := ExtractHashtags(content)

	rendered := "#" + strings.Join(first, " #")
	second := ExtractHashtags(rendered)
	assert.Equal(t, first, second)
}

func TestFallbackHashtags(t *testing.T) {
	tags := FallbackHashtags("warehouse safety")
	assert.Equal(t, []string{"LinkedIn", "Professional", "Business", "Warehouse", "Safety"}, tags)
}

func TestFallbackHashtagsCapsTopicWords(t *testing.T) {
	tags := FallbackHashtags("one two three four five")
	assert.Len(t, tags, 6)
	assert.Equal(t, []string{"One", "Two", "Three"}, tags[3:])
}

func TestFallbackHashtagsEmptyTopicStillHasBase(t *testing.T) {
	tags := FallbackHashtags("")
	assert.GreaterOrEqual(t, len(tags), 3)
}
