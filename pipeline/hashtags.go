package pipeline

import (
	"regexp"
	"strings"
)

const maxHashtags = 5

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// fallbackBaseHashtags is always included when hashtag extraction came
// up empty and the finalize stage has to synthesize a set.
var fallbackBaseHashtags = []string{"LinkedIn", "Professional", "Business"}

// ExtractHashtags scans content for #word tokens and returns the tags
// without the leading '#', deduplicated by first occurrence and capped
// at five. Order follows first appearance in the content.
func ExtractHashtags(content string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, maxHashtags)
	for _, m := range matches {
		tag := m[1]
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
		if len(tags) == maxHashtags {
			break
		}
	}
	return tags
}

// FallbackHashtags builds a deterministic hashtag set from the topic:
// three fixed base tags plus up to three capitalized topic keywords.
func FallbackHashtags(topic string) []string {
	tags := make([]string, 0, len(fallbackBaseHashtags)+3)
	tags = append(tags, fallbackBaseHashtags...)

	words := strings.Fields(strings.ToLower(topic))
	for i, word := range words {
		if i == 3 {
			break
		}
		tags = append(tags, capitalize(word))
	}
	return tags
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
