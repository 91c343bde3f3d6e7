// Package verdict turns the vision model's untrusted reply text into a
// typed Verdict and derives the recommendation from score and red flags.
package verdict

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/findmymarket/screening-agent/internal/models"
)

// ParseFailureFlag is the single red flag carried by the fallback verdict.
const ParseFailureFlag = "response could not be parsed"

const parseFailureReasoning = "The model reply could not be parsed. Manual review is required."

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// Parse extracts the JSON span from a reply that may contain surrounding
// prose or markdown fencing, and unmarshals it into a Verdict. The second
// return value reports whether parsing succeeded; when it is false the
// returned verdict is the fixed fallback, never a partial parse. A parse
// failure must route the request to human review, not crash it.
func Parse(raw string) (models.Verdict, bool) {
	span := strings.TrimSpace(extractJSON(raw))

	// Only a JSON object can carry a verdict. Bare scalars like "null"
	// would unmarshal into a zero-value Verdict and score as a reject.
	if span == "" || span[0] != '{' {
		return Fallback(), false
	}

	var v models.Verdict
	if err := json.Unmarshal([]byte(span), &v); err != nil {
		return Fallback(), false
	}

	if v.RedFlags == nil {
		v.RedFlags = []string{}
	}

	return v, true
}

// Fallback is the deterministic verdict substituted when the reply cannot
// be parsed: unidentifiable, zero score, low confidence, routed to review.
func Fallback() models.Verdict {
	return models.Verdict{
		ImageType:      models.ImageTypeUnidentifiable,
		RelevanceScore: 0,
		Confidence:     models.ConfidenceLow,
		RedFlags:       []string{ParseFailureFlag},
		Recommendation: models.RecommendReview,
		Reasoning:      parseFailureReasoning,
	}
}

// extractJSON prefers a ```json fenced block, then the first balanced
// brace span, then the raw text as-is.
func extractJSON(raw string) string {
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if span, ok := braceSpan(raw); ok {
		return span
	}
	return strings.TrimSpace(raw)
}

// braceSpan returns the first balanced {...} span in s. Depth counting
// skips braces inside JSON string literals.
func braceSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
