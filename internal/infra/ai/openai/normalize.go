package openai

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/nexthire/resume-analyzer/internal/domain/analysis"
)

// Fallback scores used when the model reply is not valid JSON. The user
// experience never fails over a provider formatting glitch.
var fallbackScores = map[string]int{
	"overall":                         75,
	analysis.CriterionClarity:         80,
	analysis.CriterionGrammar:         70,
	analysis.CriterionProfessionalism: 75,
	analysis.CriterionVisualQuality:   80,
	analysis.CriterionReadability:     70,
}

var fallbackRecommendations = []string{
	"Add measurable achievements to strengthen your resume.",
	"Review grammar and formatting for consistency.",
}

// normalize parses the model reply into a Result. Malformed JSON is absorbed
// into the fixed fallback with the raw reply kept as feedback.
func normalize(raw string, criteria []string) *analysis.Result {
	parsed, ok := parseReply(raw)
	if !ok {
		return fallbackResult(raw, criteria)
	}

	res := &analysis.Result{
		Overall:  scoreField(parsed, "overall"),
		Detailed: make(map[string]int, len(criteria)),
	}
	for _, c := range criteria {
		res.Detailed[c] = scoreField(parsed, c)
	}

	if recs, ok := parsed["recommendations"].([]any); ok {
		for _, r := range recs {
			if s, ok := r.(string); ok && strings.TrimSpace(s) != "" {
				res.Recommendations = append(res.Recommendations, s)
			}
			if len(res.Recommendations) == 5 {
				break
			}
		}
	}
	if len(res.Recommendations) == 0 {
		res.Recommendations = append(res.Recommendations, fallbackRecommendations[0])
	}

	if fb, ok := parsed["feedback"].(string); ok && fb != "" {
		res.Feedback = fb
	} else {
		res.Feedback = raw
	}

	res.Clamp()
	return res
}

// parseReply decodes the reply as a JSON object, tolerating markdown code
// fences some models wrap around their output.
func parseReply(raw string) (map[string]any, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, false
	}
	return parsed, true
}

func scoreField(parsed map[string]any, key string) int {
	switch v := parsed[key].(type) {
	case float64:
		return int(math.Round(v))
	case string:
		// Models occasionally quote numbers.
		var f float64
		if err := json.Unmarshal([]byte(strings.TrimSpace(v)), &f); err == nil {
			return int(math.Round(f))
		}
	}
	return fallbackScores[key]
}

func fallbackResult(raw string, criteria []string) *analysis.Result {
	res := &analysis.Result{
		Overall:         fallbackScores["overall"],
		Detailed:        make(map[string]int, len(criteria)),
		Recommendations: append([]string(nil), fallbackRecommendations...),
		Feedback:        raw,
	}
	for _, c := range criteria {
		res.Detailed[c] = fallbackScores[c]
	}
	return res
}
