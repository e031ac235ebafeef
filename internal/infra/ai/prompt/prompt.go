package prompt

import (
	"fmt"
	"strings"
)

// Analysis types selectable by clients. Unknown types fall back to quality.
const (
	TypeQuality         = "quality"
	TypeSentiment       = "sentiment"
	TypeClarity         = "clarity"
	TypeProfessionalism = "professionalism"
	TypeCreativity      = "creativity"
	TypeTechnical       = "technical"
)

var taskDescriptions = map[string]string{
	TypeQuality:         "Analyze the overall quality of this content, including structure, completeness, and impact.",
	TypeSentiment:       "Perform a sentiment analysis of this content, assessing the tone it conveys to a reader.",
	TypeClarity:         "Evaluate the clarity and readability of this content, including organization and wording.",
	TypeProfessionalism: "Assess the professionalism of this content, including language, formatting, and presentation.",
	TypeCreativity:      "Evaluate the creativity and originality of this content and how it stands out.",
	TypeTechnical:       "Analyze the technical accuracy and depth of this content, including terminology and specifics.",
}

// GetSystemPrompt provides strict directions and schema for JSON output from
// the generative strategy.
func GetSystemPrompt(criteria []string) string {
	fields := make([]string, 0, len(criteria))
	for _, c := range criteria {
		fields = append(fields, fmt.Sprintf("%q: <integer 0-100>", c))
	}
	return fmt.Sprintf(`You are an expert resume reviewer. You must produce one valid JSON object only (no markdown, no commentary). Do not include code fences.

Requirements:
- Output must be a single JSON object.
- Every score is an integer from 0 to 100.
- recommendations is an array of 1 to 5 short, actionable strings.
- feedback is one paragraph explaining strengths and weaknesses.

Schema:
{
  "overall": <integer 0-100>,
  %s,
  "recommendations": ["<string>"],
  "feedback": "<string>"
}`, strings.Join(fields, ",\n  "))
}

// GetUserPrompt builds the user message around the submitted content.
func GetUserPrompt(content string) string {
	return fmt.Sprintf("Score the following resume content and respond with the JSON per schema.\n\n%s", content)
}

// TaskDescription returns the instruction text for an analysis type.
func TaskDescription(analysisType string) string {
	if d, ok := taskDescriptions[analysisType]; ok {
		return d
	}
	return taskDescriptions[TypeQuality]
}

// BuildAnalysisPrompt composes the category task description with the
// delimited content, matching what clients send to the scoring endpoint.
func BuildAnalysisPrompt(analysisType, content string) string {
	return fmt.Sprintf(`%s

Content to analyze:
"""
%s
"""

Provide a comprehensive analysis with:
1. An overall score from 0-100
2. Detailed breakdown scores for relevant sub-criteria (each 0-100)
3. Detailed feedback explaining the strengths and weaknesses
4. 3-5 specific, actionable recommendations for improvement
`, TaskDescription(analysisType), content)
}

// WrapURL turns a URL submission into a textual hint for the generative
// strategy. The URL content itself is not fetched.
func WrapURL(url string) string {
	return fmt.Sprintf("Please analyze the content from this URL: %s", url)
}
