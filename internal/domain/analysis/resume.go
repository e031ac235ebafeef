package analysis

import "strings"

// resumeKeywords are the indicators used to decide whether extracted text
// plausibly came from a resume.
var resumeKeywords = []string{
	"experience",
	"education",
	"skills",
	"projects",
	"contact",
	"summary",
	"career",
	"professional",
	"work",
}

// LooksLikeResume reports whether the text contains at least one
// resume-indicative keyword. Empty or whitespace-only text never matches.
func LooksLikeResume(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}
	for _, kw := range resumeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
