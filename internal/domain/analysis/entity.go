package analysis

import (
	"time"
)

// AnalysisID identifier type. IDs are unix-millisecond timestamps and their
// order matches creation order within a process lifetime.
type AnalysisID int64

// Sub-criterion names for text submissions.
const (
	CriterionClarity         = "clarity"
	CriterionGrammar         = "grammar"
	CriterionProfessionalism = "professionalism"
)

// Sub-criterion names for image submissions.
const (
	CriterionVisualQuality = "visual_quality"
	CriterionReadability   = "readability"
)

// Aggregate Root: Record is the stored result of one scoring request.
// Records are immutable once created.
type Record struct {
	ID              AnalysisID     `json:"id"`
	CreatedDate     time.Time      `json:"created_date"`
	OverallScore    int            `json:"overall_score"`
	DetailedScores  map[string]int `json:"detailed_scores"`
	Recommendations []string       `json:"recommendations"`
	Feedback        any            `json:"feedback"`
}

// Result is the normalized output of a provider adapter. Provider-specific
// field names never leak past this type.
type Result struct {
	Overall         int
	Detailed        map[string]int
	Recommendations []string
	Feedback        any
}

// Clamp forces the overall score and every detailed score into [0,100].
func (r *Result) Clamp() {
	r.Overall = clampScore(r.Overall)
	for k, v := range r.Detailed {
		r.Detailed[k] = clampScore(v)
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
