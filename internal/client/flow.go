package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nexthire/resume-analyzer/internal/domain/analysis"
	"github.com/nexthire/resume-analyzer/internal/infra/ai/prompt"
)

// Submission kinds accepted by the analysis flow.
const (
	KindText     = "text"
	KindURL      = "url"
	KindDocument = "document"
)

// Input describes one user submission.
type Input struct {
	Kind         string
	Content      string // text body or URL
	AnalysisType string // one of the prompt analysis types

	// Document fields.
	Filename    string
	ContentType string
	Data        []byte
}

// Flow runs the full client analysis pipeline: optional upload and
// extraction, the resume-likeness short-circuit for images, composite prompt
// construction, and the scoring call.
type Flow struct {
	Client    *Client
	Extractor analysis.TextExtractor
}

// Analyze resolves the submission into a scored record.
func (f *Flow) Analyze(ctx context.Context, in Input) (*analysis.Record, error) {
	var content string

	switch in.Kind {
	case KindText:
		content = in.Content
	case KindURL:
		content = prompt.WrapURL(in.Content)
	case KindDocument:
		if len(in.Data) == 0 {
			return nil, analysis.ErrNoInput
		}
		stored, err := f.Client.Upload(ctx, in.Filename, in.ContentType, in.Data)
		if err != nil {
			return nil, fmt.Errorf("upload: %w", err)
		}

		if strings.HasPrefix(in.ContentType, "image/") {
			// Without a local extractor the server scores the raw image.
			if f.Extractor == nil {
				return f.Client.InvokeFile(ctx, in.Filename, in.ContentType, in.Data)
			}
			text, err := f.extractImageText(ctx, in)
			if err != nil {
				return nil, err
			}
			// Unreadable or non-resume images never reach the server.
			if !analysis.LooksLikeResume(text) {
				return zeroRecord(in.Filename), nil
			}
			content = text
		} else {
			text, err := f.Client.Extract(ctx, stored.FileURL)
			if err != nil {
				return nil, fmt.Errorf("extract: %w", err)
			}
			content = text
		}
	default:
		return nil, fmt.Errorf("unknown submission kind %q", in.Kind)
	}

	if strings.TrimSpace(content) == "" {
		return nil, analysis.ErrNoInput
	}

	return f.Client.Invoke(ctx, prompt.BuildAnalysisPrompt(in.AnalysisType, content))
}

func (f *Flow) extractImageText(ctx context.Context, in Input) (string, error) {
	text, err := f.Extractor.ExtractText(ctx, in.Data, in.ContentType)
	if err != nil {
		// Extraction failure is a zero-score outcome, not an error.
		return "", nil
	}
	return text, nil
}

// zeroRecord is the synthetic result for images that do not look like a
// resume. It is produced locally without a scoring call.
func zeroRecord(filename string) *analysis.Record {
	now := time.Now()
	return &analysis.Record{
		ID:           analysis.AnalysisID(now.UnixMilli()),
		CreatedDate:  now.UTC(),
		OverallScore: 0,
		DetailedScores: map[string]int{
			analysis.CriterionVisualQuality:   0,
			analysis.CriterionReadability:     0,
			analysis.CriterionProfessionalism: 0,
		},
		Recommendations: []string{"Upload a clear image of your resume."},
		Feedback: fmt.Sprintf(
			"Uploaded image %q does not look like a resume. Please upload a valid resume with readable text.",
			filename,
		),
	}
}
