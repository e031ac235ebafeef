package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/nexthire/resume-analyzer/internal/domain/analysis"
	"github.com/nexthire/resume-analyzer/internal/logger"
)

const (
	defaultBaseURL = "https://api-inference.huggingface.co/models"

	// Single-label classifiers used by the scoring contract.
	textModel  = "distilbert/distilbert-base-uncased-finetuned-sst-2-english"
	imageModel = "microsoft/dit-base-finetuned-rvlcdip"

	labelPositive = "POSITIVE"
)

// documentKeywords mark classifier labels accepted as resume-like documents.
var documentKeywords = []string{"document", "resume", "letter", "form"}

// Classification is the label/confidence pair returned by the inference API.
// It is echoed back to callers as record feedback.
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Client scores content through single-label HuggingFace classifiers and
// maps label+confidence into normalized results deterministically.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ScoreText runs sentiment classification over the prompt. A negative label
// or low confidence is a normal outcome, never an error.
func (c *Client) ScoreText(ctx context.Context, prompt string) (*analysis.Result, error) {
	payload, err := json.Marshal(map[string]string{"inputs": prompt})
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, c.baseURL+"/"+textModel, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("hf text api: %w", err)
	}

	// Sentiment replies are nested: one candidate list per input.
	var data [][]Classification
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("hf text api: decode response: %w", err)
	}
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, fmt.Errorf("hf text api: empty classification")
	}
	best := data[0][0]

	overall := int(math.Round(best.Score * 100))
	if best.Label != labelPositive {
		overall = int(math.Round((1 - best.Score) * 100))
	}

	rec := "Consider improving clarity, grammar, and presentation."
	if best.Label == labelPositive {
		rec = "Great resume! Keep it clear and professional."
	}

	res := &analysis.Result{
		Overall: overall,
		Detailed: map[string]int{
			analysis.CriterionClarity:         overall,
			analysis.CriterionGrammar:         overall,
			analysis.CriterionProfessionalism: overall,
		},
		Recommendations: []string{rec},
		Feedback:        best,
	}
	res.Clamp()
	return res, nil
}

// ScoreImage runs document-type classification over the raw bytes. Labels
// without a document-like keyword are scored zero with a single rejection
// recommendation.
func (c *Client) ScoreImage(ctx context.Context, data []byte, contentType string) (*analysis.Result, error) {
	body, err := c.post(ctx, c.baseURL+"/"+imageModel, "application/octet-stream", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("hf image api: %w", err)
	}

	var preds []Classification
	if err := json.Unmarshal(body, &preds); err != nil {
		return nil, fmt.Errorf("hf image api: decode response: %w", err)
	}
	if len(preds) == 0 {
		return nil, fmt.Errorf("hf image api: empty classification")
	}
	best := preds[0]
	best.Label = strings.ToLower(best.Label)

	resumeLike := false
	for _, kw := range documentKeywords {
		if strings.Contains(best.Label, kw) {
			resumeLike = true
			break
		}
	}

	overall := 0
	rec := "Uploaded image doesn't look like a resume. Please upload a proper resume file."
	if resumeLike {
		overall = int(math.Round(best.Score * 100))
		rec = fmt.Sprintf("Uploaded image classified as: %s. Ensure clarity and resolution.", best.Label)
	}

	res := &analysis.Result{
		Overall: overall,
		Detailed: map[string]int{
			analysis.CriterionVisualQuality:   overall,
			analysis.CriterionReadability:     overall,
			analysis.CriterionProfessionalism: overall,
		},
		Recommendations: []string{rec},
		Feedback:        best,
	}
	res.Clamp()
	return res, nil
}

func (c *Client) post(ctx context.Context, url, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body := logger.Truncate(strings.TrimSpace(string(raw)), 2000)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}
	return raw, nil
}
