package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexthire/resume-analyzer/internal/domain/analysis"
)

// fakeAPI records which endpoints the flow touched.
type fakeAPI struct {
	uploads     int
	extracts    int
	invokes     int
	fileInvokes int
	lastPrompt  string
	scoreResult map[string]any
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/upload", func(w http.ResponseWriter, r *http.Request) {
		f.uploads++
		_, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "No file uploaded"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"file_url": "http://example.test/uploads/abc",
			"filename": header.Filename,
			"mimetype": header.Header.Get("Content-Type"),
		})
	})
	mux.HandleFunc("/api/extract", func(w http.ResponseWriter, r *http.Request) {
		f.extracts++
		var body struct {
			FileURL string `json:"file_url"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"output": map[string]string{"content": fmt.Sprintf("Extracted content from %s", body.FileURL)},
		})
	})
	mux.HandleFunc("/api/invoke-llm", func(w http.ResponseWriter, r *http.Request) {
		f.invokes++
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			if _, _, err := r.FormFile("file"); err == nil {
				f.fileInvokes++
			}
			json.NewEncoder(w).Encode(f.scoreResult)
			return
		}
		var body struct {
			Prompt string `json:"prompt"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.lastPrompt = body.Prompt
		json.NewEncoder(w).Encode(f.scoreResult)
	})
	mux.HandleFunc("/api/analyses", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{f.scoreResult})
	})
	return mux
}

func defaultScore() map[string]any {
	return map[string]any{
		"id":              1,
		"created_date":    time.Now().UTC().Format(time.RFC3339),
		"overall_score":   85,
		"detailed_scores": map[string]int{"clarity": 85},
		"recommendations": []string{"Looks good"},
		"feedback":        "fine",
	}
}

func newFlow(t *testing.T, extractor analysis.TextExtractor) (*Flow, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{scoreResult: defaultScore()}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	return &Flow{Client: New(srv.URL, 5*time.Second), Extractor: extractor}, api
}

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) ExtractText(context.Context, []byte, string) (string, error) {
	return s.text, s.err
}

func TestTextSubmissionBuildsCompositePrompt(t *testing.T) {
	flow, api := newFlow(t, nil)

	rec, err := flow.Analyze(context.Background(), Input{
		Kind:         KindText,
		Content:      "Experienced software engineer",
		AnalysisType: "professionalism",
	})
	require.NoError(t, err)
	assert.Equal(t, 85, rec.OverallScore)

	assert.Equal(t, 1, api.invokes)
	assert.Contains(t, api.lastPrompt, "Assess the professionalism")
	assert.Contains(t, api.lastPrompt, "\"\"\"\nExperienced software engineer\n\"\"\"")
}

func TestURLSubmissionWrapsAsHint(t *testing.T) {
	flow, api := newFlow(t, nil)

	_, err := flow.Analyze(context.Background(), Input{
		Kind:         KindURL,
		Content:      "https://example.com/cv.pdf",
		AnalysisType: "quality",
	})
	require.NoError(t, err)
	assert.Contains(t, api.lastPrompt, "Please analyze the content from this URL: https://example.com/cv.pdf")
}

func TestNonResumeImageShortCircuits(t *testing.T) {
	flow, api := newFlow(t, stubExtractor{text: "an invoice for office chairs"})

	rec, err := flow.Analyze(context.Background(), Input{
		Kind:         KindDocument,
		AnalysisType: "quality",
		Filename:     "photo.png",
		ContentType:  "image/png",
		Data:         []byte{0x89, 0x50},
	})
	require.NoError(t, err)

	// The scoring endpoint is never called for non-resume images.
	assert.Equal(t, 0, api.invokes)
	assert.Equal(t, 0, rec.OverallScore)
	require.Len(t, rec.Recommendations, 1)
	assert.Contains(t, rec.Feedback.(string), "does not look like a resume")

	// The synthetic record's id and timestamp come from the same instant.
	assert.Equal(t, rec.CreatedDate.UnixMilli(), int64(rec.ID))
}

func TestImageWithoutExtractorUsesServerScoring(t *testing.T) {
	flow, api := newFlow(t, nil)

	rec, err := flow.Analyze(context.Background(), Input{
		Kind:         KindDocument,
		AnalysisType: "quality",
		Filename:     "resume.png",
		ContentType:  "image/png",
		Data:         []byte{0x89, 0x50},
	})
	require.NoError(t, err)

	// No local OCR configured: the raw image goes to the server's image path.
	assert.Equal(t, 1, api.fileInvokes)
	assert.Equal(t, 85, rec.OverallScore)
}

func TestUnreadableImageShortCircuits(t *testing.T) {
	flow, api := newFlow(t, stubExtractor{text: "   "})

	rec, err := flow.Analyze(context.Background(), Input{
		Kind:        KindDocument,
		Filename:    "blank.png",
		ContentType: "image/png",
		Data:        []byte{0x89},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, api.invokes)
	assert.Equal(t, 0, rec.OverallScore)
}

func TestResumeImageProceedsWithExtractedText(t *testing.T) {
	flow, api := newFlow(t, stubExtractor{text: "Experience: Go developer. Education: CS."})

	rec, err := flow.Analyze(context.Background(), Input{
		Kind:         KindDocument,
		AnalysisType: "quality",
		Filename:     "resume.png",
		ContentType:  "image/png",
		Data:         []byte{0x89, 0x50},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, api.uploads)
	assert.Equal(t, 1, api.invokes)
	assert.Equal(t, 85, rec.OverallScore)
	assert.Contains(t, api.lastPrompt, "Experience: Go developer")
}

func TestDocumentUsesServerExtraction(t *testing.T) {
	flow, api := newFlow(t, nil)

	_, err := flow.Analyze(context.Background(), Input{
		Kind:         KindDocument,
		AnalysisType: "quality",
		Filename:     "resume.pdf",
		ContentType:  "application/pdf",
		Data:         []byte("%PDF-1.4"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, api.uploads)
	assert.Equal(t, 1, api.extracts)
	assert.Equal(t, 1, api.invokes)
	assert.Contains(t, api.lastPrompt, "Extracted content from http://example.test/uploads/abc")
}

func TestEmptyDocumentIsInputError(t *testing.T) {
	flow, _ := newFlow(t, nil)

	_, err := flow.Analyze(context.Background(), Input{Kind: KindDocument})
	require.ErrorIs(t, err, analysis.ErrNoInput)
}

func TestServerErrorSurfacesDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/invoke-llm") {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "AI request failed", "details": "quota exceeded"})
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	flow := &Flow{Client: New(srv.URL, 5*time.Second)}
	_, err := flow.Analyze(context.Background(), Input{Kind: KindText, Content: "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI request failed")
	assert.Contains(t, err.Error(), "quota exceeded")
}
