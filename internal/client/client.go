package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/nexthire/resume-analyzer/internal/domain/analysis"
)

// Client talks to the scoring API the way the web frontend does.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// UploadResponse is the reference returned for one stored file.
type UploadResponse struct {
	FileURL  string `json:"file_url"`
	Filename string `json:"filename"`
	MimeType string `json:"mimetype"`
}

type extractResponse struct {
	Status string `json:"status"`
	Output struct {
		Content string `json:"content"`
	} `json:"output"`
}

type apiError struct {
	Message string `json:"error"`
	Details string `json:"details"`
}

func (e *apiError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// Upload sends one file to POST /api/upload and returns its reference.
func (c *Client) Upload(ctx context.Context, filename, contentType string, data []byte) (*UploadResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out UploadResponse
	if err := c.do(ctx, http.MethodPost, "/api/upload", mw.FormDataContentType(), &buf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Extract asks the server for the text content of an uploaded file.
func (c *Client) Extract(ctx context.Context, fileURL string) (string, error) {
	body, err := json.Marshal(map[string]string{"file_url": fileURL})
	if err != nil {
		return "", err
	}
	var out extractResponse
	if err := c.do(ctx, http.MethodPost, "/api/extract", "application/json", bytes.NewReader(body), &out); err != nil {
		return "", err
	}
	if out.Status != "success" {
		return "", fmt.Errorf("extraction failed with status %q", out.Status)
	}
	return out.Output.Content, nil
}

// Invoke submits a text prompt for scoring.
func (c *Client) Invoke(ctx context.Context, prompt string) (*analysis.Record, error) {
	body, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return nil, err
	}
	var rec analysis.Record
	if err := c.do(ctx, http.MethodPost, "/api/invoke-llm", "application/json", bytes.NewReader(body), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// InvokeFile submits raw file bytes for server-side image scoring.
func (c *Client) InvokeFile(ctx context.Context, filename, contentType string, data []byte) (*analysis.Record, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename=%q`, filename)}
	hdr["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var rec analysis.Record
	if err := c.do(ctx, http.MethodPost, "/api/invoke-llm", mw.FormDataContentType(), &buf, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// History fetches all past analyses, newest first.
func (c *Client) History(ctx context.Context) ([]*analysis.Record, error) {
	var out []*analysis.Record
	if err := c.do(ctx, http.MethodGet, "/api/analyses", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return &apiErr
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return json.Unmarshal(raw, out)
}
