package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/nexthire/resume-analyzer/internal/domain/analysis"
	"github.com/nexthire/resume-analyzer/internal/infra/ai/prompt"
)

const maxTokens = 2048

// Sub-criteria requested from the model per submission kind.
var (
	textCriteria  = []string{analysis.CriterionClarity, analysis.CriterionGrammar, analysis.CriterionProfessionalism}
	imageCriteria = []string{analysis.CriterionVisualQuality, analysis.CriterionReadability, analysis.CriterionProfessionalism}
)

// Client scores content through a generative chat/vision model instructed to
// return structured JSON scores.
type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

// ScoreText asks the model for JSON scores over the prompt text. Transport
// and auth errors propagate; a malformed reply body does not.
func (c *Client) ScoreText(ctx context.Context, promptText string) (*analysis.Result, error) {
	raw, err := c.complete(ctx, textCriteria, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt.GetUserPrompt(promptText),
	})
	if err != nil {
		return nil, err
	}
	return normalize(raw, textCriteria), nil
}

// ScoreImage sends the image inline as a data URL to the vision model.
func (c *Client) ScoreImage(ctx context.Context, data []byte, contentType string) (*analysis.Result, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))

	raw, err := c.complete(ctx, imageCriteria, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeText,
				Text: prompt.GetUserPrompt("The resume is provided as the attached image."),
			},
			{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	return normalize(raw, imageCriteria), nil
}

func (c *Client) complete(ctx context.Context, criteria []string, user openai.ChatCompletionMessage) (string, error) {
	model := c.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt(criteria)},
			user,
		},
	}
	// Reasoning models (o1/o3/o4/gpt-5*) take MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
