package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// DefaultImageSize is a portrait size close to the 3:4 cover ratio.
const DefaultImageSize = "1024x1536"

// ErrEmptyResponse is returned when the model answers with no usable content.
var ErrEmptyResponse = errors.New("empty response from model")

// Client is a client for an OpenAI-compatible generative API.
// Text and JSON generation use Model, cover images use ImageModel.
type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	ImageModel string
	client     *openai.Client
}

// NewClient creates a new LLM client. baseURL is the server root without the
// /v1 suffix.
func NewClient(baseURL, apiKey, model, imageModel string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = strings.TrimRight(baseURL, "/") + "/v1"
	}
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		ImageModel: imageModel,
		client:     openai.NewClientWithConfig(config),
	}
}

// GenerateJSON sends prompt, and optionally a base64 PNG, to the model in
// JSON mode and decodes the reply into out.
func (c *Client) GenerateJSON(ctx context.Context, prompt, imageBase64 string, out any) error {
	msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if imageBase64 != "" {
		msg.MultiContent = []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: prompt},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    "data:image/png;base64," + imageBase64,
					Detail: openai.ImageURLDetailAuto,
				},
			},
		}
	} else {
		msg.Content = prompt
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.Model,
		Messages: []openai.ChatCompletionMessage{msg},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return fmt.Errorf("no choices returned: %w", ErrEmptyResponse)
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)
	if content == "" {
		return ErrEmptyResponse
	}

	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("failed to decode model output: %w", err)
	}
	return nil
}

// GenerateImage generates a single image for prompt and returns it base64 encoded.
func (c *Client) GenerateImage(ctx context.Context, prompt, size string) (string, error) {
	if size == "" {
		size = DefaultImageSize
	}

	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.ImageModel,
		N:              1,
		Size:           size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate image: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return "", fmt.Errorf("no image returned: %w", ErrEmptyResponse)
	}
	return resp.Data[0].B64JSON, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence some models add
// even in JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
