// Package genai renders generation prompts and talks to the configured
// chat-completions endpoint that produces raw interview question text.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mockview/internal/config"
)

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	cfg    *config.AIConfig
	client *http.Client
	logger *zap.Logger
}

func NewClient(cfg *config.AIConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.GenerationTimeoutMS) * time.Millisecond,
		},
		logger: logger,
	}
}

// Generate submits one prompt and returns the raw generated text. The caller
// is responsible for parsing it into QA pairs.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model": c.cfg.GenerationModel,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.GenerationURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.GenerationKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.GenerationKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("generation endpoint returned non-200",
			zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("generation endpoint returned status %d", resp.StatusCode)
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from generation endpoint")
	}

	return chatResp.Choices[0].Message.Content, nil
}
