// Package hf provides clients for the two Hugging Face inference endpoints
// the evaluation pipeline depends on: sentence similarity and facial-emotion
// classification.
package hf

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
	"mockview/internal/media"
)

// SimilarityClient scores candidate sentences against a source sentence.
// Implements the scorer's similarity dependency.
type SimilarityClient struct {
	url    string
	token  string
	client *http.Client
	logger *zap.Logger
}

func NewSimilarityClient(cfg *config.AIConfig, logger *zap.Logger) *SimilarityClient {
	return &SimilarityClient{
		url:   cfg.SimilarityURL,
		token: cfg.HFToken,
		client: &http.Client{
			Timeout: time.Duration(cfg.SimilarityTimeoutMS) * time.Millisecond,
		},
		logger: logger,
	}
}

// Similarity returns one score in [0,1] per candidate, in candidate order.
func (c *SimilarityClient) Similarity(ctx context.Context, source string, candidates []string) ([]float64, error) {
	reqBody := map[string]interface{}{
		"inputs": map[string]interface{}{
			"source_sentence": source,
			"sentences":       candidates,
		},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}
	body, err := c.post(ctx, c.url, "application/json", jsonBody)
	if err != nil {
		return nil, err
	}

	var scores []float64
	if err := json.Unmarshal(body, &scores); err != nil {
		return nil, fmt.Errorf("similarity response: %w", err)
	}
	if len(scores) != len(candidates) {
		return nil, fmt.Errorf("similarity response has %d scores for %d candidates", len(scores), len(candidates))
	}
	return scores, nil
}

// EmotionClassifier submits one JPEG frame and returns label/score entries
// sorted by confidence descending, as the endpoint emits them.
type EmotionClassifier struct {
	url    string
	token  string
	client *http.Client
	logger *zap.Logger
}

func NewEmotionClassifier(cfg *config.AIConfig, logger *zap.Logger) *EmotionClassifier {
	return &EmotionClassifier{
		url:   cfg.EmotionURL,
		token: cfg.HFToken,
		client: &http.Client{
			Timeout: time.Duration(cfg.EmotionTimeoutMS) * time.Millisecond,
		},
		logger: logger,
	}
}

func (c *EmotionClassifier) Classify(ctx context.Context, imageJPEG []byte) ([]media.Emotion, error) {
	body, err := c.post(ctx, c.url, "image/jpeg", imageJPEG)
	if err != nil {
		return nil, err
	}

	var emotions []media.Emotion
	if err := json.Unmarshal(body, &emotions); err != nil {
		return nil, fmt.Errorf("emotion response: %w", err)
	}
	return emotions, nil
}

func (c *SimilarityClient) post(ctx context.Context, url, contentType string, payload []byte) ([]byte, error) {
	return doPost(ctx, c.client, url, c.token, contentType, payload)
}

func (c *EmotionClassifier) post(ctx context.Context, url, contentType string, payload []byte) ([]byte, error) {
	return doPost(ctx, c.client, url, c.token, contentType, payload)
}

func doPost(ctx context.Context, client *http.Client, url, token, contentType string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference endpoint returned status %d", resp.StatusCode)
	}
	return body, nil
}
