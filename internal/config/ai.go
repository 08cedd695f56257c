package config

import "os"

// AIConfig holds configuration for the three external AI collaborators:
// the text-generation endpoint, the sentence-similarity endpoint and the
// facial-emotion classifier.
type AIConfig struct {
	// GenerationURL is an OpenAI-compatible chat-completions endpoint.
	GenerationURL   string `json:"generationUrl"`
	GenerationModel string `json:"generationModel"`
	GenerationKey   string `json:"-"` // Never serialize

	// SimilarityURL accepts {"inputs":{"source_sentence","sentences"}} and
	// returns an array of scores in [0,1].
	SimilarityURL string `json:"similarityUrl"`

	// EmotionURL accepts an image payload and returns [{label, score}]
	// sorted by confidence descending.
	EmotionURL string `json:"emotionUrl"`

	HFToken string `json:"-"` // Never serialize

	GenerationTimeoutMS int `json:"generationTimeoutMs"`
	SimilarityTimeoutMS int `json:"similarityTimeoutMs"`
	EmotionTimeoutMS    int `json:"emotionTimeoutMs"`
}

// DefaultAIConfig returns the default AI configuration.
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		GenerationURL:   getEnvOrDefault("GENERATION_URL", "https://api.openai.com/v1/chat/completions"),
		GenerationModel: getEnvOrDefault("GENERATION_MODEL", "gpt-4o-mini"),
		GenerationKey:   os.Getenv("GENERATION_API_KEY"),
		SimilarityURL:   getEnvOrDefault("SIMILARITY_URL", "https://api-inference.huggingface.co/models/sentence-transformers/all-MiniLM-L6-v2"),
		EmotionURL:      getEnvOrDefault("EMOTION_URL", "https://api-inference.huggingface.co/models/dima806/facial_emotions_image_detection"),
		HFToken:         os.Getenv("HF_API_TOKEN"),

		GenerationTimeoutMS: 60000,
		SimilarityTimeoutMS: 30000, // similarity calls degrade to the local heuristic past this
		EmotionTimeoutMS:    10000,
	}
}

// GenerationEnabled reports whether the generation endpoint is configured.
func (c *AIConfig) GenerationEnabled() bool {
	return c.GenerationKey != ""
}

// SimilarityEnabled reports whether the similarity endpoint is configured.
func (c *AIConfig) SimilarityEnabled() bool {
	return c.HFToken != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
