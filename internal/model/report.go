package model

import "time"

type VideoMetrics struct {
	Brightness float64 `json:"brightness" bson:"brightness"`
	Movement   float64 `json:"movement" bson:"movement"`
}

type AudioMetrics struct {
	Volume          float64 `json:"volume" bson:"volume"`
	BackgroundNoise float64 `json:"backgroundNoise" bson:"backgroundNoise"`
	SpeechClarity   float64 `json:"speechClarity" bson:"speechClarity"`
}

// EmotionScore is one label of the aggregated emotion distribution.
type EmotionScore struct {
	Label string  `json:"label" bson:"label"`
	Score float64 `json:"score" bson:"score"`
}

type EmotionSummary struct {
	PrimaryEmotion string         `json:"primaryEmotion" bson:"primaryEmotion"`
	Confidence     float64        `json:"confidence" bson:"confidence"`
	Emotions       []EmotionScore `json:"emotions" bson:"emotions"`
	Description    string         `json:"description" bson:"description"`
}

// AnalysisReport is derived from a session on demand and cached, never
// treated as a source of truth.
type AnalysisReport struct {
	SessionID       string         `json:"sessionId" bson:"sessionId"`
	ClarityScore    float64        `json:"clarityScore" bson:"clarityScore"`
	SentimentScore  float64        `json:"sentimentScore" bson:"sentimentScore"`
	ResponseLength  int            `json:"responseLength" bson:"responseLength"`
	UniqueWordRatio float64        `json:"uniqueWordRatio" bson:"uniqueWordRatio"`
	VideoMetrics    VideoMetrics   `json:"videoMetrics" bson:"videoMetrics"`
	AudioMetrics    AudioMetrics   `json:"audioMetrics" bson:"audioMetrics"`
	EmotionSummary  EmotionSummary `json:"emotionAnalysis" bson:"emotionAnalysis"`
	OverallScore    float64        `json:"overallScore" bson:"overallScore"`
	OverallRating   string         `json:"overallRating" bson:"overallRating"`
	GeneratedAt     time.Time      `json:"generatedAt" bson:"generatedAt"`
}
