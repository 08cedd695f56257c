package media

import (
	"fmt"
	"math"

	"mockview/internal/model"
)

// EmotionSample is one classified frame: the primary label and its
// confidence on a 0-100 scale.
type EmotionSample struct {
	Label      string
	Confidence float64
}

// emotionContexts maps a dominant label to the phrase appended to the
// report description.
var emotionContexts = map[string]string{
	"happy":     "Subject appears positive and engaged.",
	"sad":       "Subject may be experiencing difficulty or stress.",
	"angry":     "Subject shows signs of frustration or intensity.",
	"surprised": "Subject appears alert and reactive.",
	"fear":      "Subject may be experiencing anxiety.",
	"disgust":   "Subject shows signs of discomfort.",
	"calm":      "Subject appears relaxed and composed.",
	"neutral":   "Subject maintains a steady demeanor.",
}

// Aggregate reduces per-frame samples to a dominant emotion, an average
// confidence and a frequency distribution. Ties on the dominant label break
// in favor of the first label seen.
func Aggregate(samples []EmotionSample) model.EmotionSummary {
	if len(samples) == 0 {
		return model.EmotionSummary{
			PrimaryEmotion: "neutral",
			Confidence:     0,
			Emotions:       []model.EmotionScore{{Label: "neutral", Score: 1.0}},
			Description:    "No emotion data captured from video frames",
		}
	}

	counts := make(map[string]int)
	var order []string
	var totalConfidence float64

	for _, sample := range samples {
		if _, seen := counts[sample.Label]; !seen {
			order = append(order, sample.Label)
		}
		counts[sample.Label]++
		totalConfidence += sample.Confidence
	}

	dominant := order[0]
	for _, label := range order[1:] {
		if counts[label] > counts[dominant] {
			dominant = label
		}
	}

	avgConfidence := totalConfidence / float64(len(samples))

	distribution := make([]model.EmotionScore, 0, len(order))
	for _, label := range order {
		distribution = append(distribution, model.EmotionScore{
			Label: label,
			Score: math.Round(float64(counts[label])/float64(len(samples))*100) / 100,
		})
	}

	return model.EmotionSummary{
		PrimaryEmotion: dominant,
		Confidence:     math.Round(avgConfidence*100) / 100,
		Emotions:       distribution,
		Description:    describeEmotion(dominant, avgConfidence, counts[dominant], len(samples)),
	}
}

func describeEmotion(dominant string, confidence float64, dominantCount, total int) string {
	percentage := float64(dominantCount) / float64(total) * 100
	description := fmt.Sprintf("Primary emotion: %s (%.1f%% of frames). ", dominant, percentage)

	switch {
	case confidence > 80:
		description += "High confidence in detection. "
	case confidence > 60:
		description += "Moderate confidence in detection. "
	default:
		description += "Low confidence - results may vary. "
	}

	if context, ok := emotionContexts[dominant]; ok {
		description += context
	} else {
		description += "Subject's emotional state is unclear."
	}
	return description
}
