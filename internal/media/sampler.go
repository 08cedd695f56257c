package media

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"mockview/internal/model"
)

const (
	// maxIterations bounds the sampling loop; with seekStep this covers
	// the first 30 seconds of a recording.
	maxIterations = 15
	seekStep      = 2 * time.Second

	// emotionEvery selects which iterations submit a frame to the
	// classifier (iterations 0, 3, 6, ...).
	emotionEvery = 3

	// noiseThreshold splits volume estimates into speech and background.
	noiseThreshold = 10.0

	// defaultTimeout is the hard wall-clock bound on a whole sampling
	// pass, independent of the iteration count.
	defaultTimeout = 15 * time.Second
)

// Result carries the per-recording metrics the session analyzer merges
// into its report. All numeric fields are always finite.
type Result struct {
	Video   model.VideoMetrics
	Audio   model.AudioMetrics
	Emotion model.EmotionSummary
}

// Sampler performs strict sequential sampling over one recording: a single
// iteration at a time, each awaiting its frame seek and any classifier
// round trip before the next begins.
type Sampler struct {
	opener     Opener
	classifier Classifier
	logger     *zap.Logger
	timeout    time.Duration
}

func NewSampler(opener Opener, classifier Classifier, logger *zap.Logger) *Sampler {
	return &Sampler{
		opener:     opener,
		classifier: classifier,
		logger:     logger,
		timeout:    defaultTimeout,
	}
}

// Sample analyzes a recording and always produces a valid result within the
// configured wall-clock bound: setup failures and timeouts degrade to a
// neutral result, never an error.
func (s *Sampler) Sample(ctx context.Context, recordingURL string) Result {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	frames, audio, err := s.opener.Open(ctx, recordingURL)
	if err != nil {
		s.logger.Warn("media pipeline unavailable",
			zap.String("recording", recordingURL),
			zap.Error(err))
		return neutralResult("Video analysis failed")
	}
	defer frames.Close()

	var (
		framesAnalyzed  int
		totalBrightness float64
		totalMovement   float64
		prev            *Frame

		totalVolume     float64
		backgroundNoise float64
		volumeSamples   int
		snrSamples      []float64

		emotions []EmotionSample
	)

	pos := time.Duration(0)
	for i := 0; i < maxIterations; i++ {
		if ctx.Err() != nil {
			// Hard timeout: resources are released by the deferred Close,
			// the result degrades to neutral.
			s.logger.Warn("sampling timed out", zap.String("recording", recordingURL))
			return neutralResult("Video analysis timeout")
		}

		frame, err := frames.CurrentFrame()
		if err != nil {
			s.logger.Debug("frame not ready", zap.Int("iteration", i), zap.Error(err))
		} else {
			totalBrightness += meanLuma(frame)
			if prev != nil {
				totalMovement += motionScore(frame, prev)
			}
			prev = frame

			if audio != nil {
				if window, err := audio.CurrentWindow(); err == nil {
					volume := volumeEstimate(window)
					totalVolume += volume
					volumeSamples++
					if volume < noiseThreshold {
						backgroundNoise += volume
					}
					if snr := snrEstimate(volume); snr > 0 {
						snrSamples = append(snrSamples, snr)
					}
				}
			}

			if s.classifier != nil && i%emotionEvery == 0 {
				if sample, ok := s.classifyFrame(ctx, frame); ok {
					emotions = append(emotions, sample)
				}
			}

			framesAnalyzed++
		}

		if frames.Ended() {
			break
		}
		pos += seekStep
		if err := frames.Seek(ctx, pos); err != nil {
			if ctx.Err() != nil {
				s.logger.Warn("sampling timed out", zap.String("recording", recordingURL))
				return neutralResult("Video analysis timeout")
			}
			s.logger.Debug("seek failed, ending pass", zap.Duration("pos", pos), zap.Error(err))
			break
		}
	}

	return s.finalize(framesAnalyzed, totalBrightness, totalMovement,
		totalVolume, backgroundNoise, volumeSamples, snrSamples, emotions)
}

// classifyFrame submits one frame to the emotion classifier. Failures are
// dropped, not retried within the loop.
func (s *Sampler) classifyFrame(ctx context.Context, frame *Frame) (EmotionSample, bool) {
	payload, err := frame.JPEG()
	if err != nil {
		s.logger.Debug("frame encode failed", zap.Error(err))
		return EmotionSample{}, false
	}
	results, err := s.classifier.Classify(ctx, payload)
	if err != nil || len(results) == 0 {
		s.logger.Debug("emotion classification failed", zap.Error(err))
		return EmotionSample{}, false
	}
	return EmotionSample{
		Label:      results[0].Label,
		Confidence: results[0].Score * 100,
	}, true
}

func (s *Sampler) finalize(frames int, brightness, movement,
	volume, noise float64, volumeSamples int, snrSamples []float64,
	emotions []EmotionSample) Result {

	var video model.VideoMetrics
	if frames > 0 {
		video.Brightness = round2(brightness / float64(frames))
		video.Movement = round2(movement / float64(frames))
	}

	var audio model.AudioMetrics
	if volumeSamples > 0 {
		avgVolume := volume / float64(volumeSamples)
		audio.Volume = round2(avgVolume)
		audio.BackgroundNoise = round2(noise / float64(volumeSamples))

		volumeConsistency := (1 - math.Abs(avgVolume-50)/50) * 100

		var avgSNR float64
		for _, snr := range snrSamples {
			avgSNR += snr
		}
		if len(snrSamples) > 0 {
			avgSNR /= float64(len(snrSamples))
		}
		snrScore := math.Min(100, avgSNR/20*100)

		audio.SpeechClarity = round2(volumeConsistency*0.7 + snrScore*0.3)
	}

	return Result{
		Video:   video,
		Audio:   audio,
		Emotion: Aggregate(emotions),
	}
}

// meanLuma averages (R+G+B)/3 over every pixel.
func meanLuma(f *Frame) float64 {
	if len(f.RGBA) < 4 {
		return 0
	}
	var sum float64
	for i := 0; i+2 < len(f.RGBA); i += 4 {
		sum += (float64(f.RGBA[i]) + float64(f.RGBA[i+1]) + float64(f.RGBA[i+2])) / 3
	}
	return sum / float64(len(f.RGBA)/4)
}

// motionScore is the mean absolute per-channel difference against the
// previous frame, sampled every fourth pixel.
func motionScore(cur, prev *Frame) float64 {
	n := len(cur.RGBA)
	if len(prev.RGBA) < n {
		n = len(prev.RGBA)
	}
	if n < 16 {
		return 0
	}
	var sum float64
	for i := 0; i+2 < n; i += 16 {
		sum += math.Abs(float64(cur.RGBA[i]) - float64(prev.RGBA[i]))
		sum += math.Abs(float64(cur.RGBA[i+1]) - float64(prev.RGBA[i+1]))
		sum += math.Abs(float64(cur.RGBA[i+2]) - float64(prev.RGBA[i+2]))
	}
	return sum / float64(n/16)
}

// volumeEstimate maps the window's RMS amplitude onto a 0-100 scale.
func volumeEstimate(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	var rms float64
	for _, sample := range window {
		rms += sample * sample
	}
	rms = math.Sqrt(rms / float64(len(window)))
	return math.Min(100, rms*1000)
}

// snrEstimate derives a zero-floored dB ratio of speech power to a noise
// floor for one volume estimate.
func snrEstimate(volume float64) float64 {
	if volume <= noiseThreshold {
		return 0
	}
	return 10 * math.Log10(volume/0.1)
}

func neutralResult(description string) Result {
	return Result{
		Emotion: model.EmotionSummary{
			PrimaryEmotion: "neutral",
			Confidence:     0,
			Emotions:       []model.EmotionScore{},
			Description:    description,
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
