// Package media drives a bounded frame/audio sampling pass over a recorded
// interview. Decoding and classification are external capabilities: any
// runtime can satisfy the interfaces below with a native pipeline, a
// file-based decoder, or a test double.
package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"time"
)

// Frame is one decoded video frame. RGBA holds 8-bit samples in R,G,B,A
// order, one quad per pixel, row-major.
type Frame struct {
	Width  int
	Height int
	RGBA   []byte
}

// JPEG encodes the frame for submission to the emotion classifier.
func (f *Frame) JPEG() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	copy(img.Pix, f.RGBA)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FrameSource exposes seekable access to a recording's video track.
type FrameSource interface {
	// Seek advances the playback position to t, blocking until the frame
	// there is decodable or the context is done.
	Seek(ctx context.Context, t time.Duration) error
	// CurrentFrame returns the frame at the current playback position.
	CurrentFrame() (*Frame, error)
	// Ended reports whether playback has run past the end of the recording.
	Ended() bool
	Close() error
}

// AudioSource exposes the audio buffer window at the current playback
// position, as PCM samples in [-1,1].
type AudioSource interface {
	CurrentWindow() ([]float64, error)
}

// Emotion is one label/confidence entry returned by the classifier,
// confidence in [0,1].
type Emotion struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier is the external facial-emotion service. Results are sorted by
// confidence descending; the first entry is the primary emotion.
type Classifier interface {
	Classify(ctx context.Context, imageJPEG []byte) ([]Emotion, error)
}

// Opener resolves a recording reference into its decoded streams. A nil
// AudioSource is valid and disables audio metrics.
type Opener interface {
	Open(ctx context.Context, recordingURL string) (FrameSource, AudioSource, error)
}

// NoPipelineOpener is the Opener for deployments without a decode
// pipeline. Every open fails, so the sampler degrades each analysis to
// neutral media metrics while text metrics stay fully functional.
type NoPipelineOpener struct{}

func (NoPipelineOpener) Open(_ context.Context, _ string) (FrameSource, AudioSource, error) {
	return nil, nil, errors.New("no media decode pipeline configured")
}
