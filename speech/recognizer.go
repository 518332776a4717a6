// Package speech turns waveform audio into text. The primary path is a
// hosted transcription service; an offline endpoint, when configured, is
// tried only after the primary reports itself unavailable.
package speech

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"

	"github.com/relayworks/voicerelay/audio"
)

type Recognizer struct {
	client   *openai.Client
	language string
	offline  *OfflineClient
}

// NewRecognizer creates a recognizer backed by the hosted transcription
// API. baseURL overrides the API endpoint when non-empty; offline may be
// nil when no local fallback is configured.
func NewRecognizer(apiKey, baseURL, language string, httpClient http.Client, offline *OfflineClient) Recognizer {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&httpClient),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)

	return Recognizer{
		client:   &client,
		language: language,
		offline:  offline,
	}
}

// Recognize transcribes a mono PCM WAV buffer. The leading calibration
// window is measured for ambient energy and discarded before the
// recognition attempt proper.
func (r *Recognizer) Recognize(ctx context.Context, wav []byte) Result {
	prepared := r.calibrate(wav)

	text, err := r.transcribe(ctx, prepared)
	if err == nil {
		if text == "" {
			return Failed(FailureNoSpeech)
		}
		return OK(text)
	}

	log.Warn().Err(err).Msg("Primary transcription service failed")

	if r.offline == nil {
		return Failed(FailureServiceUnavailable)
	}

	text, err = r.offline.Transcribe(ctx, prepared)
	if err != nil {
		log.Warn().Err(err).Msg("Offline transcription fallback failed")
		return Failed(FailureServiceUnavailable)
	}

	if text == "" {
		return Failed(FailureNoSpeech)
	}

	return OK(text)
}

// calibrate trims the noise-calibration window from the waveform. If the
// buffer cannot be decoded or re-encoded it is sent as-is; calibration is
// an accuracy aid, never a failure cause.
func (r *Recognizer) calibrate(wav []byte) []byte {
	samples, sampleRate, err := audio.DecodeWAV(wav)
	if err != nil {
		log.Debug().Err(err).Msg("Skipping noise calibration, undecodable waveform")
		return wav
	}

	trimmed, ambient := audio.CalibrateNoise(samples, sampleRate, audio.DefaultCalibrationWindow)

	log.Debug().
		Float64("ambient_rms", ambient).
		Int("trimmed_samples", len(samples)-len(trimmed)).
		Msg("Noise calibration complete")

	if len(trimmed) == len(samples) {
		return wav
	}

	recoded, err := audio.EncodeWAV(trimmed, sampleRate)
	if err != nil {
		return wav
	}

	return recoded
}

func (r *Recognizer) transcribe(ctx context.Context, wav []byte) (string, error) {
	params := openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  openai.File(bytes.NewReader(wav), "voice.wav", "audio/wav"),
	}
	if r.language != "" {
		params.Language = openai.String(r.language)
	}

	transcription, err := r.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(transcription.Text), nil
}
