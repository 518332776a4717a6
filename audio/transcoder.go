// Package audio converts compressed voice notes into the fixed waveform
// format the recognizer expects and provides the PCM-level helpers around
// it.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// ErrMalformed indicates the voice container could not be decoded.
var ErrMalformed = errors.New("malformed audio container")

const DefaultSampleRate = 16000

// Transcoder converts a compressed voice container (OGG/Opus by platform
// default) into 16-bit mono PCM WAV via ffmpeg.
type Transcoder struct {
	ffmpegPath string
	sampleRate int
	run        func(ctx context.Context, name string, args ...string) error
}

func NewTranscoder(ffmpegPath string, sampleRate int) *Transcoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	return &Transcoder{
		ffmpegPath: ffmpegPath,
		sampleRate: sampleRate,
		run:        runCommand,
	}
}

// Transcode decodes the compressed container into a mono WAV buffer. All
// intermediate temp files are removed before Transcode returns, on every
// exit path including decode failure.
func (t *Transcoder) Transcode(ctx context.Context, compressed []byte) ([]byte, error) {
	if len(compressed) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}

	var wav []byte
	err := withTempFile("voice-*.ogg", compressed, func(inPath string) error {
		return withTempPath("voice-*.wav", func(outPath string) error {
			err := t.run(ctx, t.ffmpegPath,
				"-y",
				"-i", inPath,
				"-ac", "1",
				"-ar", fmt.Sprintf("%d", t.sampleRate),
				"-f", "wav",
				outPath,
			)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("%w: %v", ErrMalformed, err)
			}

			data, err := os.ReadFile(outPath)
			if err != nil {
				return fmt.Errorf("failed to read transcoded output: %w", err)
			}

			wav = data
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("input_size", len(compressed)).
		Int("output_size", len(wav)).
		Int("sample_rate", t.sampleRate).
		Msg("Transcoded voice note")

	return wav, nil
}

// withTempFile writes data into a fresh temp file and hands the path to fn.
// The file is removed once fn returns, regardless of outcome.
func withTempFile(pattern string, data []byte, fn func(path string) error) error {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	return fn(path)
}

// withTempPath reserves a temp file path for fn to write into and removes
// whatever ends up there once fn returns.
func withTempPath(pattern string, fn func(path string) error) error {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	return fn(path)
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %v: %s", name, err, lastLine(stderr.Bytes()))
	}

	return nil
}

func lastLine(out []byte) string {
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	if len(lines) == 0 {
		return ""
	}
	return string(bytes.TrimSpace(lines[len(lines)-1]))
}
