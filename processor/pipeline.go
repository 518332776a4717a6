package processor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/relayworks/voicerelay/metrics"
	"github.com/relayworks/voicerelay/speech"
)

// runVoicePipeline executes one best-effort background run:
// fetch → transcode → recognize → forward. Every terminal failure produces
// exactly one user-visible message; full success stays silent and lets the
// bot's own reply arrive through the callback webhook. Nothing is retried.
func (p *Processor) runVoicePipeline(msg InboundMessage) {
	ctx := context.Background()

	logger := log.With().
		Str("run_id", uuid.NewString()).
		Str("sender", msg.SenderID).
		Str("media_id", msg.MediaID).
		Logger()

	logger.Info().Msg("Voice pipeline started")

	outcome := p.executeVoicePipeline(ctx, logger, msg)
	metrics.PipelineOutcomes.WithLabelValues(outcome).Inc()

	logger.Info().Str("outcome", outcome).Msg("Voice pipeline finished")
}

func (p *Processor) executeVoicePipeline(ctx context.Context, logger zerolog.Logger, msg InboundMessage) string {
	media, err := p.platform.FetchMedia(ctx, msg.MediaID)
	if err != nil {
		logger.Error().Err(err).Msg("Media download failed")
		p.notify(ctx, msg.SenderID, msgDownloadFail)
		return speech.FailureDownload.String()
	}

	wav, err := p.transcoder.Transcode(ctx, media)
	if err != nil {
		logger.Error().Err(err).Msg("Transcoding failed")
		p.notify(ctx, msg.SenderID, msgCannotGrasp)
		return speech.FailureTranscode.String()
	}

	result := p.recognizer.Recognize(ctx, wav)
	if !result.IsOK() {
		logger.Warn().Str("failure", result.Failure.String()).Msg("Recognition produced no text")
		p.notify(ctx, msg.SenderID, msgCannotGrasp)
		return result.Failure.String()
	}

	logger.Info().Str("text", result.Text).Msg("Voice note transcribed")

	if !p.forwardText(msg.SenderID, result.Text) {
		// The transcript still reaches the user even though the backend
		// did not get it.
		p.notify(ctx, msg.SenderID, fmt.Sprintf(msgForwardFailed, result.Text))
		return "forward_failed"
	}

	return "ok"
}
