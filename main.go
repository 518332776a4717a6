package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/relayworks/voicerelay/audio"
	"github.com/relayworks/voicerelay/botpress"
	"github.com/relayworks/voicerelay/config"
	"github.com/relayworks/voicerelay/pool"
	"github.com/relayworks/voicerelay/processor"
	"github.com/relayworks/voicerelay/server"
	"github.com/relayworks/voicerelay/speech"
	"github.com/relayworks/voicerelay/whatsapp"
)

func main() {
	cfg := config.Load()

	httpClient := http.Client{Timeout: 30 * time.Second}

	whatsappClient := whatsapp.NewClient(
		cfg.WhatsAppToken,
		cfg.GraphAPIBaseURL,
		cfg.WhatsAppPhoneID,
		httpClient,
	)

	botpressClient := botpress.NewClient(
		cfg.BotpressBaseURL,
		cfg.BotpressBotID,
		cfg.BotpressToken,
		httpClient,
	)

	transcoder := audio.NewTranscoder(cfg.FFmpegPath, audio.DefaultSampleRate)

	var offline *speech.OfflineClient
	if cfg.OfflineSTTURL != "" {
		offline = speech.NewOfflineClient(cfg.OfflineSTTURL, &httpClient)
		log.Info().Str("url", cfg.OfflineSTTURL).Msg("Offline transcription fallback enabled")
	}

	recognizer := speech.NewRecognizer(
		cfg.OpenAIKey,
		cfg.OpenAIBaseURL,
		cfg.SpeechLanguage,
		httpClient,
		offline,
	)

	workerPool := pool.New(cfg.WorkerCount, cfg.QueueDepth)

	proc := processor.New(&whatsappClient, &botpressClient, transcoder, &recognizer, workerPool)

	srv := server.New(cfg, proc)

	go srv.Start(cfg.Port)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	if err := workerPool.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Worker pool did not drain in time")
	}
}
