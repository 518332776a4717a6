package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	WhatsAppToken       string
	WhatsAppVerifyToken string
	WhatsAppPhoneID     string
	WhatsAppAppSecret   string
	GraphAPIBaseURL     string
	BotpressBaseURL     string
	BotpressBotID       string
	BotpressToken       string
	OpenAIKey           string
	OpenAIBaseURL       string
	OfflineSTTURL       string
	SpeechLanguage      string
	FFmpegPath          string
	Port                string
	WorkerCount         int
	QueueDepth          int
}

func Load() *Config {
	godotenv.Load()

	cfg := &Config{
		WhatsAppToken:       getEnv("WHATSAPP_ACCESS_TOKEN", ""),
		WhatsAppVerifyToken: getEnv("WHATSAPP_VERIFY_TOKEN", ""),
		WhatsAppPhoneID:     getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
		WhatsAppAppSecret:   getEnv("WHATSAPP_APP_SECRET", ""),
		GraphAPIBaseURL:     getEnv("GRAPH_API_BASE_URL", "https://graph.facebook.com/v18.0"),
		BotpressBaseURL:     getEnv("BOTPRESS_BASE_URL", "https://messaging.botpress.cloud"),
		BotpressBotID:       getEnv("BOTPRESS_BOT_ID", ""),
		BotpressToken:       getEnv("BOTPRESS_TOKEN", ""),
		OpenAIKey:           getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", ""),
		OfflineSTTURL:       getEnv("OFFLINE_STT_URL", ""),
		SpeechLanguage:      getEnv("SPEECH_LANGUAGE", "en"),
		FFmpegPath:          getEnv("FFMPEG_PATH", "ffmpeg"),
		Port:                getEnv("PORT", "8080"),
		WorkerCount:         getEnvInt("WORKER_COUNT", 5),
		QueueDepth:          getEnvInt("QUEUE_DEPTH", 32),
	}

	if cfg.WhatsAppToken == "" {
		log.Fatal("WHATSAPP_ACCESS_TOKEN environment variable is required")
	}

	if cfg.WhatsAppVerifyToken == "" {
		log.Fatal("WHATSAPP_VERIFY_TOKEN environment variable is required")
	}

	if cfg.WhatsAppPhoneID == "" {
		log.Fatal("WHATSAPP_PHONE_NUMBER_ID environment variable is required")
	}

	if cfg.BotpressBotID == "" {
		log.Fatal("BOTPRESS_BOT_ID environment variable is required")
	}

	if cfg.BotpressToken == "" {
		log.Fatal("BOTPRESS_TOKEN environment variable is required")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
