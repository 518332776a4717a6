package server

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/relayworks/voicerelay/config"
	"github.com/relayworks/voicerelay/processor"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	processor *processor.Processor
}

func New(cfg *config.Config, proc *processor.Processor) *Server {
	app := fiber.New()

	server := &Server{
		app:       app,
		cfg:       cfg,
		processor: proc,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

func (s *Server) Start(port string) {
	log.Info().Str("port", port).Msg("Starting relay server")

	err := s.app.Listen(":"+port, fiber.ListenConfig{
		DisableStartupMessage: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
