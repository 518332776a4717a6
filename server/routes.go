package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) setupRoutes() {
	s.app.Get("/webhook", s.verifyWebhookHandler)
	s.app.Post("/webhook", s.inboundWebhookHandler)
	s.app.Post("/botpress-webhook", s.botCallbackHandler)
	s.app.Get("/health", s.healthCheckHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
