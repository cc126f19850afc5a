package api

import (
	"fmt"

	"base-receipts/internal/infrastructure/config"
	"base-receipts/internal/infrastructure/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Server wraps the Fiber HTTP server and its route handlers
type Server struct {
	app     *fiber.App
	handler *Handler
	config  *config.AppConfig
	logger  *logger.Logger
}

// NewServer creates the HTTP server and registers all routes
func NewServer(handler *Handler, cfg *config.AppConfig, logger *logger.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "base-receipts",
		DisableStartupMessage: true,
	})

	s := &Server{
		app:     app,
		handler: handler,
		config:  cfg,
		logger:  logger.WithComponent("http-server"),
	}

	s.registerRoutes()
	return s
}

// registerRoutes wires the API surface
func (s *Server) registerRoutes() {
	s.app.Get("/health", s.handler.Health)

	v1 := s.app.Group("/api/v1")
	v1.Get("/wallets/:address/stats", s.handler.GetWalletStats)
	v1.Get("/wallets/:address/transactions", s.handler.GetWalletTransactions)
	v1.Get("/wallets/:address/receipts", s.handler.GetWalletReceipts)
	v1.Post("/receipts", s.handler.MintReceipt)
}

// Listen starts serving on the configured port and blocks
func (s *Server) Listen() error {
	addr := fmt.Sprintf(":%d", s.config.HTTPPort)
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.Shutdown()
}

// App exposes the underlying Fiber app, used by tests
func (s *Server) App() *fiber.App {
	return s.app
}
