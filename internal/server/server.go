package server

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/thywilljoshua/docchat/internal/config"
	"github.com/thywilljoshua/docchat/internal/session"
)

type Server struct {
	app      *fiber.App
	cfg      *config.Config
	ctrl     *session.Controller
	validate *validator.Validate
	logger   *zap.Logger
}

// New builds the HTTP surface over ctrl. A nil gatherer leaves /metrics out.
func New(cfg *config.Config, ctrl *session.Controller, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:      cfg,
		ctrl:     ctrl,
		validate: validator.New(),
		logger:   logger,
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.App.UploadMaxBytes,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CorsAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(s.requestLog)

	app.Post("/chat", s.chat)
	app.Post("/upload", s.upload)
	app.Post("/upload-image", s.upload)
	app.Post("/ask", s.ask)
	app.Post("/ask-pdf", s.askPDF)
	app.Post("/ask-image", s.askImage)
	app.Post("/reset", s.reset)
	app.Get("/context", s.currentContext)

	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	s.app = app
	return s
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Run() error {
	s.logger.Info("server listening", zap.String("addr", ":"+s.cfg.App.Port))
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error { return s.app.Shutdown() }

// requestLog resolves handler errors itself so the logged status is the one sent.
func (s *Server) requestLog(c *fiber.Ctx) error {
	start := time.Now()
	if err := c.Next(); err != nil {
		if herr := s.handleError(c, err); herr != nil {
			return herr
		}
	}
	s.logger.Info("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
