// Package api exposes the habit tracker over a small JSON HTTP API.
package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tracker"
)

const shutdownTimeout = 10 * time.Second

// Saver persists the tracker state after every mutation.
type Saver interface {
	SaveState(models.State) error
}

// Server serializes all access to one tracker.
type Server struct {
	mu      sync.Mutex
	tracker *tracker.Tracker
	saver   Saver
	app     *fiber.App
}

func New(t *tracker.Tracker, saver Saver) *Server {
	s := &Server{tracker: t, saver: saver}

	app := fiber.New(fiber.Config{
		AppName:               "habitual",
		DisableStartupMessage: true,
		Immutable:             true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestLogger)
	registerRoutes(app, s)

	s.app = app
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Warn("Server shutdown failed", "error", err)
		}
	}()

	logger.Info("API listening", "addr", addr)
	return s.app.Listen(addr)
}

// persist saves the current state. Callers must hold s.mu.
func (s *Server) persist() error {
	if s.saver == nil {
		return nil
	}
	if err := s.saver.SaveState(s.tracker.State()); err != nil {
		logger.Error("Failed to save state", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save state")
	}
	return nil
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	logger.Debug("Request", "method", c.Method(), "path", c.Path(), "status", c.Response().StatusCode(), "took", time.Since(start))
	return err
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}
	if status == fiber.StatusInternalServerError {
		logger.Error("Request failed", "path", c.Path(), "error", err)
	}
	return apiError(c, status, err.Error())
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
