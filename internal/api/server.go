// Package api exposes the pipeline operations over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"catalog_writer/internal/domain"
)

const shutdownTimeout = 10 * time.Second

// Pipeline is the set of operations the HTTP surface wraps.
type Pipeline interface {
	Scan(ctx context.Context) (*domain.ScanStats, error)
	ProcessBatch(ctx context.Context) (*domain.BatchStats, error)
	Pause(ctx context.Context) error
	Unpause(ctx context.Context) error
	Stats(ctx context.Context) (*domain.Stats, error)
	Items(ctx context.Context, filter domain.ItemFilter) ([]domain.CatalogItem, error)
	Requeue(ctx context.Context, kind domain.Kind, externalID string) error
	History(ctx context.Context, kind domain.Kind, externalID string) ([]domain.GeneratedContent, error)
}

type Server struct {
	echo   *echo.Echo
	addr   string
	logger *slog.Logger
}

func NewServer(addr string, pipeline Pipeline, logger *slog.Logger) *Server {
	logger = logger.With("component", "api")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				logger.Warn("request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error,
				)
				return nil
			}
			logger.Debug("request completed",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	h := &handlers{pipeline: pipeline}

	e.GET("/healthz", h.health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	g := e.Group("/api")
	g.POST("/scan", h.scan)
	g.POST("/process-batch", h.processBatch)
	g.POST("/pause", h.pause)
	g.POST("/unpause", h.unpause)
	g.GET("/stats", h.stats)
	g.GET("/items", h.items)
	g.GET("/items/:kind/:id/history", h.history)
	g.POST("/items/:kind/:id/requeue", h.requeue)

	return &Server{echo: e, addr: addr, logger: logger}
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is done, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(shutdownCtx)
}

func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := statusOf(err)
		if status == http.StatusInternalServerError {
			logger.Error("request error", "path", c.Path(), "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, errorResponse{Error: msg})
		}
		if err != nil {
			logger.Error("write error response", "error", err)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func statusOf(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.Is(err, domain.ErrPaused):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrBusy):
		return http.StatusLocked, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.As(err, &he):
		if m, ok := he.Message.(string); ok {
			return he.Code, m
		}
		return he.Code, http.StatusText(he.Code)
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
