// Package mcpserver exposes the user_input tool over the Model Context
// Protocol, on stdio or SSE.
package mcpserver

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ziggle-dev/clanker-input/internal/logging"
	"github.com/ziggle-dev/clanker-input/internal/metrics"
	"github.com/ziggle-dev/clanker-input/internal/request"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Name is the MCP server name.
const Name = "clanker-input"

// Asker answers input requests.
type Asker interface {
	Ask(ctx context.Context, req request.Request) request.Response
}

// Server wraps the MCP server and the input service behind it.
type Server struct {
	asker     Asker
	mcpServer *server.MCPServer
	log       *logging.Logger
	metrics   *metrics.Metrics

	// mu keeps a single dialog on screen at a time.
	mu sync.Mutex
}

// New creates the server and registers its tools.
func New(asker Asker, version string, log *logging.Logger, m *metrics.Metrics) *Server {
	if log == nil {
		log = logging.Nop()
	}
	s := &Server{
		asker:   asker,
		log:     log,
		metrics: m,
		mcpServer: server.NewMCPServer(
			Name,
			version,
			server.WithToolCapabilities(false),
		),
	}
	s.mcpServer.AddTool(userInputTool(), s.handleUserInput)
	return s
}

// ServeStdio serves on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	s.log.Info("serving MCP on stdio")
	return server.ServeStdio(s.mcpServer, server.WithErrorLogger(zap.NewStdLog(s.log.SugaredLogger.Desugar())))
}

// Handler returns the SSE transport routes plus /metrics and /healthz.
func (s *Server) Handler(baseURL string) http.Handler {
	sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/sse", sse.SSEHandler())
	r.Handle("/message", sse.MessageHandler())
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// ServeSSE listens on addr until ctx ends, then shuts down gracefully.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(baseURL),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("serving MCP over SSE", "addr", addr, "base_url", baseURL)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down SSE server")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
