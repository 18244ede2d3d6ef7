package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/ThinkInAIXYZ/go-mcp/server"
	"github.com/ThinkInAIXYZ/go-mcp/transport"
	"github.com/gin-gonic/gin"

	"market-price-service/internal/config"
	"market-price-service/internal/ports"
)

const (
	serverName    = "market-price-mcp"
	serverVersion = "1.0.0"

	messageEndpoint = "/message"
)

// Server hosts the price-lookup tools over the configured MCP transport.
type Server struct {
	cfg      config.Config
	handler  *ToolHandler
	verifier ports.TokenVerifier
	logger   *slog.Logger
}

func NewServer(cfg config.Config, handler *ToolHandler, verifier ports.TokenVerifier, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		cfg:      cfg,
		handler:  handler,
		verifier: verifier,
		logger:   logger,
	}
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Transport {
	case config.TransportStdio:
		return s.runStdio(ctx)
	default:
		return s.runSSE(ctx)
	}
}

func (s *Server) registerTools(srv *server.Server) error {
	listTool, err := protocol.NewTool(
		"find_shopping_list_prices",
		"Finds current grocery prices for a shopping list in stores near a geographic location, with per-store distance, sorted by price or unit price.",
		shoppingListArgs{},
	)
	if err != nil {
		return fmt.Errorf("create shopping list tool: %w", err)
	}
	srv.RegisterTool(listTool, s.handler.FindShoppingListPrices)

	cheapestTool, err := protocol.NewTool(
		"find_cheapest_product",
		"Finds the cheapest available price for a single product in stores near a geographic location.",
		cheapestProductArgs{},
	)
	if err != nil {
		return fmt.Errorf("create cheapest product tool: %w", err)
	}
	srv.RegisterTool(cheapestTool, s.handler.FindCheapestProduct)

	return nil
}

func (s *Server) runStdio(ctx context.Context) error {
	srv, err := server.NewServer(
		transport.NewStdioServerTransport(),
		server.WithServerInfo(protocol.Implementation{Name: serverName, Version: serverVersion}),
	)
	if err != nil {
		return fmt.Errorf("create MCP server: %w", err)
	}

	if err := s.registerTools(srv); err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			s.logger.Error("MCP server shutdown failed", "err", err)
		}
	}()

	s.logger.Info("server started", "transport", config.TransportStdio)
	return srv.Run()
}

func (s *Server) runSSE(ctx context.Context) error {
	sseTransport, mcpHandler, err := transport.NewSSEServerTransportAndHandler(messageEndpoint)
	if err != nil {
		return fmt.Errorf("create SSE transport: %w", err)
	}

	srv, err := server.NewServer(
		sseTransport,
		server.WithServerInfo(protocol.Implementation{Name: serverName, Version: serverVersion}),
	)
	if err != nil {
		return fmt.Errorf("create MCP server: %w", err)
	}

	if err := s.registerTools(srv); err != nil {
		return err
	}

	go func() {
		if err := srv.Run(); err != nil {
			s.logger.Error("MCP server stopped", "err", err)
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(requestLogger(s.logger), gin.Recovery())

	authed := r.Group("/", bearerAuth(s.verifier, s.logger))
	authed.GET("/sse", gin.WrapH(mcpHandler.HandleSSE()))
	authed.POST(messageEndpoint, gin.WrapH(mcpHandler.HandleMessage()))

	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		// SSE streams stay open indefinitely, so no write timeout.
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	s.logger.Info("server listening",
		"addr", addr, "transport", config.TransportSSE, "auth", s.verifier != nil)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("MCP server shutdown failed", "err", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}
