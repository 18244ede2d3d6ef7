package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"market-price-service/internal/adapters/auth"
	"market-price-service/internal/adapters/marketapi"
	"market-price-service/internal/api"
	"market-price-service/internal/config"
	"market-price-service/internal/ports"
)

// main is the application composition root.
// It wires the market API client and the token verifier behind ports and
// starts the MCP server on the configured transport.

var (
	flagHost      string
	flagPort      string
	flagTransport string
)

var rootCmd = &cobra.Command{
	Use:          "market-price-server",
	Short:        "MCP server exposing grocery price lookup tools for nearby stores",
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagHost, "host", "", "listen host (overrides MCP_HOST)")
	rootCmd.Flags().StringVar(&flagPort, "port", "", "listen port (overrides MCP_PORT)")
	rootCmd.Flags().StringVar(&flagTransport, "transport", "", "transport: sse or stdio (overrides MCP_TRANSPORT)")
}

func run(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagHost != "" {
		cfg.Host = flagHost
	}
	if flagPort != "" {
		cfg.Port = flagPort
	}
	if flagTransport != "" {
		cfg.Transport = flagTransport
	}

	// One long-lived outbound session shared by every tool invocation,
	// closed exactly once on the way out.
	session := &http.Client{Timeout: 30 * time.Second}
	defer session.CloseIdleConnections()

	client, err := marketapi.NewClient(session, cfg.NearestURL, cfg.SearchURL, cfg.PageSize, logger)
	if err != nil {
		return err
	}

	verifier, err := loadVerifier(cfg, logger)
	if err != nil {
		return err
	}

	handler := &api.ToolHandler{Locator: client, Searcher: client, Logger: logger}
	srv := api.NewServer(cfg, handler, verifier, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// loadVerifier builds the bearer-token verifier for network transports.
// A missing public key file downgrades to insecure mode with a warning;
// a present but unusable key is a configuration error.
func loadVerifier(cfg config.Config, logger *slog.Logger) (ports.TokenVerifier, error) {
	if cfg.Transport != config.TransportSSE {
		return nil, nil
	}

	pem, err := os.ReadFile(cfg.PublicKeyFile)
	if err != nil {
		logger.Warn("public key not found, running without authentication", "file", cfg.PublicKeyFile)
		return nil, nil
	}

	verifier, err := auth.NewBearerVerifier(pem, cfg.IssuerURL, cfg.Audience)
	if err != nil {
		return nil, fmt.Errorf("load verifier: %w", err)
	}

	logger.Info("authentication provider loaded", "issuer", cfg.IssuerURL, "audience", cfg.Audience)
	return verifier, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
