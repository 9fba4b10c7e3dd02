package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flotilla/battleship-go/internal/api"
	"github.com/flotilla/battleship-go/internal/web"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	logger := newLogger()
	slog.SetDefault(logger)

	cfg := ConfigFromEnv()

	app, err := buildApp(cfg, logger)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}

	// Bootstrap the well-known admin account. The password is a deployment
	// secret; the fallback exists for local development only.
	adminPassword := cfg.AdminPassword
	if adminPassword == "" {
		adminPassword = DefaultAdminUsername
		logger.Warn("ADMIN_PASSWORD not set, using default bootstrap password",
			slog.String("username", DefaultAdminUsername))
	}
	if err := app.AuthService.EnsureAdmin(context.Background(), DefaultAdminUsername, adminPassword); err != nil {
		logger.Error("failed to bootstrap admin account", slog.String("error", err.Error()))
		return err
	}

	if cfg.ScoreServiceToken == "" {
		logger.Warn("SCORE_SERVICE_TOKEN not set, score update endpoint will reject all requests")
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		ScoreService: app.ScoreService,
		ServiceToken: cfg.ScoreServiceToken,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:       logger,
		AuthService:  app.AuthService,
		ScoreService: app.ScoreService,
		Storage:      app.Storage,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}
