package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/inventory-client/internal/api/docs"
	"github.com/aaravmahajanofficial/inventory-client/internal/api/handlers"
	"github.com/aaravmahajanofficial/inventory-client/internal/api/middleware"
	"github.com/aaravmahajanofficial/inventory-client/internal/health"
	"github.com/aaravmahajanofficial/inventory-client/internal/metrics"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the product gateway HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), flags, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides http_server.address")

	return cmd
}

func serve(ctx context.Context, flags *globalFlags, addr string) error {
	a, err := newApp(ctx, flags)
	if err != nil {
		return err
	}
	defer a.close()

	if addr == "" {
		addr = a.cfg.HTTPServer.Addr
	}
	docs.SwaggerInfo.Version = Version

	// The server starts while the probe runs; product routes answer 503
	// until the mode is known.
	a.prober.Start(ctx)

	healthHandler, err := health.NewHealthHandler(a.cfg, &health.Endpoints{
		UpstreamURL: a.client.ProductsURL(),
		HTTPClient:  a.client.HTTPClient(),
		Entries:     a.entries,
	}, Version)
	if err != nil {
		return err
	}

	// Setup router
	routerMux := http.NewServeMux()
	handlers.RegisterRoutes(routerMux, handlers.NewProductHandler(a.repo))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Recover(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "inventory-gateway")

	server := http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Server is starting...", slog.String("address", addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-done:
		slog.Warn("Shutdown signal received. Preparing to stop the server...")
	case err := <-serveErr:
		if err != nil {
			slog.Error("Failed to start server", slog.Any("error", err))
			return err
		}
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
		return err
	}

	slog.Info("Server shut down gracefully. All connections closed.")

	return nil
}
