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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/simple-tempurl/pkg/tempurl/admin"
	"github.com/tendant/simple-tempurl/pkg/tempurl/api"
	"github.com/tendant/simple-tempurl/pkg/tempurl/config"
	"github.com/tendant/simple-tempurl/pkg/tempurl/metrics/prom"
)

type ServerEnv struct {
	AdminJWTSecret string `env:"ADMIN_JWT_SECRET" env-default:""`
	EnableMetrics  bool   `env:"ENABLE_METRICS" env-default:"true"`
}

func main() {
	var env ServerEnv
	if err := cleanenv.ReadEnv(&env); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	opts := []config.Option{config.WithEnv("")}
	if env.EnableMetrics {
		opts = append(opts, config.WithMetrics(
			prom.New(prometheus.DefaultRegisterer, "tempurl", "cache", nil)))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		slog.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}

	service, err := cfg.BuildService()
	if err != nil {
		slog.Error("Failed to build service", "err", err)
		os.Exit(1)
	}

	server := app.DefaultWithoutRoutes()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	tempURLHandler := api.NewTempURLHandler(service)
	adminHandler := api.NewAdminHandler(admin.New(service))

	server.R.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(api.RequestIDMiddleware)
			r.Use(api.LoggingMiddleware(slog.Default()))
			r.Use(api.RequireAPIVersion(cfg.MinAPIVersion))
			r.Mount("/objects", tempURLHandler.Routes())
		})
	})

	if env.AdminJWTSecret != "" {
		tokenAuth := jwtauth.New("HS256", []byte(env.AdminJWTSecret), nil)
		server.R.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(jwtauth.Authenticator)
			r.Mount("/admin", adminHandler.Routes())
		})
	} else {
		slog.Warn("ADMIN_JWT_SECRET not set, admin endpoints disabled")
	}

	if env.EnableMetrics {
		server.R.Handle("/metrics", promhttp.Handler())
	}

	// Serve on the configured port rather than through app.Run, which binds
	// its own listener.
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: server.R,
	}

	go func() {
		slog.Info("Starting tempurl server", "port", cfg.Port, "environment", cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "err", err)
		os.Exit(1)
	}
}
