package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/GoArmGo/TextForge/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// runServer starts the HTTP server and blocks until the context is cancelled.
func (a *App) runServer(ctx context.Context) error {
	r := chi.NewRouter()
	r.Use(handler.RequestLogger(a.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(a.Config.RequestTimeout))

	sessionGate := a.handler.SessionGate()

	r.Get("/", a.handler.Home)
	r.Post("/register", a.handler.Register)
	r.Post("/login", a.handler.Login)
	r.With(sessionGate).Get("/logout", a.handler.Logout)

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins:   a.Config.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
		}))
		api.Use(middleware.Throttle(a.Config.APIThrottleLimit))
		api.Use(sessionGate)

		api.Post("/generate", a.handler.Generate)
		api.Get("/history", a.handler.History)
	})

	serverAddr := fmt.Sprintf(":%s", a.Config.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("termination signal received, shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.logger.Info("server shut down cleanly")
	return nil
}
