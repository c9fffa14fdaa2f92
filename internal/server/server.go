// Package server assembles the HTTP routes and starts the server.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matthewbaird/adminkit/internal/dashboard"
	"github.com/matthewbaird/adminkit/internal/handler"
	"github.com/matthewbaird/adminkit/internal/storage"
)

// Config holds server configuration.
type Config struct {
	Port     int
	Registry *dashboard.Registry
	Store    *storage.Store
}

// Run starts the HTTP server with all routes registered. It blocks until
// ctx is canceled, then shuts down gracefully.
func Run(ctx context.Context, cfg Config) error {
	r := chi.NewRouter()
	r.Use(requestID)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	rh := handler.NewResourceHandler(cfg.Registry, cfg.Store)
	r.Route("/v1/{resource}", func(r chi.Router) {
		r.Get("/", rh.List)
		r.Get("/schema", rh.Schema)
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("admin server listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Println("shutting down")
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// requestID tags each response with an id for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
