package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - registers the page, form and JSON routes and wraps them in CORS.
func NewRouter(handlers *Handlers, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)

	mux.HandleFunc("GET /{$}", handlers.Page)
	mux.HandleFunc("POST /play/{cell}", handlers.PlayForm)
	mux.HandleFunc("POST /jump/{move}", handlers.JumpForm)
	mux.HandleFunc("POST /reset", handlers.ResetForm)

	mux.HandleFunc("GET /api/state", handlers.State)
	mux.HandleFunc("POST /api/play/{cell}", handlers.Play)
	mux.HandleFunc("POST /api/jump/{move}", handlers.Jump)
	mux.HandleFunc("POST /api/reset", handlers.Reset)

	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowCredentials: true,
	}).Handler(mux)
}

// Start - serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx) //nolint: contextcheck // parent is already canceled
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
