package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type serverLogger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// serve держит сервер до отмены ctx или до ошибки ListenAndServe.
// В обоих случаях сервер останавливается через Shutdown, а ошибка старта возвращается вызывающему
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, log serverLogger) error {
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if runErr == nil {
		log.Info("Server stopped gracefully")
	}
	return runErr
}
