// Command server runs the knowbase wiki as a standalone HTTP server,
// configured entirely through KNOWBASE_* environment variables.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	knowbase "github.com/snakefangox/knowbase"
	"github.com/snakefangox/knowbase/internal/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	cfg := knowbase.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	module, err := knowbase.New(cfg)
	if err != nil {
		return err
	}
	defer module.Close()

	handler, err := module.Handler()
	if err != nil {
		return err
	}

	logger := logging.ModuleLogger(module.Container().LoggerProvider(), "knowbase.server")

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server.listening", "addr", cfg.HTTP.Addr, "storage", cfg.Storage.Provider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server.shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
