// Command fakeapi serves an in-memory trips REST API under /api/v1 for local
// development of the presentation server.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/fakeapi"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/logger"
)

func run() error {
	addr := flag.String("a", "localhost:8000", "address to listen on")
	signingKey := flag.String("k", os.Getenv("FAKEAPI_SIGNING_KEY"), "JWT signing key")
	logLevel := flag.String("l", "info", "log level")
	tokenTTL := flag.Duration("ttl", time.Hour, "lifetime of issued tokens")
	flag.Parse()

	if *signingKey == "" {
		return errors.New("a signing key is required: pass -k or set FAKEAPI_SIGNING_KEY")
	}
	if err := logger.Init(*logLevel); err != nil {
		return err
	}
	defer logger.Sync()

	router := chi.NewRouter()
	router.Mount("/api/v1", fakeapi.New([]byte(*signingKey), fakeapi.WithTokenTTL(*tokenTTL)).Routes())

	server := &http.Server{
		Addr:              *addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrCh := make(chan error, 1)
	go func() {
		logger.Log.Infoln("fake API running", "addr", *addr)
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErrCh:
		return err
	}
}

func main() {
	if err := run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
