// Package app wires the presentation server: configuration, logging, the
// session store, the API clients, the views and the router. It also runs
// the HTTP server with graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/apiclient"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/config"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/ipchecker"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/logger"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/router"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/session"
	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/views"
)

const shutdownTimeout = 10 * time.Second

// App holds the resolved configuration and the HTTP handler built from it.
type App struct {
	cfg         *config.Config
	session     session.Store
	httpHandler http.Handler
}

// New initializes a new instance of App by:
// - loading configuration
// - initializing logger
// - opening the session file
// - building the bare and the authenticated API clients
// - setting up the views, the router and its middleware
func New(opts ...config.InitOption) (*App, error) {
	var err error
	app := &App{}

	app.cfg, err = config.New(opts...)
	if err != nil {
		return nil, err
	}

	err = logger.Init(app.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app.session, err = session.NewFileStore(app.cfg.SessionFilePath)
	if err != nil {
		return nil, fmt.Errorf("opening the session file: %w", err)
	}

	checker, err := ipchecker.New(app.cfg.TrustedSubnet)
	if err != nil {
		return nil, err
	}

	app.httpHandler = router.New(
		views.New(
			apiclient.New(app.cfg.APIBaseURL),
			apiclient.New(app.cfg.APIBaseURL, apiclient.WithSession(app.session)),
			app.session,
		),
		checker,
	)

	return app, nil
}

// Handler returns the presentation handler.
func (a *App) Handler() http.Handler {
	return a.httpHandler
}

// Run starts the HTTP server and blocks until it fails or a shutdown
// signal arrives, in which case in-flight requests get shutdownTimeout
// to finish.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Log.Infoln(
		"server running",
		"RunAddr", a.cfg.RunAddr,
		"APIBaseURL", a.cfg.APIBaseURL,
		"SessionFilePath", a.cfg.SessionFilePath,
	)

	server := &http.Server{
		Addr:              a.cfg.RunAddr,
		Handler:           a.httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal. Exiting...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil

	case err := <-serverErrCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

// Close finalizes resources used by App such as logging.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}
