// Command padeladmin is the terminal front-end for the padel tournament
// platform: authentication, tournament lifecycle management, match results,
// teams and rankings.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MargonDiego/padel-frontend/api"
	"github.com/MargonDiego/padel-frontend/config"
	"github.com/MargonDiego/padel-frontend/console"
	"github.com/MargonDiego/padel-frontend/session"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	store := session.NewStore(cfg.SessionFile)
	if err := store.Hydrate(); err != nil {
		logger.Error("failed to read session file", slog.Any("error", err))
		os.Exit(1)
	}

	client := api.New(cfg.APIBaseURL, store,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		api.WithLogger(logger),
		api.WithSession(store),
		api.WithUnauthorizedHook(func() {
			// The platform rejected the token, the stored session is stale.
			if err := store.Clear(); err != nil {
				logger.Warn("failed to clear session", slog.Any("error", err))
			}
		}),
	)

	app := &console.App{
		Client:  client,
		Session: store,
		Config:  cfg,
		Logger:  logger,
		Out:     os.Stdout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if !errors.Is(err, context.Canceled) {
			printErr(err)
		}
		os.Exit(1)
	}
}

func printErr(err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		os.Stderr.WriteString("error: " + apiErr.Message + "\n")
		return
	}
	os.Stderr.WriteString("error: " + err.Error() + "\n")
}
