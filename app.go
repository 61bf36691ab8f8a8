package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vesaa/staffdesk/internal/api"
	"github.com/vesaa/staffdesk/internal/config"
	"github.com/vesaa/staffdesk/internal/intl"
	"github.com/vesaa/staffdesk/internal/logging"
	"github.com/vesaa/staffdesk/internal/prefs"
	"github.com/vesaa/staffdesk/internal/request"
	"github.com/vesaa/staffdesk/internal/store"
	"github.com/vesaa/staffdesk/internal/termui"
	"github.com/vesaa/staffdesk/internal/theme"
)

// app is what every subcommand builds on: config with CLI flags applied,
// the logger and the message catalogs.
type app struct {
	cfg    *config.Config
	log    *logrus.Logger
	bundle *intl.Bundle
}

func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config values.
	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		cfg.BackendURL = strings.TrimRight(backend, "/")
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.ListenPort = port
	}

	bundle, err := intl.Load()
	if err != nil {
		return nil, fmt.Errorf("loading messages: %w", err)
	}
	return &app{
		cfg:    cfg,
		log:    logging.New(cfg.LogLevel, cfg.LogFormat),
		bundle: bundle,
	}, nil
}

// context returns the command context carrying a logger entry.
func (a *app) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithEntry(ctx, a.log.WithField("cmd", cmd.CommandPath()))
}

func (a *app) translator() *intl.Translator {
	return a.bundle.Translator(a.cfg.Locale)
}

// newStore builds the employee store against the configured backend.
func (a *app) newStore(minDelay time.Duration) *store.Store {
	rc := request.New(a.cfg.BackendURL, a.cfg.RequestTimeout)
	return store.New(api.New(rc),
		store.WithMinDelay(minDelay),
		store.WithMessages(a.translator()),
	)
}

func (a *app) openPrefs() (*prefs.DB, error) {
	db, err := prefs.Open(a.cfg.DBPath, a.log)
	if err != nil {
		return nil, fmt.Errorf("opening preferences: %w", err)
	}
	return db, nil
}

// terminalTheme mounts the console theme, falling back to the terminal
// background when no preference is saved.
func (a *app) terminalTheme(ctx context.Context, db *prefs.DB) *theme.Theme {
	th := theme.New(db.ThemeStorage(), termui.TerminalPrefersDark)
	if err := th.Mount(ctx); err != nil {
		logging.FromContext(ctx).WithError(err).Warn("theme preference unavailable")
	}
	return th
}

// printer returns a themed printer on the command's output. It reads the
// saved theme when a preferences file exists and otherwise follows the
// terminal, without creating the file.
func (a *app) printer(ctx context.Context, cmd *cobra.Command) *termui.Printer {
	var mode theme.Mode
	db, err := prefs.OpenExisting(a.cfg.DBPath, a.log)
	switch {
	case err == nil:
		mode = a.terminalTheme(ctx, db).Mode()
		_ = db.Close()
	case errors.Is(err, prefs.ErrMissing):
		mode = theme.ModeOf(termui.TerminalPrefersDark(ctx))
	default:
		logging.FromContext(ctx).WithError(err).Warn("using light theme")
		mode = theme.Light
	}
	return termui.NewPrinter(cmd.OutOrStdout(), mode, a.translator())
}
