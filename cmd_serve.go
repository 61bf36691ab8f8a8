package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vesaa/staffdesk/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the staffdesk web console",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			printBanner(out, "CONSOLE")

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			ctx := a.context(cmd)

			db, err := a.openPrefs()
			if err != nil {
				return err
			}
			defer db.Close()

			gin.SetMode(a.cfg.GinMode)
			srv, err := server.New(server.Deps{
				Store:         a.newStore(a.cfg.ListMinDelay),
				Bundle:        a.bundle,
				Logger:        a.log,
				Locale:        a.cfg.Locale,
				ConsoleTheme:  db.ThemeStorage(),
				SessionSecret: a.cfg.SessionSecret,
				BackendURL:    a.cfg.BackendURL,
			})
			if err != nil {
				return fmt.Errorf("building console: %w", err)
			}

			fmt.Fprintf(out, "  ✓ Console → http://%s\n", a.cfg.Addr())
			fmt.Fprintf(out, "  ✓ Backend → %s\n", a.cfg.BackendURL)
			fmt.Fprintf(out, "  ✓ Prefs   → %s\n\n", a.cfg.DBPath)

			// Runs until SIGINT/SIGTERM cancels the command context.
			if err := srv.Run(ctx, a.cfg.Addr()); err != nil {
				return err
			}
			fmt.Fprintln(out, "\n  → Stopped.")
			return nil
		},
	}
	cmd.Flags().Int("port", 0, "Console listen port (overrides config)")
	return cmd
}
