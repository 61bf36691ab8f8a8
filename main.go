// staffdesk: employee administration console and command line.
// Author: vesaa | License: MIT | https://github.com/vesaa/staffdesk
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const asciiLogo = `
  ┌─┐┌┬┐┌─┐┌─┐┌─┐┌┬┐┌─┐┌─┐┬┌─
  └─┐ │ ├─┤├┤ ├┤  ││├┤ └─┐├┴┐
  └─┘ ┴ ┴ ┴└  └  ─┴┘└─┘└─┘┴ ┴
`

const version = "v0.1.0"

// errReported is returned by commands that already printed their failure.
var errReported = errors.New("reported")

func printBanner(w io.Writer, mode string) {
	fmt.Fprint(w, asciiLogo+"\n")
	fmt.Fprintf(w, "  ► staffdesk %s  |  Author: vesaa  |  Mode: %s\n\n", version, mode)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "staffdesk",
		Short: "staffdesk: employee administration console",
		Long: `staffdesk manages employee records held by a REST backend. It serves a
web console (list, add, edit, delete) and offers the same operations on the
command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("backend", "", "Backend base URL, e.g. http://localhost:8081 (overrides config)")

	// ── version subcommand ────────────────────────────────────────────────────
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print staffdesk version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "staffdesk %s  |  Author: vesaa\n", version)
		},
	}

	root.AddCommand(newServeCmd(), newEmployeesCmd(), newThemeCmd(), versionCmd)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}
