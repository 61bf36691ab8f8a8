package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vesaa/staffdesk/internal/theme"
)

// newThemeCmd manages the console theme: the terminal's colours and the
// default for browsers that have not picked one.
func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the console theme",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current theme",
		Args:  cobra.NoArgs,
		RunE: themeCommand(func(cmd *cobra.Command, _ []string, th *theme.Theme) error {
			fmt.Fprintln(cmd.OutOrStdout(), th.Mode())
			return nil
		}),
	}
	toggleCmd := &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: themeCommand(func(cmd *cobra.Command, _ []string, th *theme.Theme) error {
			m, err := th.Toggle(cmd.Context())
			if err != nil {
				return fmt.Errorf("saving theme: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), m)
			return nil
		}),
	}
	setCmd := &cobra.Command{
		Use:       "set light|dark",
		Short:     "Pick a theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(theme.Light), string(theme.Dark)},
		RunE: themeCommand(func(cmd *cobra.Command, args []string, th *theme.Theme) error {
			m, ok := theme.ParseMode(args[0])
			if !ok {
				return fmt.Errorf("unknown theme %q, want light or dark", args[0])
			}
			if err := th.Set(cmd.Context(), m); err != nil {
				return fmt.Errorf("saving theme: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), m)
			return nil
		}),
	}

	cmd.AddCommand(showCmd, toggleCmd, setCmd)
	return cmd
}

func themeCommand(run func(cmd *cobra.Command, args []string, th *theme.Theme) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		db, err := a.openPrefs()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := a.context(cmd)
		cmd.SetContext(ctx)
		return run(cmd, args, a.terminalTheme(ctx, db))
	}
}
