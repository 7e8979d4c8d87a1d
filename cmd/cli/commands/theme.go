package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	domain "local-auth-service/internal/domain/theme"
)

func (c *cli) themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the light/dark theme preference",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print the current theme mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.container.ThemeUC.Get(cmd.Context()))
			return nil
		},
	}

	set := &cobra.Command{
		Use:       "set <light|dark>",
		Short:     "Persist a theme mode",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.Light), string(domain.Dark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := domain.ParseMode(args[0])
			if err != nil {
				return err
			}
			if err := c.container.ThemeUC.Set(cmd.Context(), mode); err != nil {
				return fmt.Errorf("failed to save theme: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), mode)
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := c.container.ThemeUC.Toggle(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to save theme: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), mode)
			return nil
		},
	}

	cmd.AddCommand(get, set, toggle)
	return cmd
}
