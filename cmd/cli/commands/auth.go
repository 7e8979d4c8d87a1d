package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"local-auth-service/internal/usecase/auth"
	apperrors "local-auth-service/pkg/errors"
)

func (c *cli) signupCmd() *cobra.Command {
	var req auth.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in as it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := c.container.AuthUC.Signup(cmd.Context(), req)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed up as %s <%s> (id %s)\n", u.Name, u.Email, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var req auth.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with an existing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := c.container.AuthUC.Login(cmd.Context(), req)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", u.Name, u.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.container.AuthUC.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := c.container.AuthUC.GetCurrentUser(cmd.Context())
			if u == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (id %s)\n", u.Name, u.Email, u.ID)
			return nil
		},
	}
}

// describe turns domain errors into messages fit for a terminal.
func describe(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		return errors.New("an account with this email already exists")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return errors.New("invalid email or password")
	}

	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		return fmt.Errorf("invalid input: %s", ve.Message)
	}
	return err
}
