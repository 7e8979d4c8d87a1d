// Package commands implements the device CLI. Each invocation builds the same
// DI container as the API, so a session written by one command is restored
// by the next.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"local-auth-service/cmd/api/app"
	"local-auth-service/cmd/api/di"
)

// Options are the persistent flags shared by every command.
type Options struct {
	Driver  string
	Verbose bool
}

// Builder creates the container a command runs against.
type Builder func(ctx context.Context, opts Options) (*di.Container, error)

// DefaultBuilder loads config from CONFIG_PATH and the environment, then
// applies flag overrides.
func DefaultBuilder(ctx context.Context, opts Options) (*di.Container, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Driver != "" {
		cfg.Storage.Driver = opts.Driver
	}

	// Keep stdout for command output.
	cfg.Logger.OutputPath = "stderr"
	if !opts.Verbose {
		cfg.Logger.Level = "warn"
	}

	l, err := app.InitLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return di.NewContainer(ctx, cfg, l)
}

type cli struct {
	build     Builder
	opts      Options
	container *di.Container
}

// Execute runs the CLI with args. The container is released afterwards
// whether or not the command succeeded.
func Execute(ctx context.Context, build Builder, args []string, stdout, stderr io.Writer) (err error) {
	c := &cli{build: build}
	defer func() {
		err = errors.Join(err, c.close())
	}()

	cmd := c.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func (c *cli) close() error {
	if c.container == nil {
		return nil
	}
	err := c.container.Close()
	c.container = nil
	return err
}

// rootCmd wires all subcommands. The container is built once per run.
func (c *cli) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "local-auth",
		Short:        "Sign up, log in and manage the theme on this device",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			container, err := c.build(cmd.Context(), c.opts)
			if err != nil {
				return err
			}
			c.container = container
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&c.opts.Driver, "driver", "", "storage driver override (memory, sqlite, postgres, redis)")
	cmd.PersistentFlags().BoolVarP(&c.opts.Verbose, "verbose", "v", false, "log at the configured level instead of warn")

	cmd.AddCommand(
		c.signupCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.themeCmd(),
	)

	return cmd
}
