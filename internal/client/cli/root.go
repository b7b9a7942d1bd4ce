package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cocreate/internal/client/client"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree bound to a.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "cocreate",
		Short:         "Generate and organise social media content with cocreate",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.out = cmd.OutOrStdout()
			return a.open(cmd.Context())
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.config.ServerURL, "server", a.config.ServerURL, "cocreate server base URL")
	f.StringVar(&a.config.SessionDB, "session-db", a.config.SessionDB, "path of the local session database")
	f.DurationVar(&a.config.RequestTimeout, "timeout", a.config.RequestTimeout, "HTTP request timeout")

	root.AddCommand(
		a.pingCmd(),
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.passwdCmd(),
		a.deleteAccountCmd(),
		a.settingsCmd(),
		a.generateCmd(),
		a.toneCmd(),
		a.historyCmd(),
		a.savedCmd(),
		a.showCmd(),
		a.saveCmd(),
		a.unsaveCmd(),
		a.exportCmd(),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func (a *App) Execute(ctx context.Context, args []string) int {
	defer a.Close()

	root := NewRootCmd(a)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", describe(err))
		return 1
	}
	return 0
}

// describe turns transport errors into a hint for the user.
func describe(err error) string {
	switch {
	case client.IsUnavailable(err):
		return "server unavailable, check --server"
	case errors.Is(err, client.ErrUnauthorized):
		return err.Error() + " (run 'cocreate login')"
	default:
		return err.Error()
	}
}

func (a *App) pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.authService.Ping(cmd.Context()); err != nil {
				return err
			}
			a.printf("OK\n")
			return nil
		},
	}
}
