package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

// username returns args[0] or prompts for it.
func (a *App) username(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.reader, "Enter username", a.out)
}

func (a *App) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register [username]",
		Short: "Create an account and log in",
		Long: `Create an account and log in.

Usernames are 4-20 letters or digits. Passwords are 8-15 letters or digits
with at least one of each.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.register(cmd.Context(), args)
		},
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	userName, err := a.username(args)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	name, err := a.authService.Register(ctx, userName, password)
	if err != nil {
		return err
	}
	a.printf("Registered and logged in as %s\n", name)
	return nil
}

func (a *App) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Log in and remember the session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userName, err := a.username(args)
			if err != nil {
				return err
			}
			password, err := getPassword("Enter password", a.out)
			if err != nil {
				return err
			}

			name, err := a.authService.Login(cmd.Context(), userName, password)
			if err != nil {
				return err
			}
			a.printf("Logged in as %s\n", name)
			return nil
		},
	}
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.authService.Logout(cmd.Context()); err != nil {
				return err
			}
			a.printf("Logged out\n")
			return nil
		},
	}
}

func (a *App) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user and preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.requireSession(ctx); err != nil {
				return err
			}
			p, err := a.client.Profile(ctx)
			if err != nil {
				return err
			}

			a.printf("User:               %s\n", p.Username)
			a.printf("Member since:       %s\n", p.CreatedAt.Local().Format("2006-01-02"))
			a.printf("Content type:       %s\n", orDash(p.ContentType))
			a.printf("Target audience:    %s\n", orDash(p.TargetAudience))
			a.printf("Additional context: %s\n", orDash(p.AdditionalContext))
			a.printf("Generations:        %d (%d saved)\n", len(p.Generations), len(p.FavoriteGenerations))
			return nil
		},
	}
}

func (a *App) passwdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the account password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.requireSession(ctx); err != nil {
				return err
			}
			current, err := getPassword("Current password", a.out)
			if err != nil {
				return err
			}
			next, err := getPassword("New password", a.out)
			if err != nil {
				return err
			}
			if err := a.client.ChangePassword(ctx, current, next); err != nil {
				return err
			}
			a.printf("Password changed\n")
			return nil
		},
	}
}

func (a *App) deleteAccountCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete-account",
		Short: "Delete the account (generated content is kept on the server)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.requireSession(ctx); err != nil {
				return err
			}
			if !yes {
				answer, err := GetSimpleText(a.reader, "Delete account "+a.userName+"? Type 'yes' to confirm", a.out)
				if err != nil {
					return err
				}
				if !strings.EqualFold(answer, "yes") {
					a.printf("Aborted\n")
					return nil
				}
			}
			password, err := getPassword("Enter password", a.out)
			if err != nil {
				return err
			}
			if err := a.client.DeleteAccount(ctx, password); err != nil {
				return err
			}
			if err := a.authService.Logout(ctx); err != nil {
				return err
			}
			a.printf("Account %s deleted\n", a.userName)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
