package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"venue-console/internal/auth"
	"venue-console/internal/client"
)

func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the booking backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, err := newSDK()
			if err != nil {
				return err
			}

			if username == "" {
				username = prompt("Username: ")
			}
			if password == "" {
				password = prompt("Password: ")
			}

			msg, err := sdk.Auth.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			if msg != "" {
				info("%s", msg)
			}
			if profile := sdk.Sessions.GetUserData(); profile != nil {
				success("signed in as %s", profile.Username)
			} else {
				success("signed in (profile unavailable)")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, err := newSDK()
			if err != nil {
				return err
			}
			sdk.Auth.Logout(cmd.Context())
			success("signed out")
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, err := newSDK()
			if err != nil {
				return err
			}

			authenticated, err := sdk.Auth.InitializeAuthState(cmd.Context())
			if err != nil {
				return err
			}
			if !authenticated {
				info("not signed in")
				return nil
			}

			profile := sdk.Sessions.GetUserData()
			if profile == nil {
				success("signed in (profile unavailable)")
				return nil
			}

			success("signed in as %s", profile.Username)
			info("email: %s", profile.Email)
			if profile.IsAdmin {
				info("role:  administrator")
			} else {
				info("role:  staff")
			}
			if !sdk.Sessions.StorageAvailable() {
				warn("session state is not persisted on this machine")
			}
			return nil
		},
	}
}

func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// requireAuth restores the session and fails the command when the guard
// denies access.
func requireAuth(ctx context.Context, sdk *client.Client) error {
	if d := sdk.Guards.RequireAuth(ctx); !d.Allow {
		return fmt.Errorf("not signed in, run `venuectl login`")
	}
	return nil
}

// requireAdmin additionally demands the administrator role.
func requireAdmin(ctx context.Context, sdk *client.Client) error {
	d := sdk.Guards.RequireAdmin(ctx)
	if d.Allow {
		return nil
	}
	if d.RedirectTo == auth.RouteHome {
		return fmt.Errorf("administrator role required")
	}
	return fmt.Errorf("not signed in, run `venuectl login`")
}
