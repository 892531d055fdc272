package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"venue-console/internal/auth"
	"venue-console/internal/client"
	"venue-console/internal/config"
	"venue-console/internal/observability"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "venuectl",
		Short: "Admin console for the venue booking backend",
		Long: `venuectl manages venue bookings from the terminal.

It keeps a local session against the booking backend, refreshing it
transparently when it goes stale, and exposes the booking, category
and order-menu resources.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		loginCmd(),
		logoutCmd(),
		statusCmd(),
		ordersCmd(),
		categoriesCmd(),
		menuCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// newSDK builds the console SDK from the environment. Forced redirects
// surface as messages instead of navigation.
func newSDK() (*client.Client, error) {
	cfg := config.Load()
	observability.InitLogger(cfg.LogLevel, "text")

	navigate := auth.Navigator(func(route string) {
		switch route {
		case auth.RouteLogin:
			warn("session ended, run `venuectl login`")
		default:
			warn("redirected to %s", route)
		}
	})

	return client.New(cfg, navigate)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("venuectl %s (%s)\n", version, commit)
		},
	}
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
