// Command socialauth serves social login for the providers in a YAML file.
//
//	socialauth serve                      # env: BASE_URL, PROVIDERS_FILE, REDIS_URL, COOKIE_SECRET, ...
//	socialauth providers                  # list supported and configured providers
//	socialauth adapt google               # print the strategy config built for a provider
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "socialauth",
		Short:         "Social login server for OAuth1, OAuth2 and Sign in with Apple providers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file applied before reading the environment")

	root.AddCommand(
		newServeCmd(&envFile),
		newProvidersCmd(&envFile),
		newAdaptCmd(&envFile),
	)
	return root
}
