package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/socialauth/pkg/adapter"
	"github.com/dmitrymomot/socialauth/pkg/config"
	"github.com/dmitrymomot/socialauth/pkg/provider"
)

// loadSettings reads the app config and the provider settings file; file
// overrides PROVIDERS_FILE when set.
func loadSettings(envFile, file string) (config.App, map[provider.ID]provider.Settings, error) {
	var cfg config.App
	if err := config.Load(&cfg, envFile); err != nil {
		return cfg, nil, err
	}
	if file != "" {
		cfg.ProvidersFile = file
	}
	settings, err := config.LoadProviders(cfg.ProvidersFile)
	return cfg, settings, err
}

func newProvidersCmd(envFile *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List supported providers and whether the settings file configures them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, settings, err := loadSettings(*envFile, file)
			if err != nil {
				return err
			}

			reg := provider.DefaultRegistry()
			ids := slices.Sorted(maps.Keys(settings))
			for _, id := range reg.IDs() {
				if !slices.Contains(ids, id) {
					ids = append(ids, id)
				}
			}
			slices.Sort(ids)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PROVIDER\tSUPPORTED\tCONFIGURED\tAUTH\tCALLBACK")
			for _, id := range ids {
				s, configured := settings[id]
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", id, yesNo(reg.Has(id)), yesNo(configured), s.URLs.Auth, s.URLs.Callback)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "provider settings file (default: PROVIDERS_FILE)")
	return cmd
}

func newAdaptCmd(envFile *string) *cobra.Command {
	var (
		file       string
		showSecret bool
	)

	cmd := &cobra.Command{
		Use:   "adapt <provider>",
		Short: "Print the strategy config built from a provider's settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, settings, err := loadSettings(*envFile, file)
			if err != nil {
				return err
			}

			id := provider.ID(args[0])
			s, ok := settings[id]
			if !ok {
				return fmt.Errorf("%s is not in %s", id, cfg.ProvidersFile)
			}

			adapted, err := adapter.New(cfg.BaseURL, provider.DefaultRules()).Adapt(id, s)
			if err != nil {
				return err
			}
			if !showSecret {
				redact(adapted)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(adapted)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "provider settings file (default: PROVIDERS_FILE)")
	cmd.Flags().BoolVar(&showSecret, "show-secrets", false, "print secrets and private keys unmasked")
	return cmd
}

// redact masks values whose key names a secret or private key.
func redact(cfg adapter.Config) {
	for k, v := range cfg {
		lower := strings.ToLower(k)
		if s, ok := v.(string); ok && s != "" && (strings.Contains(lower, "secret") || strings.Contains(lower, "private")) {
			cfg[k] = "********"
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
