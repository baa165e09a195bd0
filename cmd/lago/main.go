package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/lago-client/cmd/lago/commands"
	"github.com/fivetwenty-io/lago-client/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "lago",
	Short: "Lago billing API CLI",
	Long: `A command-line interface for the Lago billing API.

Manage customers, invoices, plans and subscriptions, send usage events,
receive webhooks and relay events from NATS.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.lago/config.yml)")
	rootCmd.PersistentFlags().String("api-key", "", "Lago API key")
	rootCmd.PersistentFlags().String("region", "", "region: us, eu or an endpoint URL")
	rootCmd.PersistentFlags().String("api-url", "", "self-hosted API URL, used when --region is unset")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log requests, responses and retries")
	rootCmd.PersistentFlags().Int("max-retries", constants.DefaultRetryMax, "retries after the first attempt")
	rootCmd.PersistentFlags().String("retry-mode", "standard", "retry mode (standard, adaptive, off)")
	rootCmd.PersistentFlags().Duration("timeout", constants.DefaultHTTPTimeout, "per-attempt timeout")
	rootCmd.PersistentFlags().StringArrayP("header", "H", nil, "extra request header as \"Name: value\", repeatable")

	// Bind flags to viper
	for _, name := range []string{"config", "api-key", "region", "api-url", "output", "verbose", "max-retries", "retry-mode", "timeout", "header"} {
		_ = viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), rootCmd.PersistentFlags().Lookup(name))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewCustomersCommand())
	rootCmd.AddCommand(commands.NewInvoicesCommand())
	rootCmd.AddCommand(commands.NewPlansCommand())
	rootCmd.AddCommand(commands.NewSubscriptionsCommand())
	rootCmd.AddCommand(commands.NewEventsCommand())
	rootCmd.AddCommand(commands.NewWebhooksCommand())
	rootCmd.AddCommand(commands.NewRelayCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.lago/config.yml
		viper.AddConfigPath(filepath.Join(home, ".lago"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// LAGO_API_KEY, LAGO_REGION, LAGO_API_URL, ...
	viper.SetEnvPrefix("LAGO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			_, _ = fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
