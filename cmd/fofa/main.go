package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/fofa-cli/cmd/fofa/commands"
	"github.com/fivetwenty-io/fofa-cli/internal/auth"
	"github.com/fivetwenty-io/fofa-cli/internal/constants"
	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "fofa",
	Short: "FOFA asset search CLI",
	Long: `A command-line client for the FOFA cyberspace search engine.

Credentials come from FOFA_TOKEN (email:key), or FOFA_EMAIL and FOFA_API_KEY,
or the email and key entries of $HOME/.fofa/config.yml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commands.ConfigureColor()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP(commands.KeyConfig, "c", "", "config file (default is $HOME/.fofa/config.yml)")
	rootCmd.PersistentFlags().StringP(commands.KeyAPI, "a", fofa.DefaultBaseURL, "API base URL")
	rootCmd.PersistentFlags().String(commands.KeyOutput, constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP(commands.KeyVerbose, "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool(commands.KeyNoColor, false, "disable colored output")

	// Bind flags to viper
	for _, key := range []string{commands.KeyConfig, commands.KeyAPI, commands.KeyOutput, commands.KeyVerbose, commands.KeyNoColor} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}

	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewNextCommand())
	rootCmd.AddCommand(commands.NewCountCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewHostCommand())
	rootCmd.AddCommand(commands.NewHostsCommand())
	rootCmd.AddCommand(commands.NewInfoCommand())
	rootCmd.AddCommand(commands.NewProductsCommand())
	rootCmd.AddCommand(commands.NewAppsCommand())
	rootCmd.AddCommand(commands.NewFingerCommand())
}

func initConfig() {
	cfgFile := viper.GetString(commands.KeyConfig)

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, constants.ConfigDirName))
		}

		viper.SetConfigType(constants.ConfigFileType)
		viper.SetConfigName(constants.ConfigFileName)
	}

	// Read in environment variables that match
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()

	err := auth.BindEnv(viper.GetViper())
	if err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}

	err = viper.ReadInConfig()
	if err == nil {
		if viper.GetBool(commands.KeyVerbose) {
			_, _ = fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}

		return
	}

	// A missing default file is fine; an explicit or malformed one is not.
	var notFound viper.ConfigFileNotFoundError
	if cfgFile != "" || !errors.As(err, &notFound) {
		commands.PrintError(os.Stderr, fmt.Errorf("failed to read config file: %w", err))
		os.Exit(1)
	}
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
