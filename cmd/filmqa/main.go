// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the filmqa CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/filmqa/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API tokens loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the filmqa CLI.
var rootCmd = &cobra.Command{
	Use:   "filmqa",
	Short: "Answer natural-language film questions from Wikidata",
	Long: `filmqa answers factoid questions about films and the people who make
them. Each question is parsed, categorized by its syntactic shape, reduced to
an entity and a property, resolved to knowledge-base identifiers, and answered
with a single query against the public Wikidata endpoints.

Batch answering, a single-question mode with an interactive prompt, a parse
debugger, and an HTTP API are each a subcommand.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./filmqa.yaml or ~/.config/filmqa/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("filmqa")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "filmqa"))
		}
	}

	viper.SetEnvPrefix("FILMQA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
