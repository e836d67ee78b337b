// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/main.go
// Summary: texelfx command line entry point.
// Usage: texelfx [preview|render|schema|watch] --theme <name>; flags also read TEXELFX_* environment variables.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/framegrace/texelfx/config"
	"github.com/framegrace/texelfx/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "texelfx",
	Short: "Animated backdrop and event effects for terminals",
	Long: `texelfx renders themed backdrop effects, reacts to terminal events with
temporary theme overrides and composes the result under terminal text.`,
	SilenceUsage: true,
	RunE:         runPreview,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("theme", "", "Theme to use [default: theme from texelfx.yaml]")
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.String("config-dir", "", "Configuration directory [default: user config dir]/texelfx")

	for _, name := range []string{"theme", "log-level", "log-file", "config-dir"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", name, err)
			os.Exit(1)
		}
	}
	viper.SetEnvPrefix("texelfx")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(watchCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if dir := viper.GetString("config-dir"); dir != "" {
		os.Setenv("TEXELFX_CONFIG_DIR", dir)
	}
	level := viper.GetString("log-level")
	if level == "" {
		level = config.System().GetString("", "log-level", "")
	}
	if err := logging.Configure(level, viper.GetString("log-file")); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}
