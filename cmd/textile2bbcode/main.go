// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the textile2bbcode CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/textile2bbcode/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the textile2bbcode CLI.
var rootCmd = &cobra.Command{
	Use:   "textile2bbcode",
	Short: "Convert Textile markup to BBCode",
	Long: `textile2bbcode rewrites Textile markup as BBCode for forum posts.

It converts hN. headings, @inline code@, <pre><code> blocks and nested
# / * lists. Everything else is copied through unchanged. Single files go to
standard output or a chosen path; whole directories convert in batch, with
a local history so unchanged files are skipped on the next run.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./textile2bbcode.yaml or ~/.config/textile2bbcode/textile2bbcode.yaml)")
	rootCmd.PersistentFlags().String("history-db", "", "conversion history database (default .textile2bbcode/history.db)")

	_ = viper.BindPFlag("history.db_path", rootCmd.PersistentFlags().Lookup("history-db"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("textile2bbcode")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "textile2bbcode"))
		}
	}

	viper.SetEnvPrefix("TEXTILE2BBCODE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the configuration from flags, environment and the
// config file, in viper's order of precedence.
func loadConfig() types.Config {
	return types.Config{
		Conversion: types.ConversionConfig{
			OutputDir:  viper.GetString("conversion.output_dir"),
			TextExt:    viper.GetBool("conversion.text_ext"),
			Force:      viper.GetBool("conversion.force"),
			Extensions: viper.GetStringSlice("conversion.extensions"),
		},
		History: types.HistoryConfig{
			DBPath:     viper.GetString("history.db_path"),
			MaxResults: viper.GetInt("history.max_results"),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
