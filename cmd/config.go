package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tagsearch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or change the configuration file",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single configuration value",
	Long: `Set a single dotted key in the config file, keeping comments and the
layout of the rest of the file.

Settable keys:
  ` + strings.Join(config.SettableKeys(), "\n  ") + `

Examples:
  tagsearch config set search.url "https://mastodon.social/search?q="
  tagsearch config set store.backend bolt
  tagsearch config set flags.strict-tags true`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if err := config.SetValue(path, args[0], args[1]); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", args[0], args[1], path)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), configPath())
		return err
	},
}

func init() {
	configCmd.AddCommand(configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
