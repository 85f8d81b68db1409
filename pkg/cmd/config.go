package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configKeys are the settings recognized by `gmarket config`.
var configKeys = []string{
	"github_token",
	"proxy",
	"market_owner",
	"market_repo",
	"market_branch",
	"output_dir",
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gmarket configuration",
	Run: func(cmd *cobra.Command, args []string) {
		executeConfigList()
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all configuration values",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		executeConfigList()
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show a single configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeConfigGet(args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeConfigSet(args[0], args[1])
	},
}

func executeConfigList() {
	fmt.Println("config file:", viper.ConfigFileUsed())
	for _, key := range configKeys {
		fmt.Printf("%s: %s\n", key, displayValue(key))
	}
}

func executeConfigGet(key string) error {
	if !slices.Contains(configKeys, key) {
		return fmt.Errorf("unknown config key '%s'", key)
	}
	fmt.Println(viper.GetString(key))
	return nil
}

func executeConfigSet(key, value string) error {
	if !slices.Contains(configKeys, key) {
		return fmt.Errorf("unknown config key '%s'", key)
	}
	viper.Set(key, value)
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("%s updated\n", key)
	return nil
}

// displayValue renders a config value for listing. The token is never
// printed in full.
func displayValue(key string) string {
	value := viper.GetString(key)
	if key == "github_token" {
		if value == "" {
			return "(not set)"
		}
		return "(set)"
	}
	return value
}
