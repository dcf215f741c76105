// Package cmd implements the tsbridge command line interface.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teranos/tsbridge/errors"
	"github.com/teranos/tsbridge/logger"
)

var (
	cfgFile  string
	jsonLogs bool
)

// RootCmd is the tsbridge root command.
var RootCmd = &cobra.Command{
	Use:   "tsbridge",
	Short: "Generate TypeScript type definitions from Go source",
	Long: `tsbridge parses Go packages and emits TypeScript type definitions.

It handles:
  - Struct types → object types with json/ts tag-driven field naming
  - String type declarations with consts → string literal unions
  - Embedded structs → intersection types
  - Pointer types → T | null unions
  - time.Time as string, map types as Record<K, V>
  - Dependency-ordered, deduplicated declarations`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return logger.Initialize(jsonLogs)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./tsbridge.yaml)")
	RootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")

	RootCmd.AddCommand(GenerateCmd)
	RootCmd.AddCommand(CheckCmd)
}

// initConfig loads the optional config file. Flags override config
// values; config values override defaults.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tsbridge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("TSBRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}
