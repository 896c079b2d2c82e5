// File path: cmd/casemate/root.go
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nicodishanthj/casemate/internal/common"
	"github.com/nicodishanthj/casemate/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cfg config.Config

	envFiles     []string
	dbPathFlag   string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "casemate",
	Short: "Investigation board backend for detective cases",
	Long: "Casemate stores cases with their parties, evidence, theories and timeline,\n" +
		"serves them over HTTP and relays AI completions.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load before reading the environment (default .env)")
	flags.StringVar(&dbPathFlag, "db", "", "path to the SQLite database (overrides CASEMATE_DB_PATH)")
	flags.StringVar(&logLevelFlag, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.Version = version
}

// loadConfig applies .env, parses the environment and lets flags override
// the result.
func loadConfig(cmd *cobra.Command, _ []string) error {
	logger := common.Logger()
	loaded, err := config.LoadDotEnv(envFiles...)
	if err != nil {
		return err
	}
	if loaded {
		logger.Info("casemate: environment loaded from .env")
	}
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if trimmed := strings.TrimSpace(dbPathFlag); trimmed != "" {
		cfg.DatabasePath = trimmed
	}
	if trimmed := strings.TrimSpace(logLevelFlag); trimmed != "" {
		cfg.LogLevel = trimmed
	}
	return common.SetLevel(cfg.LogLevel)
}
