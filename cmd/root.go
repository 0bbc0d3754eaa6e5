package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edubot/edubot/internal/config"
	"github.com/edubot/edubot/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "edubot",
	Short: "A/L Political Science tutor backend",
	Long: "EduBot serves a tri-lingual (English, Sinhala, Tamil) chat tutor for Sri Lankan\n" +
		"A/L Political Science students, with explanations, guided lessons and MCQ practice.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides EDUBOT_CONFIG)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EDUBOT_DB, selects the sqlite driver)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// readConfig loads configuration without requiring an LLM key, then
// applies the persistent flags.
func readConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Read(path)
	if err != nil {
		return config.Config{}, err
	}
	applyFlags(cmd, &cfg)
	return cfg, nil
}

// loadConfig is readConfig plus full validation.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := readConfig(cmd)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.Driver = store.DriverSQLite
		cfg.Store.Path = p
	}
}

// openStore opens the configured backend for the store-only commands.
func openStore(cmd *cobra.Command) (store.Backend, error) {
	cfg, err := readConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Store.Driver == store.DriverMemory {
		return nil, fmt.Errorf("the memory store is not persistent; use --db or EDUBOT_STORE_DRIVER")
	}
	b, err := store.OpenBackend(cmd.Context(), cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return b, nil
}
