package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tffedibot/fedibot/internal/config"
	"github.com/tffedibot/fedibot/internal/logging"
	"github.com/tffedibot/fedibot/internal/store"
)

const version = "0.1.0"

// AppConfig holds the loaded configuration, set during PersistentPreRunE.
var AppConfig *config.Config //nolint:gochecknoglobals // standard Cobra pattern for shared config

// rootCmd is the base command for the fedibot CLI.
var rootCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:     "fedibot",
	Version: version,
	Short:   "Game notification bot with a self-migrating SQLite store",
	Long: `fedibot relays game coordinator notifications to a fediverse account.
Its SQLite store migrates itself from scripts compiled into the binary; the
commands here inspect, check and apply those migrations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	rootCmd.PersistentFlags().String("config", "fedibot.yml", "path to configuration file")
	rootCmd.PersistentFlags().String("env-file", ".env", "path to a dotenv file with FEDIBOT_* overrides")
	rootCmd.PersistentFlags().String("database", "", "path to the SQLite store")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads configuration with precedence: flag > env > dotenv > file.
func loadConfig(cmd *cobra.Command) error {
	if err := loadEnvFile(cmd); err != nil {
		return err
	}

	configPath, _ := cmd.Flags().GetString("config")
	allowMissing := !cmd.Flags().Changed("config")

	cfg, err := config.Load(configPath, allowMissing)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	config.MergeEnv(cfg)
	mergeFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	if _, err := logging.Setup(cfg.LogLevel, cmd.ErrOrStderr()); err != nil {
		return err
	}

	redacted := cfg.Redacted()
	logrus.WithFields(logrus.Fields{
		"database":          redacted.DatabasePath,
		"steam_username":    redacted.SteamUsername,
		"steam_password":    redacted.SteamPassword,
		"fedi_url":          redacted.FediURL,
		"fedi_access_token": redacted.FediAccessToken,
	}).Debug("loaded configuration")

	AppConfig = cfg

	return nil
}

// loadEnvFile exports the dotenv file's variables without overriding ones
// already set. A missing default file is not an error.
func loadEnvFile(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("env-file")
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("env-file") {
		return nil
	}

	return fmt.Errorf("loading env file %s: %w", path, err)
}

// mergeFlags overrides config with explicitly-set CLI flags.
func mergeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("database") {
		cfg.DatabasePath, _ = cmd.Flags().GetString("database")
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
}

// openStore opens the configured store. The embedded migrations are
// selected with the configured prefix.
func openStore(ctx context.Context, cfg *config.Config, opts ...store.Option) (*store.Store, error) {
	base := []store.Option{
		store.WithLogger(logrus.WithField("component", "store")),
		store.WithMigrations(store.Migrations(), cfg.MigrationsPrefix),
	}

	s, err := store.Open(ctx, cfg.DatabasePath, cfg.BusyTimeout, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", cfg.DatabasePath, err)
	}

	return s, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
