// Package cmd implements the moodlog command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"moodlog/internal/application/reports"
	"moodlog/internal/config"
	"moodlog/internal/flags"
	"moodlog/internal/infrastructure/sqlite"
	"moodlog/internal/journal/domain"
	"moodlog/internal/log"
	"moodlog/internal/presentation"
	"moodlog/internal/tracing"
)

var (
	version  = "dev"
	cfgFile  string
	cfg      config.Config
	jsonOut  bool
	debugLog bool
	userFlag string
)

var rootCmd = &cobra.Command{
	Use:   "moodlog",
	Short: "A mood and energy journal with weekly reports",
	Long: `moodlog records two mood/energy sessions per day (morning and evening)
and turns them into gated statistics reports, a coach recommendation, and a
daily insight line.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/moodlog/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false,
		"emit JSON instead of styled text")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false,
		"write debug logs to the data directory")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "",
		"override the profile id from the config file")

	_ = viper.BindPFlag("user_id", rootCmd.PersistentFlags().Lookup("user"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("data_dir", defaults.DataDir)
	viper.SetDefault("report.cache_ttl_seconds", defaults.Report.CacheTTLSeconds)
	viper.SetDefault("report.watch_debounce_ms", defaults.Report.WatchDebounceMS)
	viper.SetDefault("ui.color", defaults.UI.Color)
	viper.SetDefault("ui.width", defaults.UI.Width)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .moodlog/config.yaml (current directory)
		// 2. ~/.config/moodlog/config.yaml (user config)
		if _, err := os.Stat(".moodlog/config.yaml"); err == nil {
			viper.SetConfigFile(".moodlog/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "moodlog"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create a default one
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := defaultConfigPath()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	cfg = defaults
	_ = viper.Unmarshal(&cfg)

	if cfg.UserID == "" {
		cfg.UserID = uuid.NewString()
		if path := configFilePath(); path != "" {
			_ = config.SaveUserID(path, cfg.UserID)
		}
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".moodlog/config.yaml"
	}
	return filepath.Join(home, ".config", "moodlog", "config.yaml")
}

func configFilePath() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}
	return defaultConfigPath()
}

// location resolves the configured timezone, falling back to local time.
func location() *time.Location {
	if cfg.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: unknown timezone %q, using local time\n", cfg.Timezone)
		return time.Local
	}
	return loc
}

// withService opens the database, wires the report service, runs fn, and
// tears everything down.
func withService(fn func(ctx context.Context, svc *reports.Service) error) error {
	ctx := context.Background()

	if debugLog || os.Getenv("MOODLOG_DEBUG") != "" {
		if err := os.MkdirAll(cfg.DataDir, 0700); err == nil {
			if cleanup, err := log.Init(cfg.LogPath()); err == nil {
				defer cleanup()
			}
		}
	}

	provider, err := tracing.NewProvider(tracingConfig())
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(shutdownCtx)
	}()

	db, err := sqlite.NewDB(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening journal database: %w", err)
	}
	defer func() { _ = db.Close() }()

	svc := reports.NewService(reports.Config{
		Entries:  db.EntryRepository(),
		Users:    db.UserRepository(),
		Flags:    flags.New(cfg.Flags),
		Tracer:   provider.Tracer(),
		CacheTTL: time.Duration(cfg.Report.CacheTTLSeconds) * time.Second,
	})
	defer svc.Close()

	return fn(ctx, svc)
}

// withUserRepo is the lighter variant for commands that only touch the user
// document.
func withUserRepo(fn func(repo domain.UserRepository) error) error {
	db, err := sqlite.NewDB(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening journal database: %w", err)
	}
	defer func() { _ = db.Close() }()
	return fn(db.UserRepository())
}

func tracingConfig() tracing.Config {
	tc := cfg.Tracing
	if tc.Enabled && tc.Exporter == "file" && tc.FilePath == "" {
		tc.FilePath = filepath.Join(cfg.DataDir, "traces.jsonl")
	}
	return tc
}

func textRenderer() *presentation.TextRenderer {
	return presentation.NewTextRenderer(os.Stdout, cfg.UI.Width, cfg.UI.Color)
}

func jsonFormatter() *presentation.Formatter {
	return presentation.NewFormatter(os.Stdout)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
