// cmd/diet-manager/root.go
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"diet-manager/internal/app"
	"diet-manager/internal/config"
	"diet-manager/internal/console"
	"diet-manager/internal/models"
	"diet-manager/internal/storage"
)

var (
	cfgFile string
	verbose bool
	v       = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "diet-manager",
	Short: "Track foods, meals and daily calorie targets",
	Long: `diet-manager keeps a catalog of basic and composite foods, a dated log
of what was eaten and a user profile used to compute a daily calorie target.
Without a subcommand it starts the interactive menu.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setupLogging()
	},
	RunE:         runConsole,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.diet-manager.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.String("data-dir", ".", "directory holding the data files")
	flags.String("store", storage.BackendJSON, "storage backend: json or sqlite")

	_ = v.BindPFlag("data_dir", flags.Lookup("data-dir"))
	_ = v.BindPFlag("storage.backend", flags.Lookup("store"))

	rootCmd.Flags().String("date", "", "start on this date (YYYY-MM-DD) instead of today")
}

// initConfig loads configuration from the config file and environment.
func initConfig() {
	if err := config.ReadFile(v, cfgFile); err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
}

func setupLogging() error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}

	// Text on stderr keeps stdout free for menus and tool results.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}

// openSession loads the configured storage and profile into a session.
func openSession() (*app.Session, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	slog.Debug("opening session", "backend", cfg.Backend, "data_dir", cfg.DataDir)
	return app.Open(store, storage.NewProfileFile(cfg.ProfileFile)), nil
}

func runConsole(cmd *cobra.Command, _ []string) error {
	session, err := openSession()
	if err != nil {
		return err
	}
	defer session.Close()

	c := console.New(session, cmd.InOrStdin(), cmd.OutOrStdout())
	if raw, _ := cmd.Flags().GetString("date"); raw != "" {
		date, err := models.ParseDate(raw)
		if err != nil {
			return err
		}
		c.SetDate(date)
	}
	return c.Run()
}
