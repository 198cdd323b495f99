package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/schoolhelper/internal/config"
	"github.com/abhisek/schoolhelper/internal/logger"
	"github.com/abhisek/schoolhelper/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "schoolhelper",
	Short: "Quiz games for young learners",
	Long: `SchoolHelper — math drills, number games and sight words for kids.

Words and numbers are read aloud from recorded audio when available,
with speech synthesis and an on-screen card as fallbacks.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SCHOOLHELPER_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ./config.yaml or $XDG_CONFIG_HOME/schoolhelper/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(trophiesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}

// appEnv bundles what every data-backed command needs. repo is nil when
// the env was opened with openPlayEnv and the store was unreachable.
type appEnv struct {
	cfg  *config.Config
	log  *zap.Logger
	repo store.Repo
}

// openEnv loads configuration, builds the logger and opens the store.
func openEnv(cmd *cobra.Command) (*appEnv, error) {
	return openEnvWith(cmd, true)
}

// openPlayEnv is openEnv for commands that still work without storage.
// A store that cannot be opened is logged and left nil.
func openPlayEnv(cmd *cobra.Command) (*appEnv, error) {
	return openEnvWith(cmd, false)
}

func openEnvWith(cmd *cobra.Command, requireStore bool) (*appEnv, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg, verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	repo, err := openRepo(cmd.Context(), cmd, cfg)
	if err != nil {
		if requireStore {
			_ = log.Sync()
			return nil, err
		}
		log.Warn("storage unavailable, progress will not be saved", zap.Error(err))
		repo = nil
	}
	return &appEnv{cfg: cfg, log: log, repo: repo}, nil
}

// loadConfig honors the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{ConfigFile: cfgPath})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (e *appEnv) Close() {
	if e.repo != nil {
		if err := e.repo.Close(); err != nil {
			e.log.Warn("close store", zap.Error(err))
		}
	}
	_ = e.log.Sync()
}

// openRepo connects to PostgreSQL when a database URL is configured and
// to the local SQLite file otherwise.
func openRepo(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (store.Repo, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.UsePostgres() {
		repo, err := store.OpenPostgres(ctx, store.PostgresConfig{
			URL:             cfg.DB.URL,
			MaxConns:        cfg.DB.MaxConnections,
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return repo, nil
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	repo, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return repo, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then db.path from config, then SCHOOLHELPER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB.Path != "" {
		return cfg.DB.Path, store.EnsureDir(cfg.DB.Path)
	}
	return store.DefaultDBPath()
}
