package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/wasi"
	"github.com/aretw0/wasi/internal/platform"
	"github.com/aretw0/wasi/pkg/core"
)

var (
	verbose    bool
	storePath  string
	adapter    string
	redisAddr  string
	configPath string
	render     bool
	instant    bool
	readOnly   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wasi",
	Short: "A JavaScript & React assistant that learns from you",
	Long: `W.A.S.I. answers JavaScript and React questions from a built-in knowledge table
and from topics you teach it. Taught topics are stored in a knowledge file
(or a Redis key) and win over built-in answers.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&storePath, "store", "", "Knowledge file (default .wasi/knowledge.json in the project root)")
	flags.StringVar(&adapter, "adapter", platform.AdapterFS, "Storage adapter (fs, redis, memory)")
	flags.StringVar(&redisAddr, "redis-addr", "localhost:6379", "Redis address for the redis adapter")
	flags.StringVar(&configPath, "config", "", "Config file (default: wasi.yaml in the project root)")
	flags.BoolVar(&render, "render", false, "Render replies as Markdown")
	flags.BoolVar(&instant, "instant", false, "Skip the simulated thinking delays")
	flags.BoolVar(&readOnly, "read-only", false, "Never write to the knowledge store")
}

// resolveOptions merges wasi.yaml with the command line. Flags win.
// It returns the store URI for the selected adapter.
func resolveOptions(cmd *cobra.Command) (string, []wasi.Option) {
	cfg, root := loadConfig()

	opts := []wasi.Option{wasi.WithLogger(slog.Default())}
	opts = append(opts, cfg.Options()...)

	flags := cmd.Flags()
	selected := platform.AdapterFS
	if cfg != nil && cfg.Adapter != "" {
		selected = cfg.Adapter
	}
	if flags.Changed("adapter") {
		selected = adapter
		opts = append(opts, wasi.WithAdapter(adapter))
	}
	if flags.Changed("read-only") {
		opts = append(opts, wasi.WithReadOnly(readOnly))
	}
	if instant {
		opts = append(opts, wasi.WithInstantReplies())
	}

	switch selected {
	case platform.AdapterRedis:
		if flags.Changed("redis-addr") || cfg == nil {
			var rc platform.RedisConfig
			if cfg != nil {
				rc = cfg.Redis
			}
			opts = append(opts, wasi.WithRedis(redisAddr, rc.Password, rc.DB, rc.Key))
		}
		return redisAddr, opts
	default:
		path := storePath
		if path == "" && cfg != nil {
			path = cfg.Store
		}
		if path == "" && root != "" {
			path = filepath.Join(root, platform.DefaultStorePath)
		}
		return path, opts
	}
}

func loadConfig() (*platform.Config, string) {
	if configPath != "" {
		cfg, err := platform.LoadConfig(configPath)
		if err != nil {
			fatal("Failed to load config", err)
		}
		return cfg, filepath.Dir(configPath)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fatal("Failed to get CWD", err)
	}
	cfg, root, err := platform.DiscoverConfig(cwd)
	if err != nil {
		fatal("Failed to load config", err)
	}
	if cfg != nil {
		slog.Debug("using config", "root", root)
	}
	return cfg, root
}

// openSession opens the knowledge base and starts a session.
func openSession(cmd *cobra.Command, extra ...wasi.Option) *core.Session {
	uri, opts := resolveOptions(cmd)
	s, err := wasi.New(uri, append(opts, extra...)...)
	if err != nil {
		fatal("Failed to open knowledge base", err)
	}
	return s
}

// openStore opens the knowledge base without a session.
func openStore(cmd *cobra.Command) *core.Store {
	uri, opts := resolveOptions(cmd)
	store, err := wasi.OpenStore(uri, opts...)
	if err != nil {
		fatal("Failed to open knowledge base", err)
	}
	return store
}

// closeSession releases the session and the connection held by its store.
func closeSession(s *core.Session) {
	_ = s.Close()
	if err := s.Store().Close(); err != nil {
		slog.Debug("failed to close store", "error", err)
	}
}
