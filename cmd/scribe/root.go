package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/internal/platform"
	"github.com/aretw0/scribe/pkg/core"
	"github.com/aretw0/scribe/pkg/form"
	"github.com/aretw0/scribe/pkg/render"
)

var (
	verbose bool
	cfgFile string

	settings  platform.Settings
	validator *form.Validator
	renderer  *render.Renderer
)

// flagKeys maps persistent flags to their settings keys.
var flagKeys = map[string]string{
	"adapter":   "adapter",
	"data-dir":  "data_dir",
	"redis-url": "redis_url",
	"strict":    "strict",
	"no-delay":  "no_delay",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "A local-first notes manager",
	Long: `Scribe keeps short text notes in a local store.
Every change rewrites the whole collection to a single storage key, so any
program reading that key sees the same notes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		v := viper.New()
		flags := cmd.Root().PersistentFlags()
		for name, key := range flagKeys {
			if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
				return err
			}
		}

		s, err := platform.LoadSettings(v, cfgFile)
		if err != nil {
			return err
		}
		if s.DataDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			if s.DataDir, err = platform.ResolveDataDir(wd); err != nil {
				return err
			}
		}

		settings = s
		validator = form.New(s.Variant())
		renderer = render.New(time.Local, 0)
		return nil
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
	flags.StringVar(&cfgFile, "config", "", "Config file (default: ./scribe.yaml or ~/.config/scribe/scribe.yaml)")
	flags.String("adapter", "fs", "Storage adapter: fs, memory or redis")
	flags.String("data-dir", "", "Directory of the fs adapter (default: nearest .scribe directory)")
	flags.String("redis-url", "redis://localhost:6379/0", "URL of the redis adapter")
	flags.Bool("strict", false, "Use the strict validation bounds (title 3-100, content 10-2000)")
	flags.Bool("no-delay", false, "Disable the artificial busy delay")
}

// openStore loads the store described by the current settings.
func openStore(ctx context.Context, extra ...scribe.Option) (*core.Store, error) {
	opts, err := settings.Options(slog.Default())
	if err != nil {
		return nil, err
	}
	store, err := scribe.New(ctx, settings.URI(), append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open notes: %w", err)
	}
	return store, nil
}

// await waits for an operation while telling the user the store is busy.
func await[T any](cmd *cobra.Command, task *core.Task[T], label string) (T, error) {
	select {
	case <-task.Done():
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "%s...\n", label)
	}
	return task.Wait(cmd.Context())
}
