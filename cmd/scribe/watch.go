package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
	source "github.com/aretw0/scribe/pkg/adapters/lifecycle"
	"github.com/aretw0/scribe/pkg/metrics"
)

var metricsAddr string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow changes made to the notes by other processes",
	Long: `Watch keeps the collection in sync with the storage and prints every change
until interrupted. Only the fs and memory adapters can be watched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		observer, err := metrics.New(reg)
		if err != nil {
			return err
		}

		store, err := openStore(ctx,
			scribe.WithObserver(observer),
			scribe.WithWatcherErrorHandler(func(err error) {
				slog.Warn("watcher error", "error", err)
			}),
		)
		if err != nil {
			return err
		}

		if metricsAddr != "" {
			serveMetrics(ctx, reg)
		}

		src := source.NewSource(store.Subscribe(ctx), source.ChangeEvents...)
		if err := src.Start(ctx); err != nil {
			return err
		}
		lifecycle.Go(ctx, func(ctx context.Context) error {
			for e := range src.Events() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d notes)\n", e, store.Len())
			}
			return nil
		})

		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %d notes under %q. Press Ctrl+C to stop.\n", store.Len(), store.Key())
		return store.Follow(ctx)
	},
}

func serveMetrics(ctx context.Context, reg *prometheus.Registry) {
	srv := &http.Server{
		Addr:              metricsAddr,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	lifecycle.Go(ctx, func(ctx context.Context) error {
		slog.Info("serving metrics", "addr", metricsAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		slog.Error("metrics server failed", "error", err)
	}))
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}
