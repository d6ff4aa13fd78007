package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/0xcro3dile/robobob/internal/adapters/filewatcher"
	"github.com/0xcro3dile/robobob/internal/config"
	httpserver "github.com/0xcro3dile/robobob/internal/infrastructure/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP question API",
	Long: `Loads the answer source once, then serves POST /api/questions until
interrupted. With the file provider and lookup.watch enabled, changes to the
questions file are reported in the log; they take effect on restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The provider is fully built before the server accepts traffic.
	dispatcher, closeFn, err := newDispatcher(cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	server := httpserver.NewServer(dispatcher, logger.Named("http"), httpserver.Options{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.GetReadTimeout(),
		WriteTimeout:    cfg.GetWriteTimeout(),
		ShutdownTimeout: cfg.GetShutdownTimeout(),
	})

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return server.Start(egCtx)
	})
	if cfg.Lookup.Provider == config.ProviderFile && cfg.Lookup.Watch {
		eg.Go(func() error {
			return watchSource(egCtx, cfg.Lookup.QuestionsFile)
		})
	}

	return eg.Wait()
}

// watchSource reports edits to the questions file. A watcher that cannot
// start is logged and skipped; it never takes the server down.
func watchSource(ctx context.Context, path string) error {
	log := logger.Named("watcher")

	watcher, err := filewatcher.NewFSNotifyWatcher([]string{path}, log)
	if err != nil {
		log.Warn("File watcher unavailable", zap.Error(err))
		return nil
	}
	defer watcher.Stop()

	if err := filewatcher.MonitorSource(ctx, watcher, path, log); err != nil {
		log.Warn("Not watching questions file", zap.String("path", path), zap.Error(err))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
