package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vango-dev/routegen/internal/generate"
	"github.com/vango-dev/routegen/internal/metrics"
	"github.com/vango-dev/routegen/internal/watch"
)

func watchCmd(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate routes whenever the project changes",
		Long: `Generate once, then watch the source tree and the route tree file and
regenerate after every batch of changes.

While watching, an HTTP server exposes:
  /healthz             status of the last run
  /metrics             Prometheus metrics
  /__routegen/reload   WebSocket notifications for dev tooling

Examples:
  routegen watch
  routegen watch --addr=127.0.0.1:9000
  routegen watch --addr=""   # no HTTP server`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:7357", "Listen address for health, metrics and reload (empty disables)")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *globalOptions, addr string) error {
	cfg, log, err := loadProject(cmd, opts)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	reload := watch.NewReloadServer(log)
	reload.OnClientsChanged = m.SetReloadClients

	var srv *watch.Server
	if addr != "" {
		srv = watch.NewServer(watch.ServerOptions{
			Addr:    addr,
			Reload:  reload,
			Metrics: m,
			Logger:  log,
		})
	}

	gen := generate.New(cfg, generate.Options{Logger: log, Metrics: m})
	session := watch.NewSession(gen, reload, srv, log)

	out := cmd.OutOrStdout()
	report := func(result *generate.Result, err error) {
		if err != nil {
			warn(out, "%s", err.Error())
			return
		}
		success(out, "Generated %d routes in %s", result.Routes, result.Duration.Round(time.Microsecond))
	}
	// A failing first run is reported, not fatal: the next save may fix it.
	report(session.Regenerate(ctx, nil))

	w := watch.NewWatcher(watch.WatcherConfig{
		Paths:    []string{cfg.SrcPath(), cfg.RoutesPath()},
		Ignore:   cfg.Watch.Ignore,
		Exclude:  []string{cfg.OutputPath()},
		Debounce: cfg.Watch.Debounce,
		Logger:   log,
	})
	w.OnChange(func(changes []watch.Change) {
		report(session.Regenerate(ctx, changes))
	})
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	info(out, "Watching %s", cfg.SrcPath())
	if srv != nil {
		info(out, "Reload endpoint ws://%s%s", addr, watch.ReloadPath)
	}

	if srv != nil {
		err = srv.ListenAndServe(ctx)
	} else {
		<-ctx.Done()
	}
	log.Info("watch stopped", zap.NamedError("cause", context.Cause(ctx)))
	return err
}
