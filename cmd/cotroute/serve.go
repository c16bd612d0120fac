package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/tak-mesh/cot-router/internal/appconfig"
	"github.com/tak-mesh/cot-router/internal/logging"
	"github.com/tak-mesh/cot-router/routeconfig"
	"github.com/tak-mesh/cot-router/routetable"
	"github.com/tak-mesh/cot-router/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Compile the configured routing document and serve its statistics",
	Long: `Serve loads the cotroute application config, compiles the domain
routing document it points at, and exposes a Prometheus metrics
listener. The routing document is hot-reloaded whenever it changes on
disk: a new compile failure leaves the previously running table in
place.

Example:
  cotroute serve --app-config cotroute.yaml`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := appconfig.Load(appConfigPath)
	if err != nil {
		return fmt.Errorf("loading app config: %w", err)
	}
	log := logging.New(cfg.Log)

	table, err := routeconfig.CompileFile(cfg.Routing.ConfigPath)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", cfg.Routing.ConfigPath, err)
	}
	mgr, err := routetable.NewManager(table)
	if err != nil {
		return fmt.Errorf("starting route manager: %w", err)
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(telemetry.NewManagedCollector(mgr))

		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}

		go func() {
			log.Info("metrics listener starting", "addr", cfg.Metrics.Addr, "path", cfg.Metrics.Path)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics listener stopped", "error", err)
			}
		}()
		defer srv.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watchAndReload(ctx, log, cfg.Routing.ConfigPath, mgr)
	return nil
}

// watchAndReload watches configPath for changes and reloads mgr's
// table on every write, logging (and discarding) any compile failure
// so the previously running table keeps serving.
func watchAndReload(ctx context.Context, log *slog.Logger, configPath string, mgr *routetable.Manager) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn("hot reload disabled: could not start file watcher", "error", err)
		<-ctx.Done()
		return
	}
	defer watcher.Close()

	if err := watcher.Add(configPath); err != nil {
		log.Warn("hot reload disabled: could not watch config file", "path", configPath, "error", err)
		<-ctx.Done()
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			next, err := routeconfig.CompileFile(configPath)
			if err != nil {
				log.Error("config reload failed, keeping previous table", "path", configPath, "error", err)
				continue
			}
			if err := mgr.Reload(next); err != nil {
				log.Error("reload rejected", "error", err)
				continue
			}
			log.Info("config reloaded", "path", configPath)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error("file watcher error", "error", err)
		}
	}
}
