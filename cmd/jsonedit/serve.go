package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielorbach/go-component"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gocloud.dev/pubsub"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/jsonedit/internal/config"
	"github.com/vango-dev/jsonedit/pkg/feed"
	"github.com/vango-dev/jsonedit/pkg/jsonedit"
	"github.com/vango-dev/jsonedit/pkg/middleware"
	"github.com/vango-dev/jsonedit/pkg/server"
	"github.com/vango-dev/jsonedit/pkg/store"
	"github.com/vango-dev/jsonedit/pkg/value"
	"github.com/vango-dev/jsonedit/pkg/vango"
)

func serveCmd(configPath *string) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editor for a document",
		Long: `Serve the editor for the configured document.

Open the printed URL in a browser. Every committed edit is saved to
the store; the current value is also available at /value.

Examples:
  jsonedit serve
  jsonedit serve --port=8080
  jsonedit serve -c ./settings/jsonedit.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, cmd)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from jsonedit.yaml)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from jsonedit.yaml)")

	return cmd
}

// app is the wired editor service: store, feed, metrics and server.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	docs     store.Store
	pub      *feed.Publisher
	changes  *pubsub.Subscription
	registry *prometheus.Registry
	server   *server.Server
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	vango.DebugMode = cfg.Debug

	docs, err := store.Open(ctx, cfg.StorePath(), store.Options{
		Region:   cfg.Store.Region,
		Endpoint: cfg.Store.Endpoint,
	})
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, docs: docs}

	if cfg.Feed.URL != "" {
		a.pub, err = feed.OpenPublisher(ctx, cfg.Feed.URL, cfg.Document)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		if cfg.Feed.Log {
			a.changes, err = feed.OpenSubscription(ctx, cfg.Feed.URL)
			if err != nil {
				a.Close(ctx)
				return nil, err
			}
		}
	}

	commit := a.save
	var mw []server.Middleware
	var onCreate, onClose func(*server.Session)
	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := middleware.NewMetrics(
			middleware.WithRegistry(a.registry),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)
		mw = append(mw, m.Middleware())
		commit = m.CountCommits(commit)
		onCreate, onClose = m.SessionCreated, m.SessionClosed
	}
	mw = append(mw, middleware.OpenTelemetry())
	commit = middleware.TraceCommit(commit)

	a.server = server.New(server.Config{
		Title: cfg.Document,
		Root:  jsonedit.Component,
		Source: server.DocumentSourceFunc(func(ctx context.Context) (value.Value, error) {
			return store.LoadOrNull(ctx, docs, cfg.Document)
		}),
		OnCommit:        commit,
		Middleware:      mw,
		OnSessionCreate: onCreate,
		OnSessionClose:  onClose,
		Logger:          logger,
	})
	if a.registry != nil {
		a.server.Router().Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{Registry: a.registry}))
	}
	return a, nil
}

// save persists v and publishes it to the feed.
func (a *app) save(ctx context.Context, v value.Value) error {
	if err := a.docs.Save(ctx, a.cfg.Document, v); err != nil {
		return err
	}
	if a.pub != nil {
		return a.pub.Publish(ctx, v)
	}
	return nil
}

// logChanges logs every change received back from the feed until the
// subscription is shut down.
func (a *app) logChanges() {
	logger := a.logger.With("document", a.cfg.Document)
	component.RunProc(func(l *component.L) {
		l.Fork("log changes", feed.Follow(a.changes, func(ctx context.Context, c feed.Change) error {
			logger.InfoContext(ctx, "Document changed", "kind", c.Value.Kind().String(), "value", c.Value.String())
			return nil
		}))
	})
}

// Close releases every resource the app opened.
func (a *app) Close(ctx context.Context) {
	if a.server != nil {
		a.server.Close()
	}
	if a.changes != nil {
		if err := a.changes.Shutdown(ctx); err != nil {
			a.logger.Warn("feed subscription shutdown", "error", err)
		}
	}
	if a.pub != nil {
		if err := a.pub.Close(ctx); err != nil {
			a.logger.Warn("feed shutdown", "error", err)
		}
	}
	if err := a.docs.Close(); err != nil {
		a.logger.Warn("store close", "error", err)
	}
}

func runServe(ctx context.Context, cfg *config.Config, cmd *cobra.Command) error {
	logger := newLogger(cfg, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	idle, _ := cfg.IdleTimeout()

	httpSrv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           a.server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	success(cmd.OutOrStdout(), "Editing %q at http://%s", cfg.Document, cfg.Address())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.server.RunJanitor(gctx, time.Minute, idle)
	})
	if a.changes != nil {
		g.Go(func() error {
			a.logChanges()
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := httpSrv.Shutdown(shutdownCtx)
		a.Close(shutdownCtx)
		return err
	})

	err = g.Wait()
	logger.Info("Server stopped", "document", cfg.Document)
	return err
}
