package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/jmallek/domainwatch/internal/check"
	"github.com/jmallek/domainwatch/internal/config"
	"github.com/jmallek/domainwatch/internal/lookup"
	"github.com/jmallek/domainwatch/internal/metrics"
	"github.com/jmallek/domainwatch/internal/notify"
	"github.com/jmallek/domainwatch/internal/source"
)

// App holds one run's wired-up collaborators.
type App struct {
	cfg        *config.Config
	logger     zerolog.Logger
	source     source.Source
	resolver   *check.Resolver
	notifier   notify.Notifier
	pusher     *metrics.Pusher
	etcdClient *clientv3.Client
	dryRun     bool
}

// New creates a new App by wiring up all dependencies.
func New(cfg *config.Config, logger zerolog.Logger, dryRun bool) (*App, error) {
	lookupClient := lookup.New(&cfg.Lookup, logger)
	classifier := check.NewClassifier(cfg.Check.ExpiryAlertDays, nil)
	resolver := check.NewResolver(lookupClient, classifier, cfg.Check.MaxRetries, cfg.Check.RetryDelayDuration(), logger)

	var src source.Source
	var etcdClient *clientv3.Client
	switch cfg.Source.Backend {
	case "etcd":
		var err error
		etcdClient, err = clientv3.New(clientv3.Config{
			Endpoints:   []string{fmt.Sprintf("%s:%d", cfg.Source.EtcdHost, cfg.Source.EtcdPort)},
			DialTimeout: time.Duration(cfg.Source.EtcdDialTimeout * float64(time.Second)),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to etcd: %w", err)
		}
		src = source.NewEtcdSource(etcdClient, &cfg.Source, logger)
	default:
		src = source.NewFileSource(cfg.Source.File, logger)
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		source:     src,
		resolver:   resolver,
		notifier:   notify.NewTelegram(&cfg.Telegram, logger),
		pusher:     metrics.NewPusher(&cfg.Metrics, logger),
		etcdClient: etcdClient,
		dryRun:     dryRun,
	}, nil
}

// Run performs one complete check: load domains, resolve them sequentially
// with the configured inter-request delay, aggregate, publish. A canceled
// context yields a partial report over the domains already resolved.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Msg("Application starting")

	domains, err := a.source.Domains(ctx)
	if err != nil {
		return fmt.Errorf("failed to load domain list: %w", err)
	}
	a.logger.Info().Int("domains", len(domains)).Msg("Domain list loaded")

	results := a.resolveAll(ctx, domains)
	report := check.Aggregate(results)
	a.logger.Info().
		Int("total", report.Total).
		Int("registered", report.RegisteredCount).
		Int("unregistered", len(report.Unregistered)).
		Int("expiring", len(report.Expiring)).
		Int("special", len(report.Special)).
		Int("failed", len(report.Failed)).
		Msg("Run complete")

	if err := a.pusher.Push(results); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to push metrics")
	}

	if !report.ShouldNotify() {
		a.logger.Info().Msg("No domains need attention. Skipping notification.")
		return nil
	}
	if a.dryRun {
		a.logger.Info().Msg("Dry run. Report rendered but not sent.")
		fmt.Print(report.Render())
		return nil
	}

	if err := a.notifier.Send(ctx, report.Render()); err != nil {
		if errors.Is(err, notify.ErrNotConfigured) {
			a.logger.Info().Msg("Telegram credentials not set. Skipping notification.")
			return nil
		}
		// A notification failure does not invalidate the computed report.
		a.logger.Error().Err(err).Msg("Failed to send notification")
	}
	return nil
}

// resolveAll walks the domain list in order, pausing requestDelay between
// domains as a self-imposed rate limit on the provider. Cancellation stops
// the walk; already-resolved domains are kept.
func (a *App) resolveAll(ctx context.Context, domains []string) []check.Result {
	delay := a.cfg.Check.RequestDelayDuration()
	var results []check.Result
	for i, domain := range domains {
		if i > 0 && delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
			}
		}
		if ctx.Err() != nil {
			a.logger.Warn().
				Int("resolved", len(results)).
				Int("remaining", len(domains)-len(results)).
				Msg("Run interrupted, reporting partial results")
			break
		}
		results = append(results, a.resolver.Resolve(ctx, domain))
	}
	return results
}

func (a *App) Close() error {
	if a.etcdClient != nil {
		if err := a.etcdClient.Close(); err != nil {
			return fmt.Errorf("close etcd client: %w", err)
		}
	}
	return nil
}
