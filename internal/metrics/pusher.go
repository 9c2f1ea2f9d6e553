package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog"

	"github.com/jmallek/domainwatch/internal/check"
	"github.com/jmallek/domainwatch/internal/config"
)

// Pusher publishes one run's per-domain gauges to a Pushgateway. A one-shot
// process has nothing to scrape, so push is the only sensible direction.
type Pusher struct {
	cfg    *config.MetricsConfig
	logger zerolog.Logger
}

func NewPusher(cfg *config.MetricsConfig, logger zerolog.Logger) *Pusher {
	return &Pusher{cfg: cfg, logger: logger}
}

// Push registers fresh gauges for the given results and pushes them, replacing
// the previous run's values for the job. No-op (logged) when no Pushgateway
// is configured.
func (p *Pusher) Push(results []check.Result) error {
	if !p.cfg.Configured() {
		p.logger.Debug().Msg("Pushgateway not configured. Skipping metrics push.")
		return nil
	}

	registry := prometheus.NewRegistry()
	daysRemaining := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "domainwatch_days_remaining",
		Help: "Days until domain expiry; -1 when the provider supplied no usable expiry.",
	}, []string{"domain"})
	checkStatus := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "domainwatch_check_status",
		Help: "Set to 1 for the lifecycle category assigned to the domain in this run.",
	}, []string{"domain", "category"})
	registry.MustRegister(daysRemaining, checkStatus)

	for _, result := range results {
		days := -1
		if result.DaysRemaining != nil {
			days = *result.DaysRemaining
		}
		daysRemaining.WithLabelValues(result.Domain).Set(float64(days))
		checkStatus.WithLabelValues(result.Domain, string(result.Category)).Set(1)
	}

	if err := push.New(p.cfg.PushgatewayURL, p.cfg.JobName).Gatherer(registry).Push(); err != nil {
		return err
	}
	p.logger.Info().Int("domains", len(results)).Str("job", p.cfg.JobName).Msg("Metrics pushed")
	return nil
}
