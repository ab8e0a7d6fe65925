package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/svetov/steamwatch/config"
	"github.com/svetov/steamwatch/lib/models"
	"github.com/svetov/steamwatch/lib/store"
	"github.com/svetov/steamwatch/senders"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// PriceSource is the storefront lookup the monitor polls against.
type PriceSource interface {
	AppDetails(ctx context.Context, appID int64) (*models.PriceInfo, error)
}

// Monitor runs the two periodic sweeps: price rechecks over every
// subscription, and promo broadcasts to every known subscriber. Both
// loops live for the whole process and only stop scheduling new work
// on shutdown; every per-item failure is contained to that item.
type Monitor struct {
	log     *zap.Logger
	cfg     *config.Config
	store   *store.Store
	source  PriceSource
	senders senders.Registry
	alerter senders.OpsAlerter

	// itemLimiter paces storefront fetches. It is shared between the
	// periodic sweep and on-demand checks so the two can never combine
	// into a burst the storefront would throttle.
	itemLimiter *rate.Limiter

	mu     sync.Mutex
	cancel context.CancelFunc
}

func New(
	lc fx.Lifecycle,
	log *zap.Logger,
	cfg *config.Config,
	st *store.Store,
	source PriceSource,
	registry senders.Registry,
	alerter senders.OpsAlerter,
) *Monitor {
	m := &Monitor{
		log:         log,
		cfg:         cfg,
		store:       st,
		source:      source,
		senders:     registry,
		alerter:     alerter,
		itemLimiter: rate.NewLimiter(rate.Every(cfg.ItemDelay), 1),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			m.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Sugar().Info("Trying to stop monitor")
			m.Stop()
			return nil
		},
	})

	return m
}

func (m *Monitor) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	go m.runPriceSweeps(ctx)
	go m.runBroadcasts(ctx)
}

func (m *Monitor) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	// Wait for an in-flight sweep to reach its next yield point.
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log.Sugar().Info("Monitor stopped")
}

func (m *Monitor) runPriceSweeps(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case start := <-ticker.C:
			if err := m.SweepPrices(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					// Shutdown interrupted the sweep; nothing to page about.
					return
				}
				m.log.Sugar().Errorw("Price sweep failed", "err", err)
				m.alert(ctx, "steamwatch: price sweep failed", err.Error())
				sleepCtx(ctx, m.cfg.SweepBackoff)
				continue
			}
			elapsed := time.Now().UTC().Sub(start.UTC())
			m.log.Sugar().Infow("Price sweep completed", "elapsed_msecs", int(elapsed.Milliseconds()))
		}
	}
}

func (m *Monitor) runBroadcasts(ctx context.Context) {
	if m.cfg.PromoText == "" {
		m.log.Sugar().Info("Broadcast sweep is disabled since no promo text is defined")
		return
	}

	ticker := time.NewTicker(m.cfg.AdInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if err := m.SweepBroadcast(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				m.log.Sugar().Errorw("Broadcast sweep failed", "err", err)
				sleepCtx(ctx, m.cfg.SweepBackoff)
			}
		}
	}
}

func (m *Monitor) alert(ctx context.Context, subject, body string) {
	if err := m.alerter.Alert(ctx, subject, body); err != nil {
		m.log.Sugar().Warnw("Failed to deliver ops alert", "err", err)
	}
}

// sleepCtx sleeps for d unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
