package monitor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/svetov/steamwatch/lib/decision"
	"github.com/svetov/steamwatch/lib/models"
	"github.com/svetov/steamwatch/senders"
)

// SweepPrices rechecks every subscription in the store, grouped by
// subscriber with pacing between subscribers. An error return means
// the sweep could not run at all; per-item failures are only counted.
func (m *Monitor) SweepPrices(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	runID := uuid.NewString()
	log := m.log.Sugar().With("sweep_id", runID)
	log.Info("Price sweep is waking up")

	subs, err := m.store.ListAll(ctx)
	if err != nil {
		return err
	}

	bySubscriber, order := groupBySubscriber(subs)

	metrics := &sweepMetrics{}
	for i, subscriberID := range order {
		if i > 0 {
			sleepCtx(ctx, m.cfg.SubscriberDelay)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		metrics.Add(m.checkSubscriptions(ctx, bySubscriber[subscriberID]))
	}

	if metrics.checked > 0 {
		log.Infow("Processed subscriptions", metrics.logArgs()...)
	}
	return nil
}

// CheckSubscriber is the on-demand variant of the price sweep, scoped
// to one subscriber and run synchronously with no subscriber-boundary
// delay. It shares the fetch pacing of the periodic sweep and takes
// the same mutex, so a check and a sweep never race the same baseline
// into a duplicate notification.
func (m *Monitor) CheckSubscriber(ctx context.Context, subscriberID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	subs, err := m.store.ListBySubscriber(ctx, subscriberID)
	if err != nil {
		return err
	}

	metrics := m.checkSubscriptions(ctx, subs)
	m.log.Sugar().Infow("On-demand check completed",
		append([]any{"subscriber_id", subscriberID}, metrics.logArgs()...)...)
	return nil
}

func (m *Monitor) checkSubscriptions(ctx context.Context, subs models.Subscriptions) *sweepMetrics {
	metrics := &sweepMetrics{}
	for i := range subs {
		m.checkOne(ctx, &subs[i], metrics)
	}
	return metrics
}

// checkOne runs the fetch → decide → persist → deliver unit for one
// subscription. Nothing in here may escape to abort the sweep.
func (m *Monitor) checkOne(ctx context.Context, sub *models.Subscription, metrics *sweepMetrics) {
	metrics.checked++

	if err := m.itemLimiter.Wait(ctx); err != nil {
		metrics.skipped++
		return
	}

	info, err := m.source.AppDetails(ctx, sub.AppID)
	if err != nil {
		metrics.skipped++
		m.log.Sugar().Warnw("Skipping item this round",
			"subscriber_id", sub.SubscriberID, "app_id", sub.AppID, "err", err)
		return
	}

	checkedAt := time.Now().UTC()
	if err := m.store.UpdateCurrent(ctx, sub.SubscriberID, sub.AppID, info.FinalPrice, info.Discount, checkedAt); err != nil {
		metrics.errored++
		m.log.Sugar().Errorw("Failed to persist current price",
			"subscriber_id", sub.SubscriberID, "app_id", sub.AppID, "err", err)
		return
	}

	event := decision.Decide(sub.Baseline(), info)
	if event == nil {
		metrics.unchanged++
		return
	}
	event.SubscriberID = sub.SubscriberID

	sender, ok := m.senders[senders.PlatformTelegram]
	if !ok {
		metrics.errored++
		m.log.Sugar().Errorw("No sender registered for platform", "platform", senders.PlatformTelegram)
		return
	}

	if _, err := sender.SendNotification(ctx, sub.SubscriberID, event); err != nil {
		// Delivery failure must not roll back the current-state
		// update; the unchanged baseline means we retry next cycle.
		metrics.undelivered++
		m.log.Sugar().Warnw("Failed to deliver notification",
			"subscriber_id", sub.SubscriberID, "app_id", sub.AppID, "kind", event.Kind, "err", err)
		return
	}

	if err := m.store.UpdateNotifiedBaseline(ctx, sub.SubscriberID, sub.AppID, info.FinalPrice, info.Discount); err != nil {
		metrics.errored++
		m.log.Sugar().Errorw("Failed to advance notified baseline",
			"subscriber_id", sub.SubscriberID, "app_id", sub.AppID, "err", err)
		return
	}

	metrics.notified++
	m.log.Sugar().Infow("Notified subscriber",
		"subscriber_id", sub.SubscriberID, "app_id", sub.AppID, "kind", event.Kind)
}

// groupBySubscriber splits the flat listing into per-subscriber
// slices, keeping subscriber order stable.
func groupBySubscriber(subs models.Subscriptions) (map[int64]models.Subscriptions, []int64) {
	grouped := make(map[int64]models.Subscriptions)
	order := make([]int64, 0)
	for _, sub := range subs {
		if _, seen := grouped[sub.SubscriberID]; !seen {
			order = append(order, sub.SubscriberID)
		}
		grouped[sub.SubscriberID] = append(grouped[sub.SubscriberID], sub)
	}
	return grouped, order
}
