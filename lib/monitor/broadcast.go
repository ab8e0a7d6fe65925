package monitor

import (
	"context"

	"github.com/svetov/steamwatch/senders"
)

// SweepBroadcast sends the configured promo payload to every known
// subscriber. Per-recipient failure is swallowed; blocked recipients
// must not starve the rest of the list.
func (m *Monitor) SweepBroadcast(ctx context.Context) error {
	ids, err := m.store.SubscriberIDs(ctx)
	if err != nil {
		return err
	}

	sender, ok := m.senders[senders.PlatformTelegram]
	if !ok {
		return nil
	}

	sent, failed := 0, 0
	for i, id := range ids {
		if i > 0 {
			sleepCtx(ctx, m.cfg.BroadcastDelay)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if _, err := sender.SendPromo(ctx, id); err != nil {
			failed++
			m.log.Sugar().Debugw("Failed to deliver promo", "subscriber_id", id, "err", err)
			continue
		}
		sent++
	}

	if sent > 0 || failed > 0 {
		m.log.Sugar().Infow("Broadcast sweep completed", "sent", sent, "failed", failed)
	}
	return nil
}
