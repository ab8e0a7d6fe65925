package lib

import (
	"context"

	"github.com/svetov/steamwatch/config"
	"github.com/svetov/steamwatch/lib/models"
	"github.com/svetov/steamwatch/lib/monitor"
	"github.com/svetov/steamwatch/lib/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Service is the subscription manager the ops API (and any future
// chat front-end) talks to.
type Service struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *store.Store
	monitor *monitor.Monitor

	*trackItem
}

func NewService(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, st *store.Store, source monitor.PriceSource, mon *monitor.Monitor) *Service {
	return &Service{
		cfg, log, st, mon,
		&trackItem{log, st, source},
	}
}

// Untrack removes one subscription, reporting whether it existed.
func (svc *Service) Untrack(ctx context.Context, subscriberID, appID int64) (bool, error) {
	if err := svc.store.RegisterSubscriber(ctx, subscriberID); err != nil {
		return false, err
	}
	return svc.store.Delete(ctx, subscriberID, appID)
}

// List returns the subscriber's tracked items. Storage order is not
// significant; callers re-sort for display if they care.
func (svc *Service) List(ctx context.Context, subscriberID int64) (models.Subscriptions, error) {
	if err := svc.store.RegisterSubscriber(ctx, subscriberID); err != nil {
		return nil, err
	}
	return svc.store.ListBySubscriber(ctx, subscriberID)
}

// CheckNow synchronously rechecks all of one subscriber's items,
// sharing the periodic sweep's fetch/decide/persist/deliver path.
func (svc *Service) CheckNow(ctx context.Context, subscriberID int64) error {
	if err := svc.store.RegisterSubscriber(ctx, subscriberID); err != nil {
		return err
	}
	return svc.monitor.CheckSubscriber(ctx, subscriberID)
}
