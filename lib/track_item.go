package lib

import (
	"context"
	"time"

	"github.com/svetov/steamwatch/lib/models"
	"github.com/svetov/steamwatch/lib/monitor"
	"github.com/svetov/steamwatch/lib/steam"
	"github.com/svetov/steamwatch/lib/store"
	"go.uber.org/zap"
)

type trackItem struct {
	log    *zap.Logger
	store  *store.Store
	source monitor.PriceSource
}

// Track adds (or replaces) one subscription from a submitted store
// link. The fresh fetch seeds initial, current and notified state
// alike, so (re)subscribing itself never fires a notification.
func (svc *trackItem) Track(ctx context.Context, subscriberID int64, link string) (*models.Subscription, error) {
	if err := svc.store.RegisterSubscriber(ctx, subscriberID); err != nil {
		return nil, err
	}

	appID, err := steam.ExtractAppID(link)
	if err != nil {
		return nil, err
	}

	info, err := svc.source.AppDetails(ctx, appID)
	if err != nil {
		return nil, err
	}

	sub := &models.Subscription{
		SubscriberID: subscriberID,
		AppID:        appID,
		Name:         info.Name,

		InitialPrice:    info.OriginalPrice,
		CurrentPrice:    info.FinalPrice,
		CurrentDiscount: info.Discount,
		LastCheckedAt:   time.Now().UTC(),

		LastNotifiedPrice:    info.FinalPrice,
		LastNotifiedDiscount: info.Discount,
	}
	if err := svc.store.Upsert(ctx, sub); err != nil {
		return nil, err
	}

	svc.log.Sugar().Infow("Tracking app",
		"subscriber_id", subscriberID, "app_id", appID, "name", info.Name, "free", info.Free)
	return sub, nil
}
