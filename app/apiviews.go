package app

import (
	"time"

	"github.com/svetov/steamwatch/lib/models"
)

type SubscriptionView struct {
	SubscriberID int64   `json:"subscriber_id"`
	AppID        int64   `json:"app_id"`
	Name         string  `json:"name"`
	InitialPrice float64 `json:"initial_price"`

	CurrentPrice    float64 `json:"current_price"`
	CurrentDiscount int     `json:"current_discount"`
	LastCheckedAt   string  `json:"last_checked_at"`

	LastNotifiedPrice    float64 `json:"last_notified_price"`
	LastNotifiedDiscount int     `json:"last_notified_discount"`
}

func (view SubscriptionView) From(entity models.Subscription) SubscriptionView {
	return SubscriptionView{
		SubscriberID:         entity.SubscriberID,
		AppID:                entity.AppID,
		Name:                 entity.Name,
		InitialPrice:         entity.InitialPrice,
		CurrentPrice:         entity.CurrentPrice,
		CurrentDiscount:      entity.CurrentDiscount,
		LastCheckedAt:        entity.LastCheckedAt.UTC().Format(time.RFC3339),
		LastNotifiedPrice:    entity.LastNotifiedPrice,
		LastNotifiedDiscount: entity.LastNotifiedDiscount,
	}
}

type Fromable[Entity any, Repr any] interface {
	From(Entity) Repr
}

func FromMany[U Fromable[T, U], T any](elems []T) []U {
	out := make([]U, len(elems))
	for i, t := range elems {
		var u U
		out[i] = u.From(t)
	}
	return out
}
