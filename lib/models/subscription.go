package models

import "time"

// Subscription is one (subscriber, app) tracking record. The current
// fields follow every fetch; the notified fields only advance when a
// notification was actually delivered, and are the baseline the next
// decision is made against.
type Subscription struct {
	SubscriberID int64 `gorm:"primaryKey;autoIncrement:false"`
	AppID        int64 `gorm:"primaryKey;autoIncrement:false"`

	Name            string
	InitialPrice    float64
	CurrentPrice    float64
	CurrentDiscount int
	LastCheckedAt   time.Time

	LastNotifiedPrice    float64
	LastNotifiedDiscount int
}

type Subscriptions []Subscription

// Baseline is the last-notified price state a fresh fetch is compared
// against.
type Baseline struct {
	Price    float64
	Discount int
}

// Baseline returns the subscription's last-notified state.
func (s *Subscription) Baseline() Baseline {
	return Baseline{Price: s.LastNotifiedPrice, Discount: s.LastNotifiedDiscount}
}
