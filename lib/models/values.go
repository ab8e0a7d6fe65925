package models

// PriceInfo is the normalized result of one storefront lookup. Apps
// without a price entry come back as free with zeroed price fields.
type PriceInfo struct {
	AppID         int64
	Name          string
	OriginalPrice float64
	FinalPrice    float64
	Discount      int
	Currency      string
	Free          bool
}

type NotificationKind string

const (
	DiscountAppeared  NotificationKind = "discount-appeared"
	DiscountIncreased NotificationKind = "discount-increased"
	PriceChanged      NotificationKind = "price-changed"
)

// Notification is one decided price event, ready for rendering by a
// sender. At most one is produced per fetch.
type Notification struct {
	Kind         NotificationKind
	SubscriberID int64
	AppID        int64
	Name         string

	NewPrice      float64
	OldPrice      float64
	OriginalPrice float64
	Savings       float64
	Currency      string

	Discount    int
	OldDiscount int

	// PriceDropped disambiguates direction for PriceChanged events.
	PriceDropped bool
}
