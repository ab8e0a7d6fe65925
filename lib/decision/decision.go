package decision

import (
	"math"

	"github.com/svetov/steamwatch/lib/models"
)

// priceEpsilon is the dead-zone below which a price delta is treated
// as float noise rather than a real change. The comparison carries a
// small slack so a delta of exactly one cent stays inside the
// dead-zone despite float64 representation error.
const (
	priceEpsilon = 0.01
	epsilonSlack = 1e-9
)

// The rules form a priority chain: they are evaluated top to bottom
// and only the first match fires, so a growing discount suppresses the
// price-changed event the same fetch would otherwise produce.
var rules = []struct {
	kind    models.NotificationKind
	matches func(old models.Baseline, info *models.PriceInfo) bool
}{
	{
		kind: models.DiscountAppeared,
		matches: func(old models.Baseline, info *models.PriceInfo) bool {
			return info.Discount > 0 && old.Discount == 0
		},
	},
	{
		kind: models.DiscountIncreased,
		matches: func(old models.Baseline, info *models.PriceInfo) bool {
			return info.Discount > old.Discount && info.Discount > 0
		},
	},
	{
		kind: models.PriceChanged,
		matches: func(old models.Baseline, info *models.PriceInfo) bool {
			return math.Abs(info.FinalPrice-old.Price)-priceEpsilon > epsilonSlack
		},
	},
}

// Decide maps a last-notified baseline and a fresh fetch to at most
// one notification. Free items never notify.
func Decide(old models.Baseline, info *models.PriceInfo) *models.Notification {
	if info.Free {
		return nil
	}

	for _, rule := range rules {
		if rule.matches(old, info) {
			return &models.Notification{
				Kind:          rule.kind,
				AppID:         info.AppID,
				Name:          info.Name,
				NewPrice:      info.FinalPrice,
				OldPrice:      old.Price,
				OriginalPrice: info.OriginalPrice,
				Savings:       info.OriginalPrice - info.FinalPrice,
				Currency:      info.Currency,
				Discount:      info.Discount,
				OldDiscount:   old.Discount,
				PriceDropped:  info.FinalPrice < old.Price,
			}
		}
	}
	return nil
}
