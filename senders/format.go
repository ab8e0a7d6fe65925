package senders

import (
	"fmt"

	"github.com/svetov/steamwatch/lib/models"
)

func storeLink(appID int64) string {
	return fmt.Sprintf("https://store.steampowered.com/app/%d/", appID)
}

// FormatNotification renders one price event as a Telegram HTML
// message.
func FormatNotification(n *models.Notification) string {
	switch n.Kind {
	case models.DiscountAppeared:
		return fmt.Sprintf(
			"🔥 <b>Discount spotted!</b>\n\n🎮 %s\n💰 New price: %.2f %s\n📉 Discount: %d%%\n💵 Was: %.2f %s\n💾 You save: %.2f %s\n\n🔗 %s",
			n.Name,
			n.NewPrice, n.Currency,
			n.Discount,
			n.OriginalPrice, n.Currency,
			n.Savings, n.Currency,
			storeLink(n.AppID),
		)

	case models.DiscountIncreased:
		return fmt.Sprintf(
			"📈 <b>Discount got bigger!</b>\n\n🎮 %s\n💰 New price: %.2f %s\n📉 Discount: %d%% (was %d%%)\n💵 Full price: %.2f %s\n💾 You save: %.2f %s\n\n🔗 %s",
			n.Name,
			n.NewPrice, n.Currency,
			n.Discount, n.OldDiscount,
			n.OriginalPrice, n.Currency,
			n.Savings, n.Currency,
			storeLink(n.AppID),
		)

	default: // models.PriceChanged
		arrow, verb := "📈", "up"
		if n.PriceDropped {
			arrow, verb = "📉", "down"
		}
		delta := n.NewPrice - n.OldPrice
		if delta < 0 {
			delta = -delta
		}
		text := fmt.Sprintf(
			"%s <b>Price changed!</b>\n\n🎮 %s\n💰 New price: %.2f %s\n📊 Was: %.2f %s\n🔄 %s by %.2f %s\n",
			arrow,
			n.Name,
			n.NewPrice, n.Currency,
			n.OldPrice, n.Currency,
			verb, delta, n.Currency,
		)
		if n.Discount > 0 {
			text += fmt.Sprintf("🔥 Discount: %d%%\n", n.Discount)
		}
		return text + "\n🔗 " + storeLink(n.AppID)
	}
}
