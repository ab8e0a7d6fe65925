package senders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/svetov/steamwatch/lib/models"
)

func TestFormatNotification_DiscountAppeared(t *testing.T) {
	text := FormatNotification(&models.Notification{
		Kind:          models.DiscountAppeared,
		AppID:         730,
		Name:          "Counter-Strike 2",
		NewPrice:      99.5,
		OriginalPrice: 199,
		Savings:       99.5,
		Discount:      50,
		Currency:      "RUB",
	})

	assert.Contains(t, text, "Counter-Strike 2")
	assert.Contains(t, text, "99.50 RUB")
	assert.Contains(t, text, "50%")
	assert.Contains(t, text, "https://store.steampowered.com/app/730/")
}

func TestFormatNotification_DiscountIncreased(t *testing.T) {
	text := FormatNotification(&models.Notification{
		Kind:        models.DiscountIncreased,
		AppID:       730,
		Name:        "Counter-Strike 2",
		NewPrice:    79.6,
		Discount:    60,
		OldDiscount: 50,
		Currency:    "RUB",
	})

	assert.Contains(t, text, "60%")
	assert.Contains(t, text, "was 50%")
}

func TestFormatNotification_PriceChangedDirection(t *testing.T) {
	drop := FormatNotification(&models.Notification{
		Kind:         models.PriceChanged,
		AppID:        730,
		Name:         "Counter-Strike 2",
		NewPrice:     90,
		OldPrice:     100,
		Currency:     "RUB",
		PriceDropped: true,
	})
	assert.Contains(t, drop, "down by 10.00 RUB")

	rise := FormatNotification(&models.Notification{
		Kind:     models.PriceChanged,
		AppID:    730,
		Name:     "Counter-Strike 2",
		NewPrice: 110,
		OldPrice: 100,
		Currency: "RUB",
	})
	assert.Contains(t, rise, "up by 10.00 RUB")
}
