package senders

import (
	"context"

	"github.com/svetov/steamwatch/config"
	"github.com/svetov/steamwatch/lib/models"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Sender delivers rendered payloads to one subscriber. Failures are
// recoverable by contract: callers log and move on, they never stop a
// sweep over a blocked recipient.
type Sender interface {
	SendNotification(ctx context.Context, subscriberID int64, n *models.Notification) (string, error)
	SendPromo(ctx context.Context, subscriberID int64) (string, error)
}

// PlatformTelegram keys the Telegram sender in the registry.
const PlatformTelegram = "telegram"

type Registry map[string]Sender

func NewRegistry(lc fx.Lifecycle, log *zap.Logger, cfg *config.Config) (Registry, error) {
	tg, err := newTelegramSender(log, cfg)
	if err != nil {
		return nil, err
	}
	return Registry{PlatformTelegram: tg}, nil
}
