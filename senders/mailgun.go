package senders

import (
	"context"
	"net/http"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/svetov/steamwatch/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// OpsAlerter notifies the operator about sweep-level failures, which
// never reach subscribers.
type OpsAlerter interface {
	Alert(ctx context.Context, subject, body string) error
}

func NewOpsAlerter(lc fx.Lifecycle, log *zap.Logger, cfg *config.Config, transport http.RoundTripper) OpsAlerter {
	if cfg.Mailgun.Domain == "" || cfg.AdminEmail == "" {
		log.Sugar().Info("Ops alerting is disabled since no Mailgun domain or admin email is defined")
		return NopAlerter{}
	}
	return &mailgunAlerter{log, cfg, transport}
}

type mailgunAlerter struct {
	log       *zap.Logger
	cfg       *config.Config
	transport http.RoundTripper
}

func (a *mailgunAlerter) Alert(ctx context.Context, subject, body string) error {
	mg := mailgun.NewMailgun(a.cfg.Mailgun.Domain, a.cfg.Mailgun.APIKey)
	mg.Client().Transport = a.transport

	message := mg.NewMessage(a.cfg.Mailgun.SenderFrom, subject, body, a.cfg.AdminEmail)

	timeout := time.Duration(a.cfg.Mailgun.TimeoutSecs) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, id, err := mg.Send(ctx, message)
	if err != nil {
		a.log.Sugar().Infow("Failed to send ops alert", "err", err)
	} else {
		a.log.Sugar().Infow("Sent ops alert to "+a.cfg.AdminEmail, "message_id", id)
	}
	return err
}

// NopAlerter drops alerts. Used when alerting is unconfigured and in
// tests.
type NopAlerter struct{}

func (NopAlerter) Alert(ctx context.Context, subject, body string) error { return nil }
