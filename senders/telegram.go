package senders

import (
	"context"
	"errors"
	"strconv"

	"github.com/svetov/steamwatch/config"
	"github.com/svetov/steamwatch/lib/models"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// telegramSender is send-only: the bot is never started as a poller,
// inbound traffic belongs to the conversational front-end.
type telegramSender struct {
	log *zap.Logger
	cfg *config.Config
	bot *tele.Bot
}

func newTelegramSender(log *zap.Logger, cfg *config.Config) (*telegramSender, error) {
	if cfg.BotToken == "" {
		return nil, errors.New("BOT_TOKEN envvar must be populated")
	}

	bot, err := tele.NewBot(tele.Settings{Token: cfg.BotToken})
	if err != nil {
		return nil, err
	}
	return &telegramSender{log, cfg, bot}, nil
}

func (s *telegramSender) SendNotification(ctx context.Context, subscriberID int64, n *models.Notification) (string, error) {
	msg, err := s.bot.Send(
		tele.ChatID(subscriberID),
		FormatNotification(n),
		&tele.SendOptions{ParseMode: tele.ModeHTML},
	)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(msg.ID), nil
}

func (s *telegramSender) SendPromo(ctx context.Context, subscriberID int64) (string, error) {
	opts := &tele.SendOptions{ParseMode: tele.ModeHTML}
	if s.cfg.PromoURL != "" {
		opts.ReplyMarkup = &tele.ReplyMarkup{
			InlineKeyboard: [][]tele.InlineButton{{
				{Text: s.cfg.PromoButtonText, URL: s.cfg.PromoURL},
			}},
		}
	}

	msg, err := s.bot.Send(tele.ChatID(subscriberID), s.cfg.PromoText, opts)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(msg.ID), nil
}
