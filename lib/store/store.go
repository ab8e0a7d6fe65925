package store

import (
	"context"
	"errors"
	"time"

	"github.com/svetov/steamwatch/lib/models"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store owns all reads and writes of subscribers and subscriptions.
// Single-row writes are single statements, so the (subscriber, app)
// primary key can never end up duplicated by concurrent writers.
type Store struct {
	log *zap.Logger
	db  *gorm.DB
}

func NewStore(lc fx.Lifecycle, log *zap.Logger, db *gorm.DB) *Store {
	return &Store{log, db}
}

// Upsert inserts the subscription, replacing any existing row with the
// same (subscriber, app) key wholesale.
func (s *Store) Upsert(ctx context.Context, sub *models.Subscription) error {
	tx := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(sub)
	return tx.Error
}

func (s *Store) ListBySubscriber(ctx context.Context, subscriberID int64) (models.Subscriptions, error) {
	var subs models.Subscriptions
	tx := s.db.WithContext(ctx).
		Where("subscriber_id = ?", subscriberID).
		Find(&subs)
	if err := tx.Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *Store) ListAll(ctx context.Context) (models.Subscriptions, error) {
	var subs models.Subscriptions
	tx := s.db.WithContext(ctx).
		Order("subscriber_id").
		Find(&subs)
	if err := tx.Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// Delete removes one subscription, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, subscriberID, appID int64) (bool, error) {
	tx := s.db.WithContext(ctx).
		Where("subscriber_id = ? AND app_id = ?", subscriberID, appID).
		Delete(&models.Subscription{})
	if err := tx.Error; err != nil {
		return false, err
	}
	return tx.RowsAffected > 0, nil
}

// UpdateCurrent records the outcome of a fetch. It runs on every
// successful recheck, whether or not a notification fired.
func (s *Store) UpdateCurrent(ctx context.Context, subscriberID, appID int64, price float64, discount int, checkedAt time.Time) error {
	tx := s.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("subscriber_id = ? AND app_id = ?", subscriberID, appID).
		Updates(map[string]any{
			"current_price":    price,
			"current_discount": discount,
			"last_checked_at":  checkedAt,
		})
	return tx.Error
}

// UpdateNotifiedBaseline advances the last-notified state. Called only
// after a notification was delivered.
func (s *Store) UpdateNotifiedBaseline(ctx context.Context, subscriberID, appID int64, price float64, discount int) error {
	tx := s.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("subscriber_id = ? AND app_id = ?", subscriberID, appID).
		Updates(map[string]any{
			"last_notified_price":    price,
			"last_notified_discount": discount,
		})
	return tx.Error
}

// RegisterSubscriber is idempotent: first-seen is written once, and
// last-active refreshes on every call.
func (s *Store) RegisterSubscriber(ctx context.Context, subscriberID int64) error {
	now := time.Now().UTC()

	tx := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Subscriber{ID: subscriberID, FirstSeen: now, LastActive: now})
	if err := tx.Error; err != nil {
		return err
	}

	tx = s.db.WithContext(ctx).
		Model(&models.Subscriber{}).
		Where("id = ?", subscriberID).
		Update("last_active", now)
	return tx.Error
}

func (s *Store) GetSubscriber(ctx context.Context, subscriberID int64) (*models.Subscriber, error) {
	sub := &models.Subscriber{}
	tx := s.db.WithContext(ctx).Where("id = ?", subscriberID).First(sub)
	if err := tx.Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Store) SubscriberIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	tx := s.db.WithContext(ctx).
		Model(&models.Subscriber{}).
		Order("id").
		Pluck("id", &ids)
	if err := tx.Error; err != nil {
		return nil, err
	}
	return ids, nil
}
