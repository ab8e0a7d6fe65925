package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/svetov/steamwatch/lib/models"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Subscriber{}, &models.Subscription{}))

	return NewStore(fxtest.NewLifecycle(t), zap.NewNop(), db)
}

func testSubscription(subscriberID, appID int64) *models.Subscription {
	return &models.Subscription{
		SubscriberID:         subscriberID,
		AppID:                appID,
		Name:                 "Some Game",
		InitialPrice:         100,
		CurrentPrice:         100,
		CurrentDiscount:      0,
		LastCheckedAt:        time.Now().UTC(),
		LastNotifiedPrice:    100,
		LastNotifiedDiscount: 0,
	}
}

func TestUpsert_ReplacesExistingRow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Upsert(ctx, testSubscription(1, 730)))

	replacement := testSubscription(1, 730)
	replacement.CurrentPrice = 80
	replacement.CurrentDiscount = 20
	replacement.LastNotifiedPrice = 80
	replacement.LastNotifiedDiscount = 20
	require.NoError(t, s.Upsert(ctx, replacement))

	subs, err := s.ListBySubscriber(ctx, 1)
	require.NoError(t, err)
	require.Len(t, subs, 1, "(subscriber, app) must stay unique across re-upserts")
	assert.Equal(t, 80.0, subs[0].CurrentPrice)
	assert.Equal(t, 20, subs[0].CurrentDiscount)
	assert.Equal(t, 80.0, subs[0].LastNotifiedPrice)
	assert.Equal(t, 20, subs[0].LastNotifiedDiscount)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Upsert(ctx, testSubscription(1, 730)))
	require.NoError(t, s.Upsert(ctx, testSubscription(1, 570)))

	found, err := s.Delete(ctx, 1, 730)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.Delete(ctx, 1, 730)
	require.NoError(t, err)
	assert.False(t, found, "second delete should report not found")

	subs, err := s.ListBySubscriber(ctx, 1)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, int64(570), subs[0].AppID)
}

func TestUpdateCurrent_LeavesBaselineAlone(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Upsert(ctx, testSubscription(1, 730)))

	checkedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.UpdateCurrent(ctx, 1, 730, 75, 25, checkedAt))

	subs, err := s.ListBySubscriber(ctx, 1)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, 75.0, subs[0].CurrentPrice)
	assert.Equal(t, 25, subs[0].CurrentDiscount)
	assert.True(t, subs[0].LastCheckedAt.Equal(checkedAt))
	assert.Equal(t, 100.0, subs[0].LastNotifiedPrice, "baseline must not move on a recheck")
	assert.Equal(t, 0, subs[0].LastNotifiedDiscount)
}

func TestUpdateNotifiedBaseline(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Upsert(ctx, testSubscription(1, 730)))
	require.NoError(t, s.UpdateNotifiedBaseline(ctx, 1, 730, 75, 25))

	subs, err := s.ListBySubscriber(ctx, 1)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, 75.0, subs[0].LastNotifiedPrice)
	assert.Equal(t, 25, subs[0].LastNotifiedDiscount)
	assert.Equal(t, 100.0, subs[0].CurrentPrice, "current fields are not the baseline's business")
}

func TestRegisterSubscriber_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.RegisterSubscriber(ctx, 42))
	first, err := s.GetSubscriber(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, first)

	require.NoError(t, s.RegisterSubscriber(ctx, 42))
	second, err := s.GetSubscriber(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.True(t, second.FirstSeen.Equal(first.FirstSeen), "first-seen is written once")
	assert.False(t, second.LastActive.Before(first.LastActive))

	ids, err := s.SubscriberIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, ids)
}

func TestListAll_OrderedBySubscriber(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Upsert(ctx, testSubscription(2, 730)))
	require.NoError(t, s.Upsert(ctx, testSubscription(1, 570)))
	require.NoError(t, s.Upsert(ctx, testSubscription(1, 730)))

	subs, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, int64(1), subs[0].SubscriberID)
	assert.Equal(t, int64(1), subs[1].SubscriberID)
	assert.Equal(t, int64(2), subs[2].SubscriberID)
}
