package steam

import (
	"context"
	"testing"
	"time"

	"github.com/carlmjohnson/requests/reqtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/svetov/steamwatch/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, rawResponse string) *Client {
	t.Helper()
	cfg := &config.Config{Region: "ru", Language: "russian", FetchTimeout: 10 * time.Second}
	return NewClient(fxtest.NewLifecycle(t), cfg, zap.NewNop(), reqtest.ReplayString(rawResponse))
}

func jsonResponse(body string) string {
	return "HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n" + body
}

func TestAppDetails_Priced(t *testing.T) {
	client := newTestClient(t, jsonResponse(`{
		"730": {
			"success": true,
			"data": {
				"name": "Counter-Strike 2",
				"is_free": false,
				"price_overview": {
					"initial": 19900,
					"final": 9950,
					"discount_percent": 50,
					"currency": "RUB"
				}
			}
		}
	}`))

	info, err := client.AppDetails(context.Background(), 730)
	require.NoError(t, err)
	assert.Equal(t, "Counter-Strike 2", info.Name)
	assert.Equal(t, 199.0, info.OriginalPrice)
	assert.Equal(t, 99.5, info.FinalPrice)
	assert.Equal(t, 50, info.Discount)
	assert.Equal(t, "RUB", info.Currency)
	assert.False(t, info.Free)
}

func TestAppDetails_NoPriceOverviewIsFree(t *testing.T) {
	client := newTestClient(t, jsonResponse(`{
		"570": {
			"success": true,
			"data": {"name": "Dota 2", "is_free": true}
		}
	}`))

	info, err := client.AppDetails(context.Background(), 570)
	require.NoError(t, err)
	assert.Equal(t, "Dota 2", info.Name)
	assert.True(t, info.Free)
	assert.Zero(t, info.FinalPrice)
	assert.Zero(t, info.Discount)
	assert.Equal(t, "RUB", info.Currency)
}

func TestAppDetails_UnpricedCurrencyFollowsRegion(t *testing.T) {
	cfg := &config.Config{Region: "us", Language: "english", FetchTimeout: 10 * time.Second}
	client := NewClient(fxtest.NewLifecycle(t), cfg, zap.NewNop(), reqtest.ReplayString(jsonResponse(`{
		"570": {"success": true, "data": {"name": "Dota 2", "is_free": true}}
	}`)))

	info, err := client.AppDetails(context.Background(), 570)
	require.NoError(t, err)
	assert.Equal(t, "USD", info.Currency)
}

func TestAppDetails_UpstreamFailure(t *testing.T) {
	client := newTestClient(t, jsonResponse(`{"999999": {"success": false}}`))

	_, err := client.AppDetails(context.Background(), 999999)
	assert.ErrorIs(t, err, ErrAppNotFound)
}

func TestAppDetails_MissingEnvelopeKey(t *testing.T) {
	client := newTestClient(t, jsonResponse(`{}`))

	_, err := client.AppDetails(context.Background(), 730)
	assert.ErrorIs(t, err, ErrAppNotFound)
}

func TestAppDetails_Non200(t *testing.T) {
	client := newTestClient(t, "HTTP/1.1 502 Bad Gateway\r\nContent-Type: text/html\r\n\r\nbad gateway")

	_, err := client.AppDetails(context.Background(), 730)
	assert.ErrorIs(t, err, ErrAppNotFound)
}

func TestAppDetails_MalformedPayloadIsTransient(t *testing.T) {
	client := newTestClient(t, jsonResponse(`{"730": not json`))

	_, err := client.AppDetails(context.Background(), 730)
	require.Error(t, err)

	var transient *TransientError
	assert.ErrorAs(t, err, &transient)
}
