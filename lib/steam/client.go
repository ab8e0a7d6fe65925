package steam

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/svetov/steamwatch/config"
	"github.com/svetov/steamwatch/lib/models"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const appDetailsURL = "https://store.steampowered.com/api/appdetails/"

// ErrAppNotFound covers every upstream outcome that means "this app id
// has no usable record": non-2xx status, success=false, or the id
// missing from the response envelope.
var ErrAppNotFound = errors.New("app not found on storefront")

// TransientError wraps network, timeout and decode failures. Sweeps
// treat it the same as ErrAppNotFound (skip this round), it only
// changes what gets logged.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient storefront failure: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// Client looks up price details on the Steam storefront API.
type Client struct {
	log       *zap.Logger
	transport http.RoundTripper

	region   string
	language string
	timeout  time.Duration
	currency string
}

func NewClient(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, transport http.RoundTripper) *Client {
	return &Client{log, transport, cfg.Region, cfg.Language, cfg.FetchTimeout, regionCurrency(cfg.Region)}
}

// currencyByRegion maps storefront country codes to the currency the
// API reports for them. Unpriced items carry no price_overview, so the
// currency has to come from the configured region instead.
var currencyByRegion = map[string]string{
	"ru": "RUB",
	"us": "USD",
	"ua": "UAH",
	"kz": "KZT",
	"tr": "TRY",
	"gb": "GBP",
	"br": "BRL",
	"jp": "JPY",
	"cn": "CNY",
}

func regionCurrency(region string) string {
	if currency, ok := currencyByRegion[strings.ToLower(region)]; ok {
		return currency
	}
	return "USD"
}

// appdetails response envelope, keyed by the requested app id.
type appDetailsEntry struct {
	Success bool `json:"success"`
	Data    struct {
		Name          string `json:"name"`
		IsFree        bool   `json:"is_free"`
		PriceOverview *struct {
			Initial         int64  `json:"initial"`
			Final           int64  `json:"final"`
			DiscountPercent int    `json:"discount_percent"`
			Currency        string `json:"currency"`
		} `json:"price_overview"`
	} `json:"data"`
}

// AppDetails fetches and normalizes the price record for one app.
// Prices arrive in minor currency units and are converted to major
// units; no other rounding is applied.
func (c *Client) AppDetails(ctx context.Context, appID int64) (*models.PriceInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	key := strconv.FormatInt(appID, 10)

	var payload map[string]appDetailsEntry
	err := requests.URL(appDetailsURL).
		Param("appids", key).
		Param("cc", c.region).
		Param("l", c.language).
		Transport(c.transport).
		ToJSON(&payload).
		Fetch(ctx)
	if err != nil {
		if errors.Is(err, requests.ErrValidator) {
			// Any non-2xx status counts as not found.
			return nil, ErrAppNotFound
		}
		return nil, &TransientError{Err: err}
	}

	entry, ok := payload[key]
	if !ok || !entry.Success {
		return nil, ErrAppNotFound
	}

	data := entry.Data
	if data.PriceOverview == nil {
		// No price entry: the app is free (or unpriced), which we
		// normalize to a free item with zeroed price fields.
		return &models.PriceInfo{
			AppID:    appID,
			Name:     data.Name,
			Currency: c.currency,
			Free:     true,
		}, nil
	}

	po := data.PriceOverview
	return &models.PriceInfo{
		AppID:         appID,
		Name:          data.Name,
		OriginalPrice: float64(po.Initial) / 100,
		FinalPrice:    float64(po.Final) / 100,
		Discount:      po.DiscountPercent,
		Currency:      po.Currency,
		Free:          data.IsFree,
	}, nil
}
