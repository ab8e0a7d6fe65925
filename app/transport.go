package app

import (
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewTransport is the single RoundTripper all outbound HTTP shares;
// tests swap it for a replay transport.
func NewTransport(lc fx.Lifecycle, log *zap.Logger) http.RoundTripper {
	return &transport{base: http.DefaultTransport, log: log}
}

type transport struct {
	base http.RoundTripper
	log  *zap.Logger
}

func (tpt *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := tpt.base.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		tpt.log.Sugar().Debugw("Outbound request failed",
			"host", req.URL.Host, "elapsed_msecs", int(elapsed.Milliseconds()), "err", err)
		return resp, err
	}
	tpt.log.Sugar().Debugw("Outbound request",
		"host", req.URL.Host, "status", resp.StatusCode, "elapsed_msecs", int(elapsed.Milliseconds()))
	return resp, err
}
