package main

import (
	"net/http"
	"os"
	"time"

	"github.com/svetov/steamwatch/app"
	"github.com/svetov/steamwatch/config"
	"github.com/svetov/steamwatch/lib"
	"github.com/svetov/steamwatch/lib/monitor"
	"github.com/svetov/steamwatch/lib/steam"
	"github.com/svetov/steamwatch/lib/store"
	"github.com/svetov/steamwatch/senders"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger() (*zap.Logger, error) {
	switch os.Getenv("ENVIRONMENT") {
	default:
		return zap.NewDevelopment()

	case "production":
		logCfg := zap.NewProductionConfig()
		logCfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			t = t.UTC()
			zapcore.ISO8601TimeEncoder(t, enc)
		}
		return logCfg.Build()
	}
}

func main() {
	fx.New(
		fx.Provide(config.NewConfig),
		fx.Provide(NewLogger),

		fx.Provide(app.NewDatabase),
		fx.Provide(app.NewTransport),
		fx.Provide(store.NewStore),
		fx.Provide(steam.NewClient),
		fx.Provide(func(c *steam.Client) monitor.PriceSource { return c }),

		fx.Provide(senders.NewRegistry),
		fx.Provide(senders.NewOpsAlerter),

		fx.Provide(monitor.New),
		fx.Provide(lib.NewService),
		fx.Provide(app.NewAPI),

		fx.Invoke(func(*http.Server) {}),
		fx.Invoke(func(*monitor.Monitor) {}),
	).Run()
}
