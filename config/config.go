package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Config struct {
	Env            string `env:"ENVIRONMENT"`
	BasicAuthCreds string `env:"BASIC_AUTH_CREDS"`
	ServerPort     int    `env:"SERVER_PORT" envDefault:"8080"`
	DBPath         string `env:"DB_PATH" envDefault:"steamwatch.sqlite"`

	BotToken string `env:"BOT_TOKEN"`
	Region   string `env:"STEAM_REGION" envDefault:"ru"`
	Language string `env:"STEAM_LANGUAGE" envDefault:"russian"`

	CheckInterval   time.Duration `env:"CHECK_INTERVAL" envDefault:"3600s"`
	AdInterval      time.Duration `env:"AD_INTERVAL" envDefault:"600s"`
	ItemDelay       time.Duration `env:"ITEM_DELAY" envDefault:"2s"`
	SubscriberDelay time.Duration `env:"SUBSCRIBER_DELAY" envDefault:"5s"`
	BroadcastDelay  time.Duration `env:"BROADCAST_DELAY" envDefault:"1s"`
	SweepBackoff    time.Duration `env:"SWEEP_BACKOFF" envDefault:"60s"`
	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`

	PromoText       string `env:"PROMO_TEXT"`
	PromoURL        string `env:"PROMO_URL"`
	PromoButtonText string `env:"PROMO_BUTTON_TEXT" envDefault:"Open offer"`

	AdminEmail string `env:"ADMIN_EMAIL"`
	Mailgun    struct {
		Domain      string `env:"MAILGUN_DOMAIN"`
		APIKey      string `env:"MAILGUN_API_KEY"`
		SenderFrom  string `env:"MAILGUN_SENDER_FROM"`
		TimeoutSecs int    `env:"MAILGUN_TIMEOUT_SECS" envDefault:"10"`
	}

	log   *zap.Logger
	creds map[string]string
}

func NewConfig(lc fx.Lifecycle, log *zap.Logger) *Config {
	cfg := &Config{log: log}
	if err := env.Parse(cfg); err != nil {
		log.Sugar().Panicf("failed to parse environment: %v", err)
	}

	creds, err := cfg.parseCreds()
	if err != nil {
		cfg.log.Sugar().Panic(err)
	}
	cfg.creds = creds

	return cfg
}

func (cfg *Config) GetCreds() map[string]string {
	return cfg.creds
}

func (cfg *Config) parseCreds() (map[string]string, error) {
	if cfg.BasicAuthCreds == "" {
		// Empty creds leave basic auth disabled on the ops API.
		return nil, nil
	}

	result := make(map[string]string)
	for _, cred := range strings.Split(cfg.BasicAuthCreds, ",") {
		userPass := strings.Split(cred, ":")
		if len(userPass) != 2 {
			return nil, fmt.Errorf("failed to parse '%s', each credential should be delimited by a colon -- user1:pass1,user2:pass2", cred)
		}

		user, pass := userPass[0], userPass[1]
		result[strings.Trim(user, " ")] = strings.Trim(pass, " ")
	}

	return result, nil
}
