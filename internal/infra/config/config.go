package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig describes the engine configuration.
type AppConfig struct {
	AppEnv      string `envconfig:"APP_ENV" default:"dev"`
	Port        int    `envconfig:"PORT" default:"8080"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`

	Exchange struct {
		Timezone string `envconfig:"EXCHANGE_TZ" default:"America/New_York"`
	} `envconfig:""`

	Campaigns struct {
		MarketOpenSpec   string `envconfig:"MARKET_OPEN_CRON" default:"30 9 * * 1-5"`
		MarketCloseSpec  string `envconfig:"MARKET_CLOSE_CRON" default:"0 16 * * 1-5"`
		WeeklyDigestSpec string `envconfig:"WEEKLY_DIGEST_CRON" default:"0 8 * * 0"`
	} `envconfig:""`

	Limits struct {
		PendingPerUser int `envconfig:"PENDING_PER_USER_LIMIT" default:"200"`
		HistoryCap     int `envconfig:"HISTORY_CAP" default:"1000"`
	} `envconfig:""`

	Telegram struct {
		Token string `envconfig:"TG_BOT_TOKEN"`
	} `envconfig:""`

	RedisAddr string `envconfig:"REDIS_ADDR"`

	Bridges struct {
		RedisListKey string `envconfig:"OUTBOX_LIST_KEY" default:"notification_outbox"`
		AMQPURL      string `envconfig:"AMQP_URL"`
		AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"notifications"`
	} `envconfig:""`
}

// Load reads the config from the environment.
func Load() AppConfig {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
