package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/omarshaarawi/nbastats/internal/resultset"
)

type Config struct {
	StatsAPI    StatsAPI
	TelegramBot TelegramBot
	Schedule    Schedule
	HTTP        HTTP
}

type StatsAPI struct {
	BaseURL   string           `envconfig:"NBA_STATS_BASE_URL" default:"https://stats.nba.com/stats"`
	Timeout   time.Duration    `envconfig:"NBA_STATS_TIMEOUT" default:"30s"`
	UserAgent string           `envconfig:"NBA_STATS_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"`
	Output    resultset.Format `envconfig:"NBA_STATS_OUTPUT" default:"table"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

type Schedule struct {
	Cron     string `envconfig:"SCHEDULE_CRON" default:"0 9 * * *"`
	Timezone string `envconfig:"SCHEDULE_TZ" default:"America/New_York"`
}

type HTTP struct {
	Addr string `envconfig:"HTTP_ADDR" default:":8080"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
