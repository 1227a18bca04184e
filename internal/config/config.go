package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Postgres Postgres
	Redis    Redis
	Queue    Queue
	Cache    Cache
	Bot      Bot
}

type App struct {
	Name           string `env:"APP_NAME" envDefault:"gift-ledger"`
	Version        string `env:"APP_VERSION" envDefault:"dev"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"text"`
	ProbeAddress   string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
	MetricsAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
}

type HTTP struct {
	ListenAddress     string        `env:"HTTP_LISTEN_ADDRESS" envDefault:":5000"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	LogFieldMaxLen    int           `env:"HTTP_LOG_FIELD_MAX_LEN" envDefault:"4096"`
}

type Queue struct {
	Name            string        `env:"QUEUE_NAME" envDefault:"gifts"`
	Concurrency     int           `env:"QUEUE_CONCURRENCY" envDefault:"4"`
	MaxRetry        int           `env:"QUEUE_MAX_RETRY" envDefault:"10"`
	ShutdownTimeout time.Duration `env:"QUEUE_SHUTDOWN_TIMEOUT" envDefault:"8s"`
	// SweepSchedule - cron-выражение для повторной публикации неучтенных подарков.
	SweepSchedule string `env:"QUEUE_SWEEP_SCHEDULE" envDefault:"@every 1m"`
	SweepBatch    int    `env:"QUEUE_SWEEP_BATCH" envDefault:"100"`
}

type Cache struct {
	GiftListTTL time.Duration `env:"CACHE_GIFT_LIST_TTL" envDefault:"30s"`
}

// Bot необязателен. Token и ChatID включают уведомления о завершении,
// Token и AdminID включают команды оператора.
type Bot struct {
	Token       string `env:"BOT_TOKEN" json:"-"`
	ChatID      int64  `env:"BOT_CHAT_ID"`
	AdminID     int64  `env:"BOT_ADMIN_ID"`
	PollTimeout int    `env:"BOT_POLL_TIMEOUT" envDefault:"30"`
}

func (b Bot) Enabled() bool {
	return b.Token != "" && b.ChatID != 0
}

func (b Bot) CommandsEnabled() bool {
	return b.Token != "" && b.AdminID != 0
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
