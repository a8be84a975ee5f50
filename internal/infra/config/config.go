package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"homework_status_bot/internal/infra/practicum"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken      string
	TelegramToken       string
	TelegramChatIDRaw   string // as read from CHAT_ID, checked by CheckSecrets
	TelegramChatID      int64
	PracticumEndpoint   string
	PollSchedule        string // cron spec or descriptor, e.g. "@every 10m"
	RequestTimeout      time.Duration
	NotifyRatePerMinute int
	DatabaseURL         string // optional, enables the delivery journal
	LogLevel            string
	Environment         string
}

// Secret is a required credential checked before the bot starts.
type Secret struct {
	Name  string
	Value string
}

// Load reads configuration from environment variables and .env file (if present).
// Missing secrets are not an error here; they are reported by CheckSecrets.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{
		PracticumToken:    os.Getenv("PRACTICUM_TOKEN"),
		TelegramToken:     os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatIDRaw: strings.TrimSpace(os.Getenv("CHAT_ID")),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
	}
	var err error

	if cfg.TelegramChatIDRaw != "" {
		cfg.TelegramChatID, err = strconv.ParseInt(cfg.TelegramChatIDRaw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid CHAT_ID: %w", err)
		}
	}

	cfg.PracticumEndpoint = os.Getenv("PRACTICUM_ENDPOINT")
	if cfg.PracticumEndpoint == "" {
		cfg.PracticumEndpoint = practicum.DefaultEndpoint
	}

	cfg.PollSchedule = os.Getenv("POLL_SCHEDULE")
	if cfg.PollSchedule == "" {
		cfg.PollSchedule = "@every 10m" // 600 seconds between cycles
	}

	cfg.RequestTimeout = 30 * time.Second
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		cfg.RequestTimeout, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
		if cfg.RequestTimeout <= 0 {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: must be positive, got %s", v)
		}
	}

	cfg.NotifyRatePerMinute = 20
	if v := os.Getenv("NOTIFY_RATE_PER_MINUTE"); v != "" {
		cfg.NotifyRatePerMinute, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid NOTIFY_RATE_PER_MINUTE: %w", err)
		}
		if cfg.NotifyRatePerMinute <= 0 {
			return nil, fmt.Errorf("invalid NOTIFY_RATE_PER_MINUTE: must be positive, got %d", cfg.NotifyRatePerMinute)
		}
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}

// Secrets lists the credentials the bot cannot run without, in reporting order.
func (c *AppConfig) Secrets() []Secret {
	return []Secret{
		{Name: "PRACTICUM_TOKEN", Value: c.PracticumToken},
		{Name: "TELEGRAM_TOKEN", Value: c.TelegramToken},
		{Name: "TELEGRAM_CHAT_ID", Value: c.TelegramChatIDRaw},
	}
}

// MissingSecrets returns the names of empty secrets.
func MissingSecrets(secrets []Secret) []string {
	var missing []string
	for _, s := range secrets {
		if strings.TrimSpace(s.Value) == "" {
			missing = append(missing, s.Name)
		}
	}
	return missing
}

// CheckSecrets logs every missing secret at critical (fatal) level and then
// terminates the process through log.Exit. It returns only if nothing is missing.
func CheckSecrets(log *logrus.Logger, secrets []Secret) {
	missing := MissingSecrets(secrets)
	if len(missing) > 0 && !log.IsLevelEnabled(logrus.FatalLevel) {
		// The process is about to exit; the reason must reach the log whatever LOG_LEVEL says.
		log.SetLevel(logrus.FatalLevel)
	}
	for _, name := range missing {
		log.WithField("variable", name).Log(logrus.FatalLevel, "Required environment variable is missing: "+name)
	}
	if len(missing) > 0 {
		log.Exit(1)
	}
}
