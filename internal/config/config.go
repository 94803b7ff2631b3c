package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jwalitptl/caresync-api/internal/model"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Log           LogConfig           `mapstructure:"log"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Reminders     RemindersConfig     `mapstructure:"reminders"`
	AI            AIConfig            `mapstructure:"ai"`
	Monitoring    MonitoringConfig    `mapstructure:"monitoring"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
	MaxBodyBytes   int64    `mapstructure:"max_body_bytes"`
	RateLimit      struct {
		Enabled           bool    `mapstructure:"enabled"`
		RequestsPerSecond float64 `mapstructure:"requests_per_second"`
		Burst             int     `mapstructure:"burst"`
	} `mapstructure:"rate_limit"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type NotificationsConfig struct {
	model.ChannelSettings `mapstructure:",squash"`
	Email                 EmailConfig `mapstructure:"email"`
}

type EmailConfig struct {
	// Provider is smtp or sendgrid.
	Provider       string `mapstructure:"provider"`
	Address        string `mapstructure:"address"`
	Password       string `mapstructure:"password"`
	SMTPServer     string `mapstructure:"smtp_server"`
	SMTPPort       int    `mapstructure:"smtp_port"`
	SendGridAPIKey string `mapstructure:"sendgrid_api_key"`
	// Recipient defaults to Address.
	Recipient string `mapstructure:"recipient"`
	FromName  string `mapstructure:"from_name"`
}

type RemindersConfig struct {
	SuppressRepeats bool `mapstructure:"suppress_repeats"`
}

type AIConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	Model           string        `mapstructure:"model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
	SummaryCacheTTL time.Duration `mapstructure:"summary_cache_ttl"`
}

// Enabled reports whether a real text-generation backend is configured.
func (c AIConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

type MonitoringConfig struct {
	PrometheusEnabled bool   `mapstructure:"prometheus_enabled"`
	Namespace         string `mapstructure:"namespace"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.requests_per_second", 20)
	v.SetDefault("server.rate_limit.burst", 40)

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", "caresync.db")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("notifications.email_enabled", false)
	v.SetDefault("notifications.desktop_enabled", false)
	v.SetDefault("notifications.mobile_enabled", false)
	v.SetDefault("notifications.email.provider", "smtp")
	v.SetDefault("notifications.email.smtp_server", "smtp.gmail.com")
	v.SetDefault("notifications.email.smtp_port", 587)
	v.SetDefault("notifications.email.from_name", "CareSync")
	// secrets have empty defaults so AutomaticEnv can override them
	v.SetDefault("notifications.email.address", "")
	v.SetDefault("notifications.email.password", "")
	v.SetDefault("notifications.email.sendgrid_api_key", "")
	v.SetDefault("notifications.email.recipient", "")

	v.SetDefault("reminders.suppress_repeats", false)

	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-4o")
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.max_tokens", 300)
	v.SetDefault("ai.timeout", 30*time.Second)
	v.SetDefault("ai.summary_cache_ttl", 10*time.Minute)

	v.SetDefault("monitoring.prometheus_enabled", true)
	v.SetDefault("monitoring.namespace", "caresync")
}

// LoadConfig reads config.yaml from . or ./config when present, then applies
// CARESYNC_* environment overrides (e.g. CARESYNC_AI_API_KEY).
func LoadConfig() (*Config, error) {
	return Load(viper.New(), "")
}

// Load reads configuration into v. An explicit file overrides the search paths.
func Load(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("caresync")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
