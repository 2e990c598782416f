package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 儲存 HTTP API 及外部相依的執行設定。
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	DB       DBConfig       `yaml:"db"`
	Auth     AuthConfig     `yaml:"auth"`
	Notifier NotifierConfig `yaml:"notifier"`
	Binance  BinanceConfig  `yaml:"binance"`
	Jobs     JobsConfig     `yaml:"jobs"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type DBConfig struct {
	DSN          string        `yaml:"dsn"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	MaxIdleTime  time.Duration `yaml:"max_idle_time"`
}

type AuthConfig struct {
	TokenTTL time.Duration `yaml:"token_ttl"`
	Secret   string        `yaml:"secret"`
}

type NotifierConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Email    EmailConfig    `yaml:"email"`
}

type TelegramConfig struct {
	Token string `yaml:"token"`
}

type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Account  string `yaml:"account"`
	Password string `yaml:"password"`
	Subject  string `yaml:"subject"`
}

type BinanceConfig struct {
	BaseURL string `yaml:"base_url"`
}

type JobsConfig struct {
	Disabled              bool          `yaml:"disabled"`
	PriceRefreshInterval  time.Duration `yaml:"price_refresh_interval"`
	AlertDispatchInterval time.Duration `yaml:"alert_dispatch_interval"`
}

// LoadFromFile 從 YAML 組態檔載入設定。
func LoadFromFile(path string) (Config, error) {
	// 嘗試載入 .env 檔案（如果存在）
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg = applyDefaults(cfg)
	cfg = applyEnv(cfg)
	return cfg, nil
}

func applyDefaults(cfg Config) Config {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.DB.MaxOpenConns == 0 {
		cfg.DB.MaxOpenConns = 5
	}
	if cfg.DB.MaxIdleConns == 0 {
		cfg.DB.MaxIdleConns = 2
	}
	if cfg.DB.MaxIdleTime == 0 {
		cfg.DB.MaxIdleTime = 15 * time.Minute
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 30 * time.Minute
	}
	if cfg.Auth.Secret == "" {
		cfg.Auth.Secret = "dev-secret-change-me"
	}
	if cfg.Notifier.Email.Port == 0 {
		cfg.Notifier.Email.Port = 465
	}
	if cfg.Notifier.Email.Subject == "" {
		cfg.Notifier.Email.Subject = "Crypto alert!"
	}
	if cfg.Binance.BaseURL == "" {
		cfg.Binance.BaseURL = "https://api.binance.com"
	}
	if cfg.Jobs.PriceRefreshInterval == 0 {
		cfg.Jobs.PriceRefreshInterval = time.Minute
	}
	if cfg.Jobs.AlertDispatchInterval == 0 {
		cfg.Jobs.AlertDispatchInterval = time.Minute
	}
	return cfg
}

func applyEnv(cfg Config) Config {
	if val := os.Getenv("HTTP_ADDR"); val != "" {
		cfg.HTTP.Addr = val
	}
	if val := os.Getenv("PORT"); val != "" {
		cfg.HTTP.Addr = ":" + val
	}
	if val := os.Getenv("DB_DSN"); val != "" {
		cfg.DB.DSN = val
	}
	if val := os.Getenv("AUTH_SECRET"); val != "" {
		cfg.Auth.Secret = val
	}
	if val := os.Getenv("TELEGRAM_TOKEN"); val != "" {
		cfg.Notifier.Telegram.Token = val
	}
	if val := os.Getenv("EMAIL_HOST"); val != "" {
		cfg.Notifier.Email.Host = val
	}
	if val := os.Getenv("EMAIL_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Notifier.Email.Port = port
		}
	}
	if val := os.Getenv("EMAIL_ACCOUNT"); val != "" {
		cfg.Notifier.Email.Account = val
	}
	if val := os.Getenv("EMAIL_PASSWORD"); val != "" {
		cfg.Notifier.Email.Password = val
	}
	if val := os.Getenv("BINANCE_BASE_URL"); val != "" {
		cfg.Binance.BaseURL = val
	}
	if val := os.Getenv("JOBS_DISABLED"); val != "" {
		cfg.Jobs.Disabled = (val == "true")
	}
	if val := os.Getenv("PRICE_REFRESH_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Jobs.PriceRefreshInterval = d
		}
	}
	if val := os.Getenv("ALERT_DISPATCH_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Jobs.AlertDispatchInterval = d
		}
	}
	return cfg
}
