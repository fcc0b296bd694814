package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host         string   `yaml:"host"`
		Port         int      `yaml:"port"`
		Env          string   `yaml:"env"`
		ReadTimeout  int      `yaml:"read_timeout"`  // секунды
		WriteTimeout int      `yaml:"write_timeout"` // секунды
		CORSOrigins  []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Database struct {
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	Sweep struct {
		Schedule string `yaml:"schedule"` // cron-выражение
		Timezone string `yaml:"timezone"`
	} `yaml:"sweep"`

	Tracking struct {
		BufferSize int `yaml:"buffer_size"`
	} `yaml:"tracking"`

	Scraper struct {
		Timeout      int    `yaml:"timeout"` // секунды
		UserAgent    string `yaml:"user_agent"`
		MaxBodyBytes int64  `yaml:"max_body_bytes"`
	} `yaml:"scraper"`

	RateLimit struct {
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"rate_limit"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// Load читает .env (если есть), затем YAML из CONFIG_PATH, затем переменные окружения.
// Переменные окружения всегда перекрывают файл.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if err := readFile(configPath, &cfg); err != nil {
		// Без файла работаем только на переменных окружения (CI, контейнеры)
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig загружает конфигурацию в AppConfig или завершает процесс
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func readFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Server.Host, "SERVER_HOST")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setInt(&cfg.JWT.TTL, "JWT_TTL")
	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	setString(&cfg.Email.SMTPUsername, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Email.FromEmail, "SMTP_FROM")
	setString(&cfg.Sweep.Schedule, "SWEEP_SCHEDULE")
	setString(&cfg.Sweep.Timezone, "SWEEP_TIMEZONE")
	setList(&cfg.Server.CORSOrigins, "CORS_ORIGINS")
	setString(&cfg.FirstAdminEmail, "FIRST_ADMIN_EMAIL")
	setString(&cfg.FirstAdminPassword, "FIRST_ADMIN_PASSWORD")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60 * 24
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "HostMarket"
	}
	if cfg.Sweep.Schedule == "" {
		cfg.Sweep.Schedule = "5 0 * * *"
	}
	if cfg.Tracking.BufferSize == 0 {
		cfg.Tracking.BufferSize = 1024
	}
	if cfg.Scraper.Timeout == 0 {
		cfg.Scraper.Timeout = 10
	}
	if cfg.Scraper.UserAgent == "" {
		cfg.Scraper.UserAgent = "HostMarketBot/1.0"
	}
	if cfg.Scraper.MaxBodyBytes == 0 {
		cfg.Scraper.MaxBodyBytes = 2 << 20
	}
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = 5
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database url is required (database.url or DATABASE_URL)")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (jwt.secret or JWT_SECRET)")
	}
	return nil
}

// Location возвращает часовой пояс sweep-а ("" -> локальный)
func (c *Config) Location() *time.Location {
	if c.Sweep.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Sweep.Timezone)
	if err != nil {
		log.Printf("unknown sweep timezone %q, falling back to local: %v", c.Sweep.Timezone, err)
		return time.Local
	}
	return loc
}

func (c *Config) ScraperTimeout() time.Duration {
	return time.Duration(c.Scraper.Timeout) * time.Second
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTL) * time.Minute
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// setList - значения через запятую
func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}
