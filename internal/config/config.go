package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBDSN      string `mapstructure:"DB_DSN"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASS"`
	DBName     string `mapstructure:"DB_NAME"`
	DBPort     int    `mapstructure:"DB_PORT"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	ServerAddr   string        `mapstructure:"PORT"`
	ReadTimeout  time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"WRITE_TIMEOUT"`
	CORSOrigins  string        `mapstructure:"CORS_ORIGINS"`
	RateLimit    int           `mapstructure:"RATE_LIMIT"`

	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	AccessTokenTTL time.Duration `mapstructure:"ACCESS_TOKEN_TTL"`

	LogDir   string `mapstructure:"LOG_DIR"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASS"`
	MailFrom     string `mapstructure:"MAIL_FROM"`
	AppURL       string `mapstructure:"APP_URL"`
}

var defaults = map[string]interface{}{
	"DB_DSN":           "",
	"DB_HOST":          "localhost",
	"DB_USER":          "postgres",
	"DB_PASS":          "",
	"DB_NAME":          "routinely",
	"DB_PORT":          5432,
	"REDIS_ADDR":       "localhost:6379",
	"REDIS_PASSWORD":   "",
	"PORT":             ":8080",
	"READ_TIMEOUT":     "10s",
	"WRITE_TIMEOUT":    "10s",
	"CORS_ORIGINS":     "http://localhost:3000",
	"RATE_LIMIT":       120,
	"JWT_SECRET":       "",
	"ACCESS_TOKEN_TTL": "24h",
	"LOG_DIR":          "logs",
	"LOG_LEVEL":        "info",
	"SMTP_HOST":        "",
	"SMTP_PORT":        1025,
	"SMTP_USER":        "",
	"SMTP_PASS":        "",
	"MAIL_FROM":        "no-reply@routinely.dev",
	"APP_URL":          "http://localhost:3000",
}

// LoadConfig reads .env (if present), an optional config.yaml in configDir,
// then the environment, which wins over both.
func LoadConfig(configDir string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	return &cfg, nil
}

// DSN returns DB_DSN, or a postgres DSN assembled from the DB_* parts.
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
