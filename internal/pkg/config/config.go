package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	StaticDir string `env:"STATIC_DIR, default=./web/dist"`
	Locale    string `env:"LOCALE,    default=en-IN"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Payment PaymentConfig
	Storage StorageConfig
}

type SessionConfig struct {
	Cookie string        `env:"SESSION_COOKIE, default=session_token"`
	TTL    time.Duration `env:"SESSION_TTL,    default=720h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=numerology_site"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type PaymentConfig struct {
	KeyID         string `env:"PAYMENT_KEY_ID"`
	KeySecret     string `env:"PAYMENT_KEY_SECRET, required"`
	WebhookSecret string `env:"PAYMENT_WEBHOOK_SECRET"`
	BaseURL       string `env:"PAYMENT_BASE_URL, default=https://api.razorpay.com/v1"`
	Currency      string `env:"PAYMENT_CURRENCY, default=INR"`
}

type StorageConfig struct {
	Endpoint  string `env:"STORAGE_ENDPOINT,   default=localhost:9000"`
	AccessKey string `env:"STORAGE_ACCESS_KEY"`
	SecretKey string `env:"STORAGE_SECRET_KEY"`
	Bucket    string `env:"STORAGE_BUCKET,     default=uploads"`
	Region    string `env:"STORAGE_REGION"`
	PublicURL string `env:"STORAGE_PUBLIC_URL"`
	UseSSL    bool   `env:"STORAGE_USE_SSL,    default=false"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom resolves the configuration against an arbitrary lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
