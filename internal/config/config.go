package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type AppConfig struct {
	Env       string
	Port      string
	JWTSecret string

	ERPBaseURL      string
	ERPTimeout      time.Duration
	ERPServiceToken string

	SepayBaseURL       string
	SepayToken         string
	SepayAccountNumber string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr    string
	KafkaBroker  string
	KafkaGroupID string
	ListCacheTTL time.Duration

	OutboxPollInterval   time.Duration
	SagaRecoveryInterval time.Duration

	RBACModelFile  string
	RBACPolicyFile string

	Rules Rules
}

func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// Load reads .env (optional), the environment and the rules file.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("no .env file loaded, using process environment", zap.Error(err))
	}

	cfg := &AppConfig{
		Env:       getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "3000"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		ERPBaseURL:      getEnv("ERP_API_BASE_URL", "http://localhost:5000/api"),
		ERPTimeout:      getDuration("ERP_API_TIMEOUT", 15*time.Second),
		ERPServiceToken: os.Getenv("ERP_SERVICE_TOKEN"),

		SepayBaseURL:       getEnv("SEPAY_BASE_URL", "https://my.sepay.vn/userapi"),
		SepayToken:         os.Getenv("SEPAY_TOKEN"),
		SepayAccountNumber: os.Getenv("SEPAY_ACCOUNT_NUMBER"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "go_erp"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:  os.Getenv("KAFKA_BROKER"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "go-erp-cache-invalidator"),
		ListCacheTTL: getDuration("LIST_CACHE_TTL", 5*time.Minute),

		OutboxPollInterval:   getDuration("OUTBOX_POLL_INTERVAL", 2*time.Second),
		SagaRecoveryInterval: getDuration("SAGA_RECOVERY_INTERVAL", time.Minute),

		RBACModelFile:  getEnv("RBAC_MODEL_FILE", "config/rbac_model.conf"),
		RBACPolicyFile: getEnv("RBAC_POLICY_FILE", "config/rbac_policy.yaml"),
	}

	rules, err := LoadRules(getEnv("RULES_FILE", "config/rules.yaml"))
	if err != nil {
		return nil, err
	}
	cfg.Rules = rules

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		zap.L().Warn("JWT_SECRET is not set, tokens cannot be validated")
	}

	if cfg.ERPServiceToken == "" {
		zap.L().Warn("ERP_SERVICE_TOKEN is not set, background saga recovery is disabled")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		// plain seconds are accepted too
		if secs, convErr := strconv.Atoi(raw); convErr == nil {
			return time.Duration(secs) * time.Second
		}
		zap.L().Warn("invalid duration, using default",
			zap.String("key", key),
			zap.String("value", raw),
			zap.Duration("default", fallback),
		)
		return fallback
	}
	return d
}
