package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

const (
	defaultServerAddr      = ":8080"
	defaultAccessTokenTTL  = "1h"
	defaultRefreshTokenTTL = "168h"
	defaultCategoriesTTL   = 300
	defaultExportTTL       = 900
)

type AppConfig struct {
	DatabaseConfig DatabaseConfig  `yaml:"databaseConfig"`
	RedisConfig    RedisConfig     `yaml:"redisConfig"`
	ServerAddr     string          `yaml:"serverAddr"`
	S3Config       S3Config        `yaml:"s3Config"`
	JWT            JWTConfig       `yaml:"jwt"`
	TTL            TTL             `yaml:"TTL"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

func LoadConfig(path string) (*AppConfig, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	if secret := os.Getenv("EZWALLET_JWT_SECRET"); secret != "" {
		cfg.JWT.SecretKey = secret
	}
	if dsn := os.Getenv("EZWALLET_DATABASE_DSN"); dsn != "" {
		cfg.DatabaseConfig.DSN = dsn
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate : fills defaults and rejects configurations the server cannot start with
func (cfg *AppConfig) Validate() error {
	if cfg.JWT.SecretKey == "" {
		return errors.New("jwt.secret_key is required")
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = defaultServerAddr
	}
	if cfg.JWT.AccessTokenTTL == "" {
		cfg.JWT.AccessTokenTTL = defaultAccessTokenTTL
	}
	if cfg.JWT.RefreshTokenTTL == "" {
		cfg.JWT.RefreshTokenTTL = defaultRefreshTokenTTL
	}
	if cfg.TTL.Categories <= 0 {
		cfg.TTL.Categories = defaultCategoriesTTL
	}
	if cfg.TTL.Export <= 0 {
		cfg.TTL.Export = defaultExportTTL
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 {
		cfg.RateLimit.RequestsPerSecond = 1
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 5
	}
	if cfg.DatabaseConfig.DSN == "" {
		return fmt.Errorf("databaseConfig.dsn is required")
	}
	return nil
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
