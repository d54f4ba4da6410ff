package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// JWTConfig defines the issuer/secret pair used to verify bearer tokens.
type JWTConfig struct {
	Issuer   string
	Audience string
	Secret   []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr              string
	MongoURI          string
	MongoDatabase     string
	StoreCollection   string
	DealCollection    string
	UserCollection    string
	ProductCollection string
	Timeout           time.Duration
	RequestTimeout    time.Duration
	DefaultRadiusKm   float64
	ServerLog         *log.Logger
	JWT               JWTConfig
	AllowedOrigins    []string
	MetricsEnabled    bool
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatal(err)
	}
	cfg.ServerLog.Printf("loaded config: db=%q radiusKm=%.1f metrics=%t", cfg.MongoDatabase, cfg.DefaultRadiusKm, cfg.MetricsEnabled)
	return cfg
}

func load() (Config, error) {
	secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))
	if secret == "" {
		return Config{}, fmt.Errorf("AUTH_JWT_SECRET must be configured")
	}

	cfg := Config{
		Addr:              envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:          envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:     envOrDefault("MONGO_DB", "fresh-finds"),
		StoreCollection:   envOrDefault("STORE_COLLECTION", "stores"),
		DealCollection:    envOrDefault("DEAL_COLLECTION", "deals"),
		UserCollection:    envOrDefault("USER_COLLECTION", "users"),
		ProductCollection: envOrDefault("PRODUCT_COLLECTION", "products"),
		Timeout:           parseDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		RequestTimeout:    parseDuration("REQUEST_TIMEOUT", 5*time.Second),
		DefaultRadiusKm:   parsePositiveFloat("DISCOVERY_DEFAULT_RADIUS_KM", 10),
		ServerLog:         log.New(os.Stdout, "[fresh-finds-api] ", log.LstdFlags|log.Lshortfile),
		JWT: JWTConfig{
			Issuer:   strings.TrimSpace(os.Getenv("AUTH_JWT_ISSUER")),
			Audience: strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
			Secret:   []byte(secret),
		},
		AllowedOrigins: parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		MetricsEnabled: parseBool("METRICS_ENABLED", true),
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

// parsePositiveFloat は 0 以下や数値でない値を既定値に置き換える。
func parsePositiveFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed <= 0 || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return fallback
	}
	return parsed
}

func parseBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
