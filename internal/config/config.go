package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Addr       string
	TLSCert    string
	TLSKey     string
	TokenKey   string
	TablesPath string
	RateLimit  float64 // requests per second per client IP
	RateBurst  int
	LogLevel   log.Level
}

// Load reads .env when present and builds the server configuration from
// the environment. A missing .env file is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return FromEnv(os.LookupEnv)
}

func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}
	cfg := Config{
		Addr:       get("ADDR", ":8080"),
		TLSCert:    get("TLS_CERT", ""),
		TLSKey:     get("TLS_KEY", ""),
		TokenKey:   get("TOKEN_KEY", ""),
		TablesPath: get("DUCT_TABLES", ""),
	}

	var err error
	if cfg.RateLimit, err = strconv.ParseFloat(get("RATE_LIMIT", "5"), 64); err != nil || cfg.RateLimit <= 0 {
		return Config{}, errors.New("RATE_LIMIT must be a positive number")
	}
	if cfg.RateBurst, err = strconv.Atoi(get("RATE_BURST", "10")); err != nil || cfg.RateBurst <= 0 {
		return Config{}, errors.New("RATE_BURST must be a positive integer")
	}
	if cfg.LogLevel, err = log.ParseLevel(get("LOG_LEVEL", "info")); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// TLS reports whether both a certificate and a key are configured.
func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}
