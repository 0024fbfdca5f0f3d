package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultWhatsAppNumber = "254710654707"
	DefaultTillNumber     = "705768"
	DefaultVerifyDelay    = 1500 * time.Millisecond
	DefaultPaymentDelay   = 2 * time.Second
)

type Config struct {
	HomePath     string
	StateDir     string
	ProgressPath string
	DBPath       string
	LogPath      string
	CatalogPath  string

	LogLevel       string
	VerifyDelay    time.Duration
	PaymentDelay   time.Duration
	WhatsAppNumber string
	TillNumber     string
	OpenLinks      bool
}

// New derives every path from the home directory and applies defaults.
func New(homePath string) (Config, error) {
	if homePath == "" {
		return Config{}, fmt.Errorf("home path is required")
	}
	stateDir := filepath.Join(homePath, ".microhub")
	return Config{
		HomePath:       homePath,
		StateDir:       stateDir,
		ProgressPath:   filepath.Join(stateDir, "progress.json"),
		DBPath:         filepath.Join(stateDir, "microhub.db"),
		LogPath:        filepath.Join(stateDir, "microhub.log"),
		LogLevel:       "info",
		VerifyDelay:    DefaultVerifyDelay,
		PaymentDelay:   DefaultPaymentDelay,
		WhatsAppNumber: DefaultWhatsAppNumber,
		TillNumber:     DefaultTillNumber,
	}, nil
}

// Load reads .env (if present) and MICROHUB_* variables on top of New.
// An explicit homePath wins over MICROHUB_HOME.
func Load(homePath string) (Config, error) {
	_ = godotenv.Load()

	if homePath == "" {
		homePath = getEnv("MICROHUB_HOME", ".")
	}
	cfg, err := New(homePath)
	if err != nil {
		return Config{}, err
	}

	cfg.LogLevel = strings.ToLower(getEnv("MICROHUB_LOG_LEVEL", cfg.LogLevel))
	cfg.CatalogPath = getEnv("MICROHUB_CATALOG", "")
	cfg.WhatsAppNumber = getEnv("MICROHUB_WHATSAPP_NUMBER", cfg.WhatsAppNumber)
	cfg.TillNumber = getEnv("MICROHUB_TILL_NUMBER", cfg.TillNumber)

	if cfg.VerifyDelay, err = getDuration("MICROHUB_VERIFY_DELAY", cfg.VerifyDelay); err != nil {
		return Config{}, err
	}
	if cfg.PaymentDelay, err = getDuration("MICROHUB_PAYMENT_DELAY", cfg.PaymentDelay); err != nil {
		return Config{}, err
	}
	if cfg.OpenLinks, err = getBool("MICROHUB_OPEN_LINKS", false); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}
