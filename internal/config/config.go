// Package config содержит логику чтения конфигурации витрины магазина.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации витрины магазина.
type Config struct {
	RunAddress       string        `env:"RUN_ADDRESS"`
	StoreAddress     string        `env:"STORE_ADDRESS"`
	DebounceInterval time.Duration `env:"DEBOUNCE_INTERVAL"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных
// окружения. Значения из окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envStoreAddress := cfg.StoreAddress
	envDebounceInterval := cfg.DebounceInterval

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for the store stub HTTP server")
	flag.StringVar(&cfg.StoreAddress, "s", "http://localhost:8080", "store server base URL")
	flag.DurationVar(&cfg.DebounceInterval, "i", 300*time.Millisecond, "search input debounce interval")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envStoreAddress != "" {
		cfg.StoreAddress = envStoreAddress
	}
	if envDebounceInterval != 0 {
		cfg.DebounceInterval = envDebounceInterval
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}
	if cfg.DebounceInterval <= 0 {
		cfg.DebounceInterval = 300 * time.Millisecond
	}

	return cfg, nil
}
