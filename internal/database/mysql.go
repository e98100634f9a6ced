package database

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultMySQLHost = "127.0.0.1"
	defaultMySQLPort = 3306
)

func openMySQL(cfg Config) (*gorm.DB, error) {
	dsn, err := buildMySQLDSN(cfg)
	if err != nil {
		return nil, err
	}
	return gorm.Open(mysql.Open(dsn), quietConfig())
}

// buildMySQLDSN renders a go-sql-driver DSN with utf8mb4 and parsed times.
func buildMySQLDSN(cfg Config) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}

	if cfg.User == "" || cfg.Name == "" {
		return "", errors.New("mysql configuration requires user and database name")
	}

	user := cfg.User
	if cfg.Password != "" {
		user = fmt.Sprintf("%s:%s", cfg.User, cfg.Password)
	}

	options := mergeOptions(map[string]string{
		"charset":   "utf8mb4",
		"parseTime": "True",
		"loc":       "Local",
	}, cfg.Options)

	return fmt.Sprintf("%s@tcp(%s:%d)/%s?%s",
		user,
		orDefault(cfg.Host, defaultMySQLHost),
		portOrDefault(cfg.Port, defaultMySQLPort),
		cfg.Name,
		strings.Join(sortedPairs(options), "&"),
	), nil
}

func quietConfig() *gorm.Config {
	return &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
}

func mergeOptions(base, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overrides))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range overrides {
		merged[key] = value
	}
	return merged
}

// sortedPairs renders key=value pairs in key order so DSNs are deterministic.
func sortedPairs(options map[string]string) []string {
	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+options[key])
	}
	return pairs
}

func orDefault(value, fallback string) string {
	if value = strings.TrimSpace(value); value == "" {
		return fallback
	}
	return value
}

func portOrDefault(port, fallback int) int {
	if port <= 0 {
		return fallback
	}
	return port
}
