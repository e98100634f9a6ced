package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	defaultPostgresHost = "localhost"
	defaultPostgresPort = 5432
)

func openPostgres(cfg Config) (*gorm.DB, error) {
	dsn, err := buildPostgresDSN(cfg)
	if err != nil {
		return nil, err
	}
	return gorm.Open(postgres.Open(dsn), quietConfig())
}

// buildPostgresDSN renders a keyword/value DSN; sslmode defaults to disable.
func buildPostgresDSN(cfg Config) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}

	if cfg.User == "" || cfg.Name == "" {
		return "", errors.New("postgres configuration requires user and database name")
	}

	params := []string{
		"host=" + orDefault(cfg.Host, defaultPostgresHost),
		fmt.Sprintf("port=%d", portOrDefault(cfg.Port, defaultPostgresPort)),
		"user=" + cfg.User,
		"dbname=" + cfg.Name,
	}
	if cfg.Password != "" {
		params = append(params, "password="+cfg.Password)
	}

	options := mergeOptions(map[string]string{"sslmode": "disable"}, cfg.Options)
	params = append(params, sortedPairs(options)...)

	return strings.Join(params, " "), nil
}
