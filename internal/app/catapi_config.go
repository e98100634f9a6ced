package app

import (
	"strings"

	"github.com/charlesng35/catcatalog/internal/catapi"
	"github.com/charlesng35/catcatalog/internal/services"
)

// ClientConfig converts CatAPI settings into the upstream client configuration.
func (c CatAPIConfig) ClientConfig() catapi.Config {
	baseURL := strings.TrimSpace(c.BaseURL)
	if baseURL == "" {
		baseURL = catapi.DefaultBaseURL
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = catapi.DefaultTimeout
	}

	return catapi.Config{
		BaseURL: baseURL,
		APIKey:  strings.TrimSpace(c.APIKey),
		Timeout: timeout,
	}
}

// SeedOptions converts seed settings into importer options.
func (c SeedConfig) SeedOptions() services.SeedOptions {
	limit := c.Limit
	if limit <= 0 || limit > catapi.MaxSearchLimit {
		limit = catapi.MaxSearchLimit
	}

	return services.SeedOptions{
		Limit:           limit,
		SkipIfPopulated: c.SkipIfPopulated,
	}
}
