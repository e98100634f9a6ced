package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/charlesng35/catcatalog/internal/app"
	"github.com/charlesng35/catcatalog/internal/handlers"
	"github.com/charlesng35/catcatalog/internal/monitoring"
	"github.com/charlesng35/catcatalog/internal/monitoring/checks"
)

const defaultMetricsEndpoint = "/metrics"

func registerHealthRoutes(r *gin.Engine, db *gorm.DB, cfg *app.Config) {
	if cfg == nil || !cfg.Monitoring.Health.Enabled {
		return
	}

	manager := monitoring.NewHealthManager(checks.Database(db, 0))
	health := handlers.Health(manager)
	r.GET("/health", health)
	r.Group("/api").GET("/health", health)
}

func registerMetricsRoutes(r *gin.Engine, cfg *app.Config) {
	if cfg == nil || !cfg.Monitoring.Prometheus.Enabled {
		return
	}

	endpoint := strings.TrimSpace(cfg.Monitoring.Prometheus.Endpoint)
	if endpoint == "" {
		endpoint = defaultMetricsEndpoint
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	r.GET(endpoint, gin.WrapH(promhttp.Handler()))
}
