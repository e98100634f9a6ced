package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/catcatalog/internal/monitoring"
	"github.com/charlesng35/catcatalog/pkg/response"
)

// Health reports readiness from the registered probes; 503 when any is not up.
func Health(manager *monitoring.HealthManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := manager.Evaluate(requestContext(c))

		status := http.StatusOK
		if !report.Success {
			status = http.StatusServiceUnavailable
		}

		response.JSON(c, status, gin.H{
			"success":    report.Success,
			"status":     report.Status,
			"checks":     report.Checks,
			"checked_at": time.Now().UTC(),
		})
	}
}
