package checks

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/charlesng35/catcatalog/internal/database"
	"github.com/charlesng35/catcatalog/internal/monitoring"
)

const defaultDatabaseTimeout = 2 * time.Second

// Database returns a probe that pings the cat store.
func Database(db *gorm.DB, timeout time.Duration) monitoring.Check {
	if timeout <= 0 {
		timeout = defaultDatabaseTimeout
	}

	return monitoring.NewCheck("database", func(ctx context.Context) monitoring.ProbeResult {
		start := time.Now()
		if db == nil {
			return monitoring.ProbeResult{Status: monitoring.StatusDown, Details: "database not configured"}
		}

		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return monitoring.ResultFromError("database", database.Ping(probeCtx, db), time.Since(start))
	})
}
