package monitoring_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/catcatalog/internal/monitoring"
	"github.com/charlesng35/catcatalog/pkg/metrics"
)

func staticCheck(name string, status monitoring.ProbeStatus) monitoring.Check {
	return monitoring.NewCheck(name, func(context.Context) monitoring.ProbeResult {
		return monitoring.ProbeResult{Status: status}
	})
}

func TestHealthManager_EmptyIsUp(t *testing.T) {
	report := monitoring.NewHealthManager().Evaluate(context.Background())
	require.True(t, report.Success)
	require.Equal(t, monitoring.StatusUp, report.Status)
	require.Empty(t, report.Checks)
}

func TestHealthManager_AggregatesWorstStatus(t *testing.T) {
	manager := monitoring.NewHealthManager(
		staticCheck("alpha", monitoring.StatusUp),
		staticCheck("beta", monitoring.StatusDegraded),
	)

	report := manager.Evaluate(context.Background())
	require.False(t, report.Success)
	require.Equal(t, monitoring.StatusDegraded, report.Status)
	require.Len(t, report.Checks, 2)
	require.Equal(t, "alpha", report.Checks[0].Component)

	manager.Register(staticCheck("gamma", monitoring.StatusDown))
	report = manager.Evaluate(context.Background())
	require.Equal(t, monitoring.StatusDown, report.Status)
	require.Len(t, report.Checks, 3)
}

func TestHealthManager_IgnoresUnnamedChecks(t *testing.T) {
	manager := monitoring.NewHealthManager(staticCheck("", monitoring.StatusDown))
	report := manager.Evaluate(context.Background())
	require.True(t, report.Success)
	require.Empty(t, report.Checks)
}

func TestHealthManager_RecoversPanickingProbe(t *testing.T) {
	manager := monitoring.NewHealthManager(monitoring.NewCheck("flaky", func(context.Context) monitoring.ProbeResult {
		panic("probe exploded")
	}))

	report := manager.Evaluate(context.Background())
	require.False(t, report.Success)
	require.Len(t, report.Checks, 1)
	require.Equal(t, "flaky", report.Checks[0].Component)
	require.Equal(t, monitoring.StatusDown, report.Checks[0].Status)
	require.Contains(t, report.Checks[0].Details, "probe exploded")
}

func TestHealthManager_MissingStatusIsDown(t *testing.T) {
	manager := monitoring.NewHealthManager(monitoring.NewCheck("blank", nil))
	report := manager.Evaluate(context.Background())
	require.Equal(t, monitoring.StatusDown, report.Status)
}

func TestHealthManager_RecordsGauge(t *testing.T) {
	monitoring.NewHealthManager(staticCheck("gauge-up", monitoring.StatusUp)).Evaluate(context.Background())
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.HealthCheckUp.WithLabelValues("gauge-up")))

	monitoring.NewHealthManager(staticCheck("gauge-up", monitoring.StatusDown)).Evaluate(context.Background())
	require.Equal(t, 0.0, testutil.ToFloat64(metrics.HealthCheckUp.WithLabelValues("gauge-up")))
}

func TestResultFromError(t *testing.T) {
	up := monitoring.ResultFromError("db", nil, -time.Second)
	require.Equal(t, monitoring.StatusUp, up.Status)
	require.Zero(t, up.Duration)

	down := monitoring.ResultFromError("db", errors.New("refused"), time.Millisecond)
	require.Equal(t, monitoring.StatusDown, down.Status)
	require.Equal(t, "refused", down.Details)

	degraded := monitoring.ResultFromError("db", context.DeadlineExceeded, time.Millisecond)
	require.Equal(t, monitoring.StatusDegraded, degraded.Status)
}
