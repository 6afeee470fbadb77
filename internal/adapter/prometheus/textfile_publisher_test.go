package prometheus

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/khmm12/snmp-probe/internal/ports"
)

var testStart = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func TestTextfilePublisher_PublishesUpHost(t *testing.T) {
	ctx := t.Context()
	exporter, publisher, path := newTestPublisher(t)

	err := publisher.Publish(ctx, ports.ProbeReport{
		Host:      "10.10.2.5",
		Outcome:   ports.OutcomeUp,
		Version:   ports.Version2c,
		StartedAt: testStart,
		Elapsed:   40 * time.Millisecond,
	})
	require.NoError(t, err)

	m := exporter.metrics
	requireMetric(t, 1.0, m.status.WithLabelValues("10.10.2.5"))
	requireMetric(t, 40.0, m.responseTime.WithLabelValues("10.10.2.5"))
	requireMetric(t, 1.0, m.protocolVersion.WithLabelValues("10.10.2.5", "2c"))
	requireMetric(t, float64(testStart.Unix()), m.startTimestamp.WithLabelValues("10.10.2.5"))
	requireMetric(t, 0.04, m.executionDuration.WithLabelValues("10.10.2.5"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), `snmp_probe_status{host="10.10.2.5"} 1`)
	require.Contains(t, string(content), `snmp_probe_protocol_version{host="10.10.2.5",version="2c"} 1`)
}

func TestTextfilePublisher_PublishesDownHostWithoutResponseTime(t *testing.T) {
	ctx := t.Context()
	exporter, publisher, path := newTestPublisher(t)

	err := publisher.Publish(ctx, ports.ProbeReport{
		Host:      "10.10.2.5",
		Outcome:   ports.OutcomeDown,
		StartedAt: testStart,
		Elapsed:   10 * time.Second,
	})
	require.NoError(t, err)

	requireMetric(t, 0.0, exporter.metrics.status.WithLabelValues("10.10.2.5"))
	require.Equal(t, 0, testutil.CollectAndCount(exporter.metrics.responseTime))
	require.Equal(t, 0, testutil.CollectAndCount(exporter.metrics.protocolVersion))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(content), "snmp_probe_response_time_milliseconds{")
}

func TestTextfilePublisher_FailsOnUnwritablePath(t *testing.T) {
	exporter, err := NewExporter()
	require.NoError(t, err)

	publisher := NewTextfilePublisher(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		exporter,
		filepath.Join(t.TempDir(), "missing", "snmp_probe.prom"),
	)

	err = publisher.Publish(t.Context(), ports.ProbeReport{Host: "10.10.2.5", Outcome: ports.OutcomeUp, Version: ports.Version1})
	require.ErrorContains(t, err, "failed to write metrics textfile")
}

func newTestPublisher(t *testing.T) (*Exporter, *TextfilePublisher, string) {
	t.Helper()

	exporter, err := NewExporter()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snmp_probe.prom")

	publisher := NewTextfilePublisher(slog.New(slog.NewTextHandler(io.Discard, nil)), exporter, path)

	return exporter, publisher, path
}

func requireMetric(t *testing.T, expected float64, metric prometheus.Collector) {
	t.Helper()

	require.InDelta(t, expected, testutil.ToFloat64(metric), 0.001)
}
