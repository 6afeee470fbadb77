package stdout

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/khmm12/snmp-probe/internal/ports"
)

func TestMetricWriter_WritesLinesInOrder(t *testing.T) {
	var buf bytes.Buffer

	w := newTestMetricWriter(&buf)

	err := w.Publish(t.Context(), ports.ProbeReport{
		Outcome: ports.OutcomeUp,
		Metrics: []ports.Metric{
			{Kind: ports.MetricStatus, ID: ports.MetricStatus.CatalogID(), Value: 1},
			{Kind: ports.MetricResponseTime, ID: ports.MetricResponseTime.CatalogID(), Value: 40, ExecutionDuration: 40 * time.Millisecond},
		},
	})
	require.NoError(t, err)

	require.Equal(t, "54:Status:9|1|\n116:Response Time:7|40|\n", buf.String())
}

func TestMetricWriter_WritesNothingWithoutMetrics(t *testing.T) {
	var buf bytes.Buffer

	w := newTestMetricWriter(&buf)

	err := w.Publish(t.Context(), ports.ProbeReport{Outcome: ports.OutcomeDown})
	require.NoError(t, err)
	require.Empty(t, buf.String())
}

func TestMetricWriter_OneWritePerLine(t *testing.T) {
	rec := &recordingWriter{}

	w := newTestMetricWriter(rec)

	err := w.Publish(t.Context(), ports.ProbeReport{
		Metrics: []ports.Metric{
			{ID: ports.MetricStatus.CatalogID(), Value: 0},
			{ID: ports.MetricResponseTime.CatalogID(), Value: 7},
		},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"54:Status:9|0|\n", "116:Response Time:7|7|\n"}, rec.writes)
}

func TestMetricWriter_ReturnsWriteError(t *testing.T) {
	w := newTestMetricWriter(failingWriter{})

	err := w.Publish(t.Context(), ports.ProbeReport{
		Metrics: []ports.Metric{{ID: ports.MetricStatus.CatalogID(), Value: 1}},
	})
	require.ErrorContains(t, err, "failed to write metric 54:Status:9")
}

func newTestMetricWriter(w io.Writer) *MetricWriter {
	return NewMetricWriter(slog.New(slog.NewTextHandler(io.Discard, nil)), w)
}

type recordingWriter struct {
	writes []string
}

func (r *recordingWriter) Write(p []byte) (int, error) {
	r.writes = append(r.writes, string(p))
	return len(p), nil
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}
