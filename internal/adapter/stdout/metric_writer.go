package stdout

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/khmm12/snmp-probe/internal/ports"
)

// MetricWriter renders report metrics as `<id>|<value>|` lines, one write per line.
type MetricWriter struct {
	logger *slog.Logger
	w      io.Writer
}

func NewMetricWriter(logger *slog.Logger, w io.Writer) *MetricWriter {
	return &MetricWriter{
		logger: logger,
		w:      w,
	}
}

func (m *MetricWriter) Publish(ctx context.Context, report ports.ProbeReport) error {
	m.logger.DebugContext(ctx, "Writing metrics", slog.Int("metrics", len(report.Metrics)))

	for _, metric := range report.Metrics {
		if _, err := io.WriteString(m.w, formatLine(metric)); err != nil {
			return fmt.Errorf("failed to write metric %s: %w", metric.ID, err)
		}
	}

	return nil
}

func formatLine(m ports.Metric) string {
	return m.ID + "|" + strconv.FormatInt(m.Value, 10) + "|\n"
}
