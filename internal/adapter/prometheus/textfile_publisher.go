package prometheus

import (
	"context"
	"log/slog"

	"github.com/khmm12/snmp-probe/internal/ports"
)

type TextfilePublisher struct {
	logger   *slog.Logger
	exporter *Exporter
	path     string
}

func NewTextfilePublisher(logger *slog.Logger, exporter *Exporter, path string) *TextfilePublisher {
	return &TextfilePublisher{
		logger:   logger,
		exporter: exporter,
		path:     path,
	}
}

// Publish exports the whole outcome, whatever metrics were requested on the command line.
func (p *TextfilePublisher) Publish(ctx context.Context, report ports.ProbeReport) error {
	p.logger.DebugContext(ctx, "Publishing probe report to textfile", slog.String("path", p.path))

	m := p.exporter.metrics
	host := report.Host

	var status float64
	if report.Outcome == ports.OutcomeUp {
		status = 1.0
	}

	m.status.WithLabelValues(host).Set(status)
	m.startTimestamp.WithLabelValues(host).Set(float64(report.StartedAt.UnixMilli()) / 1000)
	m.executionDuration.WithLabelValues(host).Set(report.Elapsed.Seconds())

	m.protocolVersion.DeletePartialMatch(map[string]string{"host": host})

	if report.Outcome == ports.OutcomeUp {
		m.responseTime.WithLabelValues(host).Set(float64(report.Elapsed.Milliseconds()))
		m.protocolVersion.WithLabelValues(host, string(report.Version)).Set(1.0)
	} else {
		m.responseTime.DeleteLabelValues(host)
	}

	return p.exporter.WriteTextfile(p.path)
}
