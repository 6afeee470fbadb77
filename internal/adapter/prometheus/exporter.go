package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

type Exporter struct {
	reg     *prometheus.Registry
	metrics *metrics
}

func NewExporter() (*Exporter, error) {
	reg := prometheus.NewRegistry()

	metrics, err := newMetrics(reg)
	if err != nil {
		return nil, err
	}

	return &Exporter{
		reg:     reg,
		metrics: metrics,
	}, nil
}

// WriteTextfile dumps the registry in the text exposition format for the
// node_exporter textfile collector. The file is replaced atomically.
func (e *Exporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.reg); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}

	return nil
}
