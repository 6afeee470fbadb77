package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	status            *prometheus.GaugeVec
	responseTime      *prometheus.GaugeVec
	protocolVersion   *prometheus.GaugeVec
	startTimestamp    *prometheus.GaugeVec
	executionDuration *prometheus.GaugeVec
}

const (
	prefix = "snmp_probe_"
)

func newMetrics(reg *prometheus.Registry) (*metrics, error) {
	m := &metrics{
		status: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: prefix + "status",
			Help: "Whether the host answered the SNMP status query (1: up, 0: down)",
		}, []string{"host"}),
		responseTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: prefix + "response_time_milliseconds",
			Help: "Milliseconds from the first attempt until the host answered, including a failed version 1 attempt",
		}, []string{"host"}),
		protocolVersion: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: prefix + "protocol_version",
			Help: "SNMP version the host answered on (1 for the answering version)",
		}, []string{"host", "version"}),
		startTimestamp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: prefix + "start_timestamp_seconds",
			Help: "Unix time the probe started",
		}, []string{"host"}),
		executionDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: prefix + "execution_duration_seconds",
			Help: "Wall time spent probing the host",
		}, []string{"host"}),
	}

	err := register(reg,
		m.status,
		m.responseTime,
		m.protocolVersion,
		m.startTimestamp,
		m.executionDuration,
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func register(r *prometheus.Registry, cs ...prometheus.Collector) error {
	for i, c := range cs {
		if err := r.Register(c); err != nil {
			for _, c := range cs[:i] {
				r.Unregister(c)
			}

			return err
		}
	}

	return nil
}
