package ports

import (
	"context"
	"time"
)

type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeUp
	OutcomeDown
)

// MetricKind is one of the two metrics the probe reports. The order of the
// constants is the order of the flags in METRIC_STATE and of the output lines.
type MetricKind int

const (
	MetricStatus MetricKind = iota
	MetricResponseTime
)

var MetricKinds = [...]MetricKind{MetricStatus, MetricResponseTime}

// CatalogID returns the identifier the monitoring platform knows the metric by.
func (k MetricKind) CatalogID() string {
	switch k {
	case MetricStatus:
		return "54:Status:9"
	case MetricResponseTime:
		return "116:Response Time:7"
	default:
		return ""
	}
}

func (k MetricKind) String() string {
	switch k {
	case MetricStatus:
		return "status"
	case MetricResponseTime:
		return "response_time"
	default:
		return "unknown"
	}
}

type Metric struct {
	Kind              MetricKind
	ID                string
	Value             int64
	Timestamp         time.Time
	ExecutionDuration time.Duration
}

type ProbeReport struct {
	Host    string
	Outcome Outcome
	// Version is the protocol version that answered, empty when the host is down.
	Version   Version
	StartedAt time.Time
	Elapsed   time.Duration
	Metrics   []Metric
}

type ProbeReportPublisher interface {
	Publish(ctx context.Context, report ProbeReport) error
}
