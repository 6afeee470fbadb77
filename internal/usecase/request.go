package usecase

import (
	"strings"

	"github.com/khmm12/snmp-probe/internal/ports"
)

type InvalidArgumentsKind int

const (
	InvalidParametersNumber InvalidArgumentsKind = iota + 1
	InvalidMetricState
)

type InvalidArgumentsError struct {
	Kind InvalidArgumentsKind
}

func (e *InvalidArgumentsError) Error() string {
	switch e.Kind {
	case InvalidParametersNumber:
		return "Wrong number of parameters."
	case InvalidMetricState:
		return "Metrics and Status length not match"
	default:
		return "Invalid arguments."
	}
}

// ExitCode is the process exit code the monitoring platform expects for the error kind.
func (e *InvalidArgumentsError) ExitCode() int {
	switch e.Kind {
	case InvalidParametersNumber:
		return 3
	case InvalidMetricState:
		return 9
	default:
		return 1
	}
}

// MetricsExecution holds one flag per ports.MetricKind, in ports.MetricKinds order.
type MetricsExecution [len(ports.MetricKinds)]bool

func (m MetricsExecution) Enabled(kind ports.MetricKind) bool {
	if int(kind) < 0 || int(kind) >= len(m) {
		return false
	}

	return m[kind]
}

type CheckSNMPCommand struct {
	Host      string
	Metrics   MetricsExecution
	Community string
}

// ParseCheckSNMPCommand turns HOST METRIC_STATE COMMUNITY into a command.
func ParseCheckSNMPCommand(args []string) (CheckSNMPCommand, error) {
	if len(args) != 3 {
		return CheckSNMPCommand{}, &InvalidArgumentsError{Kind: InvalidParametersNumber}
	}

	tokens := strings.Split(args[1], ",")
	if len(tokens) != len(ports.MetricKinds) {
		return CheckSNMPCommand{}, &InvalidArgumentsError{Kind: InvalidMetricState}
	}

	var metrics MetricsExecution
	for i, token := range tokens {
		metrics[i] = token == "1"
	}

	return CheckSNMPCommand{
		Host:      args[0],
		Metrics:   metrics,
		Community: args[2],
	}, nil
}
