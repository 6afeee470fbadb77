package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/khmm12/snmp-probe/internal/common/logging"
	"github.com/khmm12/snmp-probe/internal/ports"
)

// StatusOID is sysObjectID.0, present on every agent and used purely as a reachability check.
const StatusOID = "1.3.6.1.2.1.1.2.0"

var fallbackVersions = [...]ports.Version{ports.Version1, ports.Version2c}

type CheckSNMPUseCase struct {
	logger     *slog.Logger
	resolver   ports.HostResolver
	querier    ports.SNMPQuerier
	publishers []ports.ProbeReportPublisher
	now        func() time.Time
}

func NewCheckSNMPUseCase(logger *slog.Logger, resolver ports.HostResolver, querier ports.SNMPQuerier, publishers ...ports.ProbeReportPublisher) *CheckSNMPUseCase {
	return &CheckSNMPUseCase{
		logger:     logger,
		resolver:   resolver,
		querier:    querier,
		publishers: publishers,
		now:        time.Now,
	}
}

func (u *CheckSNMPUseCase) Execute(ctx context.Context, cmd CheckSNMPCommand) error {
	start := u.now()

	ctx = logging.WithAttrs(ctx, slog.String("host", cmd.Host))

	outcome, version, err := u.probe(ctx, cmd)
	if err != nil {
		return err
	}

	report := ports.ProbeReport{
		Host:      cmd.Host,
		Outcome:   outcome,
		Version:   version,
		StartedAt: start,
		Elapsed:   u.now().Sub(start),
		Metrics:   u.buildMetrics(cmd.Metrics, outcome, start),
	}

	u.logger.InfoContext(ctx, "Finished snmp probe",
		slog.Group("probe",
			slog.Bool("up", outcome == ports.OutcomeUp),
			slog.String("version", string(version)),
			slog.Duration("elapsed", report.Elapsed),
		))

	for _, p := range u.publishers {
		if err := p.Publish(ctx, report); err != nil {
			return fmt.Errorf("failed to publish probe report: %w", err)
		}
	}

	return nil
}

// probe settles the outcome once per invocation. Only a query failure on
// version 1 leads to another attempt.
func (u *CheckSNMPUseCase) probe(ctx context.Context, cmd CheckSNMPCommand) (ports.Outcome, ports.Version, error) {
	host, err := u.resolver.Resolve(ctx, cmd.Host)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ports.OutcomeUnknown, "", ctxErr
		}

		u.logger.WarnContext(ctx, "Failed to resolve host", logging.Error(err))

		return ports.OutcomeDown, "", nil
	}

	for i, version := range fallbackVersions {
		target := ports.QueryTarget{
			Host:      host,
			Community: cmd.Community,
			Version:   version,
		}

		attemptCtx := logging.WithAttrs(ctx, slog.String("version", string(version)), slog.String("address", host))

		u.logger.DebugContext(attemptCtx, "Querying host")

		err := u.querier.Query(attemptCtx, target, StatusOID)
		if err == nil {
			return ports.OutcomeUp, version, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ports.OutcomeUnknown, "", ctxErr
		}

		if errors.Is(err, ports.ErrTransport) {
			u.logger.WarnContext(attemptCtx, "Session failed, skipping version fallback", logging.Error(err))

			return ports.OutcomeDown, "", nil
		}

		if i < len(fallbackVersions)-1 {
			u.logger.InfoContext(attemptCtx, "Query failed, falling back to next protocol version", logging.Error(err))
		} else {
			u.logger.WarnContext(attemptCtx, "Query failed on every protocol version", logging.Error(err))
		}
	}

	return ports.OutcomeDown, "", nil
}

func (u *CheckSNMPUseCase) buildMetrics(enabled MetricsExecution, outcome ports.Outcome, start time.Time) []ports.Metric {
	metrics := make([]ports.Metric, 0, len(ports.MetricKinds))

	for _, kind := range ports.MetricKinds {
		if !enabled.Enabled(kind) {
			continue
		}

		var value int64

		switch kind {
		case ports.MetricStatus:
			if outcome == ports.OutcomeUp {
				value = 1
			}
		case ports.MetricResponseTime:
			if outcome != ports.OutcomeUp {
				continue
			}

			value = u.now().Sub(start).Milliseconds()
		}

		metrics = append(metrics, ports.Metric{
			Kind:              kind,
			ID:                kind.CatalogID(),
			Value:             value,
			Timestamp:         start,
			ExecutionDuration: u.now().Sub(start),
		})
	}

	return metrics
}
