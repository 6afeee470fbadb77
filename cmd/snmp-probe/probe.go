package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khmm12/snmp-probe/internal/adapter/mdns"
	"github.com/khmm12/snmp-probe/internal/adapter/prometheus"
	"github.com/khmm12/snmp-probe/internal/adapter/snmp"
	"github.com/khmm12/snmp-probe/internal/adapter/stdout"
	"github.com/khmm12/snmp-probe/internal/common/logging"
	"github.com/khmm12/snmp-probe/internal/common/tracing"
	"github.com/khmm12/snmp-probe/internal/ports"
	"github.com/khmm12/snmp-probe/internal/usecase"
)

type SNMP struct {
	Port    uint16        `name:"port" env:"SNMP_PORT" default:"161" help:"UDP port of the SNMP agent."`
	Timeout time.Duration `name:"timeout" env:"SNMP_TIMEOUT" default:"5s" help:"How long to wait for an answer to a single request (e.g., 500ms, 5s)."`
	Retries int           `name:"retries" env:"SNMP_RETRIES" default:"1" help:"How many times a request is resent within one protocol version attempt."`
}

type MDNS struct {
	Enabled  bool          `name:"enabled" env:"MDNS_ENABLED" default:"true" negatable:"" help:"Resolve HOST values ending in .local over multicast DNS. Enabled by default."`
	Timeout  time.Duration `name:"timeout" env:"MDNS_TIMEOUT" default:"3s" help:"The maximum duration to wait for an mDNS answer."`
	UseIPv4  bool          `name:"ipv4" env:"MDNS_USE_IPV4" default:"true" help:"Enable mDNS resolution over IPv4. Enabled by default."`
	IPv4Addr string        `name:"ipv4.addr" env:"MDNS_IPV4_ADDR" default:"224.0.0.0:5353" help:"IPv4 address to bind to for mDNS resolution."`
	UseIPv6  bool          `name:"ipv6" env:"MDNS_USE_IPV6" default:"true" help:"Enable mDNS resolution over IPv6. Enabled by default."`
	IPv6Addr string        `name:"ipv6.addr" env:"MDNS_IPV6_ADDR" default:"[FF02::]:5353" help:"IPv6 address to bind to for mDNS resolution."`
}

type Metrics struct {
	Textfile string `name:"textfile" env:"METRICS_TEXTFILE" help:"Also write the outcome to this file in Prometheus text format (node_exporter textfile collector)."`
}

type Probe struct {
	SNMP     SNMP     `embed:"" prefix:"snmp."`
	MDNS     MDNS     `embed:"" prefix:"mdns."`
	Metrics  Metrics  `embed:"" prefix:"metrics."`
	LogLevel string   `name:"log.level" env:"LOG_LEVEL" default:"error" help:"Log level written to stderr (debug, info, warn, error)"`
	Args     []string `arg:"" optional:"" passthrough:"partial" name:"args" help:"HOST METRIC_STATE COMMUNITY (flags go first, use -- before a HOST starting with a dash): target host, comma separated status,response-time flags (e.g., 1,1) and SNMP community."`
}

func probe(cli *CLI, cmd usecase.CheckSNMPCommand, out, logOut io.Writer) error {
	ctx := context.Background()
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = tracing.WithTraceID(ctx)

	logLevel, err := logging.ParseLevel(cli.Probe.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	logger := logging.New(logOut, logLevel)

	snmpClient, err := snmp.New(logger, cli.Probe.SNMP.Port, cli.Probe.SNMP.Timeout, cli.Probe.SNMP.Retries)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create snmp client", logging.Error(err))
		return err
	}

	resolver, closeResolver := newResolver(ctx, logger, &cli.Probe.MDNS, cmd.Host)
	defer closeResolver()

	publishers := []ports.ProbeReportPublisher{
		stdout.NewMetricWriter(logger, out),
	}

	if cli.Probe.Metrics.Textfile != "" {
		exporter, err := prometheus.NewExporter()
		if err != nil {
			logger.ErrorContext(ctx, "Failed to create prometheus exporter", logging.Error(err))
			return err
		}

		publishers = append(publishers, prometheus.NewTextfilePublisher(logger, exporter, cli.Probe.Metrics.Textfile))
	}

	uc := usecase.NewCheckSNMPUseCase(
		logger,
		resolver,
		snmp.NewQuerier(snmpClient),
		publishers...,
	)

	now := time.Now()

	logger.InfoContext(ctx, "Run snmp probe", slog.String("host", cmd.Host))

	err = uc.Execute(ctx, cmd)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to execute snmp probe", logging.Error(err), slog.Duration("duration", time.Since(now)))
		return err
	}

	return nil
}

// newResolver only binds the mDNS sockets when the host actually needs them.
func newResolver(ctx context.Context, logger *slog.Logger, cfg *MDNS, host string) (*mdns.Resolver, func()) {
	if !cfg.Enabled || !mdns.IsLocalName(host) {
		return mdns.NewResolver(nil, cfg.Timeout), func() {}
	}

	client, err := mdns.New(logger, cfg.UseIPv4, cfg.UseIPv6, cfg.IPv4Addr, cfg.IPv6Addr)
	if err != nil {
		// Port 5353 is often held by avahi or systemd-resolved. The host is
		// then reported down rather than failing the whole run.
		logger.WarnContext(ctx, "Failed to create mdns client", logging.Error(err))
		return mdns.NewUnavailableResolver(err), func() {}
	}

	return mdns.NewResolver(client, cfg.Timeout), func() {
		logger.DebugContext(ctx, "Closing mdns client")

		if err := client.Close(); err != nil {
			logger.WarnContext(ctx, "Failed to close mdns client", logging.Error(err))
		}
	}
}

func (c *CLI) Validate() error {
	var errs []error

	p := &c.Probe

	if p.SNMP.Port == 0 {
		errs = append(errs, fmt.Errorf("--snmp.port: must be greater than zero"))
	}

	if p.SNMP.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("--snmp.timeout: must be greater than zero"))
	}

	if p.SNMP.Retries < 0 {
		errs = append(errs, fmt.Errorf("--snmp.retries: must not be negative"))
	}

	if p.MDNS.Enabled {
		if p.MDNS.Timeout <= 0 {
			errs = append(errs, fmt.Errorf("--mdns.timeout: must be greater than zero"))
		}

		if !p.MDNS.UseIPv4 && !p.MDNS.UseIPv6 {
			errs = append(errs, errors.New("at least one of --mdns.ipv4 or --mdns.ipv6 must be enabled"))
		}

		if p.MDNS.UseIPv4 && !isUDP4AddrResolvable(p.MDNS.IPv4Addr) {
			errs = append(errs, fmt.Errorf("--mdns.ipv4.addr: must be a resolvable UDP IPv4 address e.g. 224.0.0.0:5353"))
		}

		if p.MDNS.UseIPv6 && !isUDP6AddrResolvable(p.MDNS.IPv6Addr) {
			errs = append(errs, fmt.Errorf("--mdns.ipv6.addr: must be a resolvable UDP IPv6 address e.g. [FF02::]:5353"))
		}
	}

	if !isLogLevel(p.LogLevel) {
		errs = append(errs, fmt.Errorf("--log.level: must be one of debug, info, warn, error"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
