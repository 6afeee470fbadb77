package snmp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/khmm12/snmp-probe/internal/ports"
)

const DefaultPort = 161

type Client struct {
	logger  *slog.Logger
	port    uint16
	timeout time.Duration
	retries int
}

func New(logger *slog.Logger, port uint16, timeout time.Duration, retries int) (*Client, error) {
	if port == 0 {
		return nil, fmt.Errorf("snmp: port must be greater than zero")
	}

	if timeout <= 0 {
		return nil, fmt.Errorf("snmp: timeout must be greater than zero")
	}

	if retries < 0 {
		return nil, fmt.Errorf("snmp: retries must not be negative")
	}

	return &Client{
		logger:  logger,
		port:    port,
		timeout: timeout,
		retries: retries,
	}, nil
}

// newSession builds a fresh gosnmp session. Sessions are not safe to share,
// every attempt gets its own.
func (c *Client) newSession(ctx context.Context, target ports.QueryTarget) (*gosnmp.GoSNMP, error) {
	version, err := mapVersion(target.Version)
	if err != nil {
		return nil, err
	}

	session := &gosnmp.GoSNMP{
		Context:   ctx,
		Target:    target.Host,
		Port:      c.port,
		Transport: "udp",
		Community: target.Community,
		Version:   version,
		Timeout:   c.timeout,
		Retries:   c.retries,
		MaxOids:   gosnmp.MaxOids,
	}

	if c.logger.Enabled(ctx, slog.LevelDebug) {
		session.Logger = gosnmp.NewLogger(slog.NewLogLogger(c.logger.Handler(), slog.LevelDebug))
	}

	return session, nil
}

func mapVersion(v ports.Version) (gosnmp.SnmpVersion, error) {
	switch v {
	case ports.Version1:
		return gosnmp.Version1, nil
	case ports.Version2c:
		return gosnmp.Version2c, nil
	default:
		return 0, fmt.Errorf("snmp: unsupported protocol version %q", v)
	}
}
