package mdns

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/netip"
	"strings"
	"time"

	"golang.org/x/net/dns/dnsmessage"

	"github.com/khmm12/snmp-probe/internal/ports"
)

type addrQuerier interface {
	QueryAddr(ctx context.Context, name string) (dnsmessage.ResourceHeader, netip.Addr, error)
}

// Resolver answers `.local` names over multicast DNS and passes every other
// host through for the system resolver.
type Resolver struct {
	logger   *slog.Logger
	conn     addrQuerier
	setupErr error
	timeout  time.Duration
}

// NewResolver returns a resolver backed by client. A nil client disables mDNS.
func NewResolver(client *Client, timeout time.Duration) *Resolver {
	if client == nil {
		return &Resolver{timeout: timeout}
	}

	return newResolver(client.logger, client.conn, timeout)
}

// NewUnavailableResolver returns a resolver for when the mDNS sockets could
// not be set up. `.local` names fail with ports.ErrTransport, so the host is
// reported down instead of aborting the process.
func NewUnavailableResolver(setupErr error) *Resolver {
	return &Resolver{setupErr: setupErr}
}

func newResolver(logger *slog.Logger, conn addrQuerier, timeout time.Duration) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Resolver{logger: logger, conn: conn, timeout: timeout}
}

func (r *Resolver) Resolve(ctx context.Context, host string) (string, error) {
	if !IsLocalName(host) {
		return host, nil
	}

	if r.setupErr != nil {
		return "", fmt.Errorf("%w: mdns unavailable for %s: %w", ports.ErrTransport, host, r.setupErr)
	}

	if r.conn == nil {
		return host, nil
	}

	innerCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, addr, err := r.conn.QueryAddr(innerCtx, host)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		return "", fmt.Errorf("%w: no mdns answer for %s: %w", ports.ErrTransport, host, err)
	}

	r.logger.DebugContext(ctx, "Resolved host over mdns", slog.String("address", addr.String()))

	return addr.String(), nil
}

func IsLocalName(host string) bool {
	return strings.HasSuffix(strings.TrimSuffix(strings.ToLower(host), "."), ".local")
}
