package snmp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/gosnmp/gosnmp"

	"github.com/khmm12/snmp-probe/internal/ports"
)

type Querier struct {
	client *Client
}

func NewQuerier(client *Client) *Querier {
	return &Querier{client: client}
}

// Query opens a session, issues a single get for oid and closes the session
// on every path. Errors wrap either ports.ErrTransport or ports.ErrQuery.
func (q *Querier) Query(ctx context.Context, target ports.QueryTarget, oid string) error {
	session, err := q.client.newSession(ctx, target)
	if err != nil {
		return err
	}

	if err := session.Connect(); err != nil {
		return fmt.Errorf("%w: failed to open session to %s: %w", ports.ErrTransport, target.Host, err)
	}

	defer func() {
		_ = session.Conn.Close()
	}()

	packet, err := session.Get([]string{oid})
	if err != nil {
		return classifyGetError(err)
	}

	if packet.Error != gosnmp.NoError {
		return fmt.Errorf("%w: agent replied with error status %s", ports.ErrQuery, packet.Error)
	}

	if len(packet.Variables) == 0 {
		return fmt.Errorf("%w: agent replied without variables", ports.ErrQuery)
	}

	for _, v := range packet.Variables {
		switch v.Type {
		case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView:
			return fmt.Errorf("%w: %s is %s", ports.ErrQuery, v.Name, v.Type)
		}
	}

	return nil
}

func classifyGetError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	// A refused or unreachable port means the socket itself is broken, as
	// opposed to an agent that is silent or rejects the request.
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return fmt.Errorf("%w: %w", ports.ErrTransport, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && !netErr.Timeout() {
		return fmt.Errorf("%w: %w", ports.ErrTransport, err)
	}

	return fmt.Errorf("%w: %w", ports.ErrQuery, err)
}
