package ports

import (
	"context"
	"errors"
)

type Version string

const (
	Version1  Version = "1"
	Version2c Version = "2c"
)

var (
	// ErrTransport marks failures of the session itself (socket, DNS, refused
	// port). The version fallback never applies to them.
	ErrTransport = errors.New("snmp transport failure")
	// ErrQuery marks failures of a single get request: timeouts, error-status
	// replies and missing objects.
	ErrQuery = errors.New("snmp query failure")
)

type QueryTarget struct {
	Host      string
	Community string
	Version   Version
}

type SNMPQuerier interface {
	Query(ctx context.Context, target QueryTarget, oid string) error
}
