package snmp

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/require"

	"github.com/khmm12/snmp-probe/internal/adapter/snmp/snmptest"
	"github.com/khmm12/snmp-probe/internal/ports"
)

const testOID = "1.3.6.1.2.1.1.2.0"

func TestQuerier_SucceedsWhenAgentAnswers(t *testing.T) {
	agent := snmptest.NewAgent(t, func(req *gosnmp.SnmpPacket) *gosnmp.SnmpPacket {
		return snmptest.ObjectIDResponse(req)
	})

	q := newTestQuerier(t, agent.Port())

	err := q.Query(t.Context(), ports.QueryTarget{Host: "127.0.0.1", Community: "public", Version: ports.Version2c}, testOID)
	require.NoError(t, err)
	require.Equal(t, 1, agent.Requests())
}

func TestQuerier_SendsRequestedVersionAndCommunity(t *testing.T) {
	var seen atomic.Value

	agent := snmptest.NewAgent(t, func(req *gosnmp.SnmpPacket) *gosnmp.SnmpPacket {
		seen.Store(req)
		return snmptest.ObjectIDResponse(req)
	})

	q := newTestQuerier(t, agent.Port())

	err := q.Query(t.Context(), ports.QueryTarget{Host: "127.0.0.1", Community: "s3cret", Version: ports.Version1}, testOID)
	require.NoError(t, err)

	req := seen.Load().(*gosnmp.SnmpPacket)
	require.Equal(t, gosnmp.Version1, req.Version)
	require.Equal(t, "s3cret", req.Community)
	require.Len(t, req.Variables, 1)
	require.Equal(t, "."+testOID, req.Variables[0].Name)
}

func TestQuerier_SilentAgentIsQueryError(t *testing.T) {
	agent := snmptest.NewAgent(t, func(*gosnmp.SnmpPacket) *gosnmp.SnmpPacket {
		return nil
	})

	q := newTestQuerier(t, agent.Port())

	err := q.Query(t.Context(), ports.QueryTarget{Host: "127.0.0.1", Community: "public", Version: ports.Version1}, testOID)
	require.ErrorIs(t, err, ports.ErrQuery)
	require.NotErrorIs(t, err, ports.ErrTransport)
}

func TestQuerier_ErrorStatusIsQueryError(t *testing.T) {
	agent := snmptest.NewAgent(t, func(req *gosnmp.SnmpPacket) *gosnmp.SnmpPacket {
		return snmptest.NoSuchNameResponse(req)
	})

	q := newTestQuerier(t, agent.Port())

	err := q.Query(t.Context(), ports.QueryTarget{Host: "127.0.0.1", Community: "public", Version: ports.Version1}, testOID)
	require.ErrorIs(t, err, ports.ErrQuery)
	require.NotErrorIs(t, err, ports.ErrTransport)
}

func TestQuerier_UnresolvableHostIsTransportError(t *testing.T) {
	q := newTestQuerier(t, DefaultPort)

	err := q.Query(t.Context(), ports.QueryTarget{Host: "snmp-probe.invalid", Community: "public", Version: ports.Version1}, testOID)
	require.ErrorIs(t, err, ports.ErrTransport)
}

func TestQuerier_RejectsUnknownVersion(t *testing.T) {
	q := newTestQuerier(t, DefaultPort)

	err := q.Query(t.Context(), ports.QueryTarget{Host: "127.0.0.1", Community: "public", Version: "3"}, testOID)
	require.ErrorContains(t, err, "unsupported protocol version")
}

func TestClassifyGetError(t *testing.T) {
	refused := &net.OpError{Op: "read", Net: "udp", Err: os.NewSyscallError("recvfrom", syscall.ECONNREFUSED)}
	require.ErrorIs(t, classifyGetError(refused), ports.ErrTransport)

	unreachable := &net.OpError{Op: "write", Net: "udp", Err: os.NewSyscallError("sendto", syscall.EHOSTUNREACH)}
	require.ErrorIs(t, classifyGetError(unreachable), ports.ErrTransport)

	timeout := &net.OpError{Op: "read", Net: "udp", Err: os.ErrDeadlineExceeded}
	require.ErrorIs(t, classifyGetError(timeout), ports.ErrQuery)

	require.ErrorIs(t, classifyGetError(errors.New("request timeout (after 1 retries)")), ports.ErrQuery)
}

func TestNew_ValidatesSettings(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := New(logger, 0, time.Second, 1)
	require.ErrorContains(t, err, "port")

	_, err = New(logger, DefaultPort, 0, 1)
	require.ErrorContains(t, err, "timeout")

	_, err = New(logger, DefaultPort, time.Second, -1)
	require.ErrorContains(t, err, "retries")
}

func newTestQuerier(t *testing.T, port uint16) *Querier {
	t.Helper()

	client, err := New(slog.New(slog.NewTextHandler(io.Discard, nil)), port, 300*time.Millisecond, 0)
	require.NoError(t, err)

	return NewQuerier(client)
}
