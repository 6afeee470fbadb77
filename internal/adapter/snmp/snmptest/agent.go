// Package snmptest provides a loopback SNMP agent for tests.
package snmptest

import (
	"net"
	"sync/atomic"
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/require"
)

// AnswerFunc builds the reply to a decoded request. A nil reply drops the request.
type AnswerFunc func(req *gosnmp.SnmpPacket) *gosnmp.SnmpPacket

type Agent struct {
	conn     *net.UDPConn
	answer   AnswerFunc
	requests atomic.Int32
}

// NewAgent starts an agent on a random loopback port. It stops with the test.
func NewAgent(t *testing.T, answer AnswerFunc) *Agent {
	t.Helper()

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)

	a := &Agent{conn: conn, answer: answer}

	t.Cleanup(func() {
		_ = conn.Close()
	})

	go a.serve()

	return a
}

func (a *Agent) Port() uint16 {
	return uint16(a.conn.LocalAddr().(*net.UDPAddr).Port)
}

// Requests is the number of requests decoded so far.
func (a *Agent) Requests() int {
	return int(a.requests.Load())
}

func (a *Agent) serve() {
	decoder := &gosnmp.GoSNMP{}
	buf := make([]byte, 65535)

	for {
		n, addr, err := a.conn.ReadFromUDP(buf)
		if err != nil {
			return
		}

		req, err := decoder.SnmpDecodePacket(buf[:n])
		if err != nil {
			continue
		}

		a.requests.Add(1)

		resp := a.answer(req)
		if resp == nil {
			continue
		}

		out, err := resp.MarshalMsg()
		if err != nil {
			continue
		}

		_, _ = a.conn.WriteToUDP(out, addr)
	}
}

// ObjectIDResponse answers the first requested variable with an object identifier.
func ObjectIDResponse(req *gosnmp.SnmpPacket) *gosnmp.SnmpPacket {
	return &gosnmp.SnmpPacket{
		Version:   req.Version,
		Community: req.Community,
		PDUType:   gosnmp.GetResponse,
		RequestID: req.RequestID,
		Variables: []gosnmp.SnmpPDU{{
			Name:  req.Variables[0].Name,
			Type:  gosnmp.ObjectIdentifier,
			Value: ".1.3.6.1.4.1.8072.3.2.10",
		}},
	}
}

// NoSuchNameResponse is the version 1 reply for an object the agent does not have.
func NoSuchNameResponse(req *gosnmp.SnmpPacket) *gosnmp.SnmpPacket {
	resp := ObjectIDResponse(req)
	resp.Error = gosnmp.NoSuchName
	resp.ErrorIndex = 1
	resp.Variables[0].Type = gosnmp.Null
	resp.Variables[0].Value = nil

	return resp
}
