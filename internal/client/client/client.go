// Package client implements the wire transport for the kotoba CLI: a
// single TCP connection carrying newline-delimited request/response frames.
package client

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/dkurose/kotoba/internal/protocol"
)

// Client defines the request surface the CLI services need.
//
// Do sends one request frame and waits for the matching response frame.
// A BAD response is returned as a *WireError; a GOOD response payload is
// decoded into out when out is non-nil.
type Client interface {
	Do(ctx context.Context, header string, payload any, out any) error
	Close() error
}

// TCPClient is a Client over a single long-lived TCP connection.
// The server answers frames strictly in order, so one mutex serializing
// request/response pairs is all the coordination required.
type TCPClient struct {
	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

// NewTCPClient dials the server at addr, failing after dialTimeout.
func NewTCPClient(addr string, dialTimeout time.Duration) (*TCPClient, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	}
	return &TCPClient{conn: conn, reader: bufio.NewReader(conn)}, nil
}

func (c *TCPClient) Do(ctx context.Context, header string, payload any, out any) error {
	req, err := protocol.Encode(header, payload)
	if err != nil {
		return fmt.Errorf("encode error: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetDeadline(deadline); err != nil {
			return err
		}
		defer c.conn.SetDeadline(time.Time{})
	}

	if err := protocol.Write(c.conn, req); err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	}

	resp, err := protocol.Read(c.reader)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	}

	if resp.Header == protocol.StatusBad {
		var ep protocol.ErrorPayload
		if err := resp.Decode(&ep); err != nil {
			return fmt.Errorf("malformed error response: %w", err)
		}
		return &WireError{Code: ep.Code, Message: ep.Error}
	}

	if out != nil {
		if err := resp.Decode(out); err != nil {
			return fmt.Errorf("decode error: %w", err)
		}
	}
	return nil
}

func (c *TCPClient) Close() error {
	return c.conn.Close()
}
