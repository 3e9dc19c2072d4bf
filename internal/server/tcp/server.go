// Package tcp implements the connection multiplexer: it owns the registry of
// live client sockets, pairs each with per-connection session state, and
// feeds decoded frames to the dispatcher.
//
// One goroutine serves each connection, so requests within a connection are
// handled strictly in arrival order while connections never block each
// other. Registry mutation is mutually exclusive with iteration.
package tcp

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/dkurose/kotoba/internal/logging"
	"github.com/dkurose/kotoba/internal/protocol"
	"github.com/dkurose/kotoba/internal/server/dispatch"
)

// Dispatcher resolves one request frame into a response frame.
type Dispatcher interface {
	Dispatch(ctx context.Context, sess *dispatch.Session, req protocol.Frame) protocol.Frame
}

// Server accepts connections and serves the wire protocol until its context
// is cancelled.
type Server struct {
	addr        string
	dispatcher  Dispatcher
	logger      logging.Logger
	idleTimeout time.Duration

	mu     sync.Mutex
	conns  map[net.Conn]*dispatch.Session
	closed bool
	wg     sync.WaitGroup
}

// NewServer constructs a Server. idleTimeout of zero disables the read
// deadline, matching the protocol's lack of a timeout contract.
func NewServer(addr string, d Dispatcher, l logging.Logger, idleTimeout time.Duration) *Server {
	return &Server{
		addr:        addr,
		dispatcher:  d,
		logger:      l.With("module", "tcp_server"),
		idleTimeout: idleTimeout,
		conns:       make(map[net.Conn]*dispatch.Session),
	}
}

// Run listens on the configured address and accepts connections until ctx is
// cancelled. Each accepted socket is registered with an empty session and
// served on its own goroutine. Run returns after every live connection has
// been closed.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping TCP server...")
		_ = ln.Close()
		s.closeAll()
	}()

	s.logger.Info(ctx, "Starting TCP server", "address", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.wg.Wait()
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		sess := dispatch.NewSession()
		if !s.register(conn, sess) {
			// Accept won the race against the shutdown goroutine's
			// closeAll sweep; this socket must not outlive Run.
			_ = conn.Close()
			continue
		}
		s.logger.Info(ctx, "connection established", "remote", conn.RemoteAddr().String())

		s.wg.Add(1)
		go s.serve(ctx, conn, sess)
	}
}

// register adds the connection to the registry. It reports false once
// closeAll has run, so a socket accepted mid-shutdown is never left outside
// the sweep.
func (s *Server) register(conn net.Conn, sess *dispatch.Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = sess
	return true
}

func (s *Server) unregister(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for conn := range s.conns {
		_ = conn.Close()
	}
}

// serve runs the per-connection request loop: read one frame, dispatch it,
// write the reply. Any read, decode or write failure terminates only this
// connection; a handler failure comes back as a BAD frame and the loop
// continues.
func (s *Server) serve(ctx context.Context, conn net.Conn, sess *dispatch.Session) {
	remote := conn.RemoteAddr().String()

	defer s.wg.Done()
	defer func() {
		s.unregister(conn)
		_ = conn.Close()
		s.logger.Info(ctx, "connection terminated", "remote", remote, "verified", sess.Authenticated())
	}()

	r := bufio.NewReader(conn)
	for {
		if s.idleTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.idleTimeout))
		}

		req, err := protocol.Read(r)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Warn(ctx, "dropping connection", "remote", remote, "error", err)
			}
			return
		}

		s.logger.Debug(ctx, "incoming request",
			"remote", remote, "verified", sess.Authenticated(), "header", req.Header)

		resp := s.dispatcher.Dispatch(ctx, sess, req)

		s.logger.Debug(ctx, "outgoing response",
			"remote", remote, "verified", sess.Authenticated(), "header", resp.Header)

		if err := protocol.Write(conn, resp); err != nil {
			s.logger.Warn(ctx, "write failed", "remote", remote, "error", err)
			return
		}
	}
}
