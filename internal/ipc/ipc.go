package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultSocketPath is the fallback control socket location.
const DefaultSocketPath = "/tmp/selclipd.sock"

const dialTimeout = 2 * time.Second

// Handler processes one decoded request and produces the reply.
type Handler func(*Request) *Response

// Server accepts CLI connections on a unix socket and hands each request
// to the handler. Stop shuts the listener down and removes the socket.
type Server struct {
	socketPath string
	handler    Handler
	logger     *zap.Logger

	mu     sync.Mutex
	ln     net.Listener
	closed bool
	wg     sync.WaitGroup
}

// NewServer creates a control server. An empty socketPath falls back to
// DefaultSocketPath.
func NewServer(socketPath string, handler Handler, logger *zap.Logger) *Server {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		socketPath: socketPath,
		handler:    handler,
		logger:     logger,
	}
}

// Start binds the socket and begins accepting connections in the
// background.
func (s *Server) Start() error {
	if runtime.GOOS == "windows" {
		return errors.New("control socket not supported on windows")
	}

	// A previous unclean shutdown may have left the socket behind.
	os.Remove(s.socketPath)

	ln, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.socketPath, err)
	}

	s.mu.Lock()
	s.ln = ln
	s.closed = false
	s.mu.Unlock()

	s.logger.Info("control socket listening", zap.String("path", s.socketPath))

	s.wg.Add(1)
	go s.acceptLoop(ln)
	return nil
}

func (s *Server) acceptLoop(ln net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosed() {
				return
			}
			s.logger.Debug("accept failed", zap.Error(err))
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	var req Request
	if err := dec.Decode(&req); err != nil {
		enc.Encode(Errorf("invalid request: %v", err))
		return
	}

	resp := s.handler(&req)
	if resp == nil {
		resp = Errorf("no response")
	}
	if err := enc.Encode(resp); err != nil {
		s.logger.Debug("failed to write response", zap.Error(err))
	}
}

// Stop closes the listener, waits for in-flight requests, and removes the
// socket file.
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.closed || s.ln == nil {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	ln := s.ln
	s.mu.Unlock()

	err := ln.Close()
	s.wg.Wait()
	os.Remove(s.socketPath)
	return err
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// SendRequest connects to a running daemon, sends one request, and returns
// the response.
func SendRequest(socketPath string, req *Request) (*Response, error) {
	if runtime.GOOS == "windows" {
		return nil, errors.New("control socket not supported on windows")
	}
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}

	conn, err := net.DialTimeout("unix", socketPath, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}
	defer conn.Close()

	enc := json.NewEncoder(conn)
	dec := json.NewDecoder(conn)

	if err := enc.Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var resp Response
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}
