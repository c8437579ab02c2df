// Package tcp is the GBTP transport: it accepts connections and exchanges
// one raw request for one raw response per read. Everything protocol-aware
// lives behind the Handler.
package tcp

import (
	"errors"
	"io"
	"net"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const maxMessageSize = 4096

// Handler turns one raw request message into one raw response message.
type Handler func(raw string) string

type Server struct {
	Handler Handler

	listener net.Listener
}

func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = ln

	log.Infof("gbtp server started successfully, listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound address. Only valid after Listen.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections until the listener is closed. Each connection
// is handled on its own goroutine and stays open until the client hangs up.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		go s.serve(conn)
	}
}

func (s *Server) ListenAndServe(addr string) error {
	if err := s.Listen(addr); err != nil {
		return err
	}
	return s.Serve()
}

func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) serve(conn net.Conn) {
	connID := uuid.New().String()
	log.Infof("connection %s accepted from %s", connID, conn.RemoteAddr())

	defer func() {
		_ = conn.Close()
		log.Infof("connection %s closed", connID)
	}()

	// one read is one request, mirroring the event-per-message framing of
	// the protocol
	buf := make([]byte, maxMessageSize)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			if err != io.EOF {
				log.Warnf("connection %s read: %v", connID, err)
			}
			return
		}

		raw := strings.TrimRight(string(buf[:n]), "\r\n")
		resp := s.Handler(raw)

		if _, err := conn.Write([]byte(resp)); err != nil {
			log.Warnf("connection %s write: %v", connID, err)
			return
		}
	}
}
