package storage

import (
	"net"
	"sync"
	"time"

	"github.com/kazmiller0/distributed-storage-system/utils/binutils"
	"github.com/kazmiller0/distributed-storage-system/wire"
)

// requestDeadline bounds how long a single connection may take to send
// its request and receive its response.
const requestDeadline = 30 * time.Second

// Listener drives a Service over a net.Listener: accept, decode one
// request, dispatch, encode the response, close. This mirrors the
// teacher's accept-loop/per-connection-goroutine shape, generalized from
// a single raw-bytes handler to typed wire.Request/Response frames.
type Listener struct {
	service  *Service
	logger   *binutils.Logger
	stop     chan struct{}
	waitStop sync.WaitGroup
}

// NewListener returns a Listener that dispatches accepted connections to
// service.
func NewListener(service *Service, logger *binutils.Logger) *Listener {
	return &Listener{
		service: service,
		logger:  logger,
		stop:    make(chan struct{}),
	}
}

// Serve accepts connections from ln until Shutdown is called.
func (l *Listener) Serve(ln net.Listener) {
	l.waitStop.Add(1)
	defer l.waitStop.Done()
	go func() {
		<-l.stop
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-l.stop:
				return
			default:
				l.logger.Error("accept", "error", err)
				continue
			}
		}
		l.waitStop.Add(1)
		go l.handleConn(conn)
	}
}

func (l *Listener) handleConn(conn net.Conn) {
	defer l.waitStop.Done()
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(requestDeadline))

	var req wire.Request
	if err := wire.ReadJSON(conn, &req); err != nil {
		l.logger.Warn("read request", "error", err, "remote", conn.RemoteAddr().String())
		return
	}

	resp := l.service.Handle(&req)

	if err := wire.WriteJSON(conn, resp); err != nil {
		l.logger.Warn("write response", "error", err, "remote", conn.RemoteAddr().String())
	}
}

// Shutdown stops accepting new connections and waits for in-flight ones
// to finish.
func (l *Listener) Shutdown() {
	close(l.stop)
	l.waitStop.Wait()
}
