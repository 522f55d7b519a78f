package coordinator

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/kazmiller0/distributed-storage-system/utils/binutils"
	"github.com/kazmiller0/distributed-storage-system/wire"
)

// requestDeadline bounds how long a single client connection, including
// every storage-node round trip it triggers, may take.
const requestDeadline = 30 * time.Second

// Listener drives a Service over a net.Listener, mirroring the storage
// node's Listener: accept, decode one request, dispatch with a bounded
// context, encode the response, close.
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

	ctx, cancel := context.WithTimeout(context.Background(), requestDeadline)
	defer cancel()

	resp := l.service.Handle(ctx, &req)

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
