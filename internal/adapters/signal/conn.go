package signal

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dkeye/callrelay/internal/core"
	"github.com/dkeye/callrelay/internal/domain"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

var ErrConnClosed = errors.New("connection closed")

type connState int32

const (
	stateConnecting connState = iota
	stateOpen
	stateClosed
)

// wsSignalConn is one physical WebSocket. It implements core.Peer.
// The identity is bound only after a successful join on this connection.
type wsSignalConn struct {
	id     string
	token  string
	conn   *websocket.Conn
	send   chan core.Frame
	state  atomic.Int32
	limits *RateLimiter

	mu       sync.RWMutex
	ref      domain.MemberRef
	hasRef   bool
	once     sync.Once
	doneOnce sync.Once
}

func newWSSignalConn(id, token string, ws *websocket.Conn, buffer int, limiter *rate.Limiter) *wsSignalConn {
	return &wsSignalConn{
		id:     id,
		token:  token,
		conn:   ws,
		send:   make(chan core.Frame, buffer),
		limits: &RateLimiter{limiter: limiter},
	}
}

func (c *wsSignalConn) ID() string { return c.id }

func (c *wsSignalConn) IsOpen() bool { return connState(c.state.Load()) == stateOpen }

func (c *wsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.IsOpen() {
		return ErrConnClosed
	}
	select {
	case c.send <- f:
		return nil
	default:
		return core.ErrBackpressure
	}
}

// Close releases the socket. It never calls back into the orchestrator, the
// read pump owns the cleanup.
func (c *wsSignalConn) Close() {
	c.once.Do(func() {
		c.mu.Lock()
		c.state.Store(int32(stateClosed))
		close(c.send)
		c.mu.Unlock()
		_ = c.conn.Close()
	})
}

func (c *wsSignalConn) Bound() (domain.MemberRef, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ref, c.hasRef
}

func (c *wsSignalConn) bind(ref domain.MemberRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ref, c.hasRef = ref, true
}

func (c *wsSignalConn) unbind(ref domain.MemberRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasRef && c.ref == ref {
		c.ref, c.hasRef = domain.MemberRef{}, false
	}
}
