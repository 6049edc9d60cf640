// Package signal runs the WebSocket side of the relay: one read pump and one
// write pump per connection, cleanup on close.
package signal

import (
	"context"
	"net/http"
	"time"

	"github.com/dkeye/callrelay/internal/app/orch"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

// Options tune the transport. Zero values fall back to DefaultOptions.
type Options struct {
	ReadLimit         int64
	PingPeriod        time.Duration
	PongWait          time.Duration
	WriteWait         time.Duration
	SendBuffer        int
	MessagesPerSecond float64
	MessageBurst      int
}

func DefaultOptions() Options {
	return Options{
		ReadLimit:         32768,
		PingPeriod:        54 * time.Second,
		PongWait:          60 * time.Second,
		WriteWait:         5 * time.Second,
		SendBuffer:        64,
		MessagesPerSecond: 50,
		MessageBurst:      100,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ReadLimit <= 0 {
		o.ReadLimit = d.ReadLimit
	}
	if o.PingPeriod <= 0 {
		o.PingPeriod = d.PingPeriod
	}
	if o.PongWait <= o.PingPeriod {
		o.PongWait = o.PingPeriod + o.PingPeriod/9
	}
	if o.WriteWait <= 0 {
		o.WriteWait = d.WriteWait
	}
	if o.SendBuffer <= 0 {
		o.SendBuffer = d.SendBuffer
	}
	return o
}

type SignalWSController struct {
	Orch *orch.Orchestrator
	opts Options
}

func NewSignalWSController(o *orch.Orchestrator, opts Options) *SignalWSController {
	return &SignalWSController{Orch: o, opts: opts.withDefaults()}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and starts the connection pumps.
// The connection stays anonymous until a session_join succeeds on it.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	token := c.GetString("client_token")
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	conn := newWSSignalConn(ulid.Make().String(), token, ws, ctl.opts.SendBuffer,
		NewLimiter(ctl.opts.MessagesPerSecond, ctl.opts.MessageBurst))
	conn.state.Store(int32(stateOpen))
	log.Info().Str("module", "signal").Str("conn", conn.id).Str("client_token", token).Msg("new WS connection")

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, conn)
}
