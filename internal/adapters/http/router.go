package http

import (
	"context"

	"github.com/dkeye/callrelay/internal/adapters/signal"
	"github.com/dkeye/callrelay/internal/app/orch"
	"github.com/dkeye/callrelay/internal/config"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const clientTokenKey = "ct"

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware keeps an opaque per-browser token in the cookie
// session. It only tags connections in logs; identity comes from session_join.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		token, _ := sess.Get(clientTokenKey).(string)
		if token == "" {
			token = genClientToken()
			sess.Set(clientTokenKey, token)
			if err := sess.Save(); err != nil {
				log.Warn().Err(err).Str("module", "adapters.http").Msg("save client token")
			}
		}
		c.Set("client_token", token)
		c.Next()
	}
}

// SetupRouter wires the WebSocket endpoint and the read-only REST API.
func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator, gatherer prometheus.Gatherer) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600 * 24 * 7, HttpOnly: true})
	r.Use(sessions.Sessions("RelaySessions", store))
	r.Use(ClientTokenMiddleware())

	h := &handlers{orch: o, iceServers: cfg.WebRTCICEServers()}
	r.GET("/healthz", h.health)
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	ctrl := signal.NewSignalWSController(o, signalOptions(cfg))

	api := r.Group("/api")
	api.GET("/ws/signal", func(c *gin.Context) {
		ctrl.HandleSignal(ctx, c)
	})
	api.GET("/sessions", h.listSessions)
	api.GET("/sessions/:id", h.getSession)
	api.GET("/participants", h.listParticipants)
	api.GET("/participants/:id", h.getParticipant)
	api.GET("/ice-servers", h.listICEServers)

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}

func signalOptions(cfg *config.Config) signal.Options {
	return signal.Options{
		ReadLimit:         cfg.ReadLimit,
		PingPeriod:        cfg.PingPeriod,
		PongWait:          cfg.PongWait,
		WriteWait:         cfg.WriteWait,
		SendBuffer:        cfg.SendBuffer,
		MessagesPerSecond: cfg.MaxMessagesPerSecond,
		MessageBurst:      cfg.MessageBurst,
	}
}
