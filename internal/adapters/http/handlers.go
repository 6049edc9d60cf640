package http

import (
	"net/http"

	"github.com/dkeye/callrelay/internal/app/orch"
	"github.com/dkeye/callrelay/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"
)

type handlers struct {
	orch       *orch.Orchestrator
	iceServers []webrtc.ICEServer
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"sessions":     h.orch.Sessions.Len(),
		"participants": h.orch.Registry.Len(),
	})
}

func (h *handlers) listSessions(c *gin.Context) {
	sessions := h.orch.ActiveSessions()
	out := make([]domain.SessionView, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, domain.ViewOfSession(s))
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

func (h *handlers) getSession(c *gin.Context) {
	s, ok := h.orch.Session(domain.SessionID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, domain.ViewOfSession(s))
}

func (h *handlers) listParticipants(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"participants": h.orch.ConnectedParticipants()})
}

func (h *handlers) getParticipant(c *gin.Context) {
	p, sid, ok := h.orch.Participant(domain.ParticipantID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessionId":   sid,
		"participant": domain.ViewOfParticipant(p),
	})
}

func (h *handlers) listICEServers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"iceServers": h.iceServers})
}
