package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/LovationAdmin/finance-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

const wsUserKey = "user_id"

// ChangeSignal tells a client which kind of record changed so it can refetch.
type ChangeSignal struct {
	Type   string `json:"type"`
	Entity string `json:"entity"`
}

// WSHandler fans change signals out to every open session of a user.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()
	m.Config.MaxMessageSize = 1024

	// Keep-alive for hosts that drop idle connections
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	h := &WSHandler{M: m}

	m.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get(wsUserKey)
		id, _ := userID.(string)
		utils.LogWebSocket("connected", id, m.Len())
	})
	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get(wsUserKey)
		id, _ := userID.(string)
		utils.LogWebSocket("disconnected", id, m.Len())
	})
	m.HandleError(func(s *melody.Session, err error) {
		utils.SafeWarn("websocket error: %v", err)
	})

	return h
}

// HandleWS upgrades the request. The user comes from the token, or from ?userId= like the REST routes.
func (h *WSHandler) HandleWS(c *gin.Context) {
	userID, ok := resolveUserID(c, "")
	if !ok {
		return
	}

	keys := map[string]any{wsUserKey: userID}
	if err := h.M.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		utils.SafeWarn("failed to upgrade websocket: %v", err)
		if !c.Writer.Written() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "WebSocket upgrade failed"})
		}
	}
}

// NotifyUser implements Notifier.
func (h *WSHandler) NotifyUser(userID, entity, action string) {
	msg, err := json.Marshal(ChangeSignal{Type: action, Entity: entity})
	if err != nil {
		return
	}

	err = h.M.BroadcastFilter(msg, func(s *melody.Session) bool {
		id, ok := s.Get(wsUserKey)
		return ok && id == userID
	})
	if err != nil && !errors.Is(err, melody.ErrClosed) {
		utils.SafeWarn("broadcast to user %s failed: %v", userID, err)
	}
}

// Close disconnects every session; called on shutdown.
func (h *WSHandler) Close() error {
	return h.M.Close()
}
