package controller

import (
	"encoding/json"
	"net/http"

	"go-leadline/internal/infrastructure/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WatchInboxController handles the websocket endpoint dashboard watchers use
// as the push counterpart of polling. Watchers are read-only: inbound frames
// are drained and ignored, the hub pushes conversation-updated events.
type WatchInboxController struct {
	hub *realtime.Hub
}

func NewWatchInboxController(hub *realtime.Hub) *WatchInboxController {
	return &WatchInboxController{hub: hub}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when auth is added.
		return true
	},
}

type ackFrame struct {
	Type string `json:"type"`
}

// Handle upgrades the HTTP connection and keeps the session attached until the
// watcher disconnects.
func (ctl *WatchInboxController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just return.
			return
		}

		conn := realtime.NewConnection(ws)
		ctl.hub.Attach(conn)
		defer func() {
			ctl.hub.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(4 << 10) // watchers only ever send control traffic

		if payload, err := json.Marshal(ackFrame{Type: "connected"}); err == nil {
			_ = conn.Send(payload)
		}

		// Drain inbound frames; the read loop exists only to observe the close.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}
}
