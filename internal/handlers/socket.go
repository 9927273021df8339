package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
	"github.com/pushp314/derive-duel-backend/internal/models"
	"github.com/pushp314/derive-duel-backend/pkg/logger"
)

const duelUpdateEvent = "duel_update"

func duelRoom(id string) string {
	return "duel:" + id
}

// DuelHub pushes duel changes to everyone watching a duel room.
// A hub without a server drops every update.
type DuelHub struct {
	server *socketio.Server
}

func NewDuelHub() *DuelHub {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		logger.Debug().Str("socket", s.ID()).Msg("Socket connected")
		return nil
	})

	server.OnEvent("/", "watch_duel", func(s socketio.Conn, duelID string) {
		duelID = strings.TrimSpace(duelID)
		if duelID == "" {
			return
		}
		s.Join(duelRoom(duelID))
		logger.Debug().Str("socket", s.ID()).Str("duel", duelID).Msg("Watching duel")
	})

	server.OnEvent("/", "unwatch_duel", func(s socketio.Conn, duelID string) {
		s.Leave(duelRoom(strings.TrimSpace(duelID)))
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		logger.Debug().Str("socket", s.ID()).Str("reason", reason).Msg("Socket closed")
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logger.Warn().Err(e).Msg("Socket error")
	})

	go func() {
		if err := server.Serve(); err != nil {
			logger.Error().Err(err).Msg("Socket server stopped")
		}
	}()
	return &DuelHub{server: server}
}

// DuelUpdated broadcasts the duel to its room
func (hub *DuelHub) DuelUpdated(d *models.Duel) {
	if hub == nil || hub.server == nil {
		return
	}
	hub.server.BroadcastToRoom("/", duelRoom(d.ID), duelUpdateEvent, d)
}

// Handler wraps the socket server for gin
func (hub *DuelHub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.server.ServeHTTP(c.Writer, c.Request)
	}
}

func (hub *DuelHub) Close() error {
	if hub == nil || hub.server == nil {
		return nil
	}
	return hub.server.Close()
}
