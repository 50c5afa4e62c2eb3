package realtime

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"

	"github.com/Kunalgarg108/ShareSpace/pkg/logger"
	"github.com/Kunalgarg108/ShareSpace/pkg/utils"
)

// NewSocketServer wires the socket.io connection lifecycle onto the hub.
// Clients authenticate with a JWT in the handshake query; unauthenticated
// connects are refused.
func NewSocketServer(hub *Hub) *socketio.Server {
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
		s.SetContext("")
		url := s.URL()

		token := url.Query().Get("token")
		if token == "" {
			token = url.Query().Get("auth_token") // Fallback
		}
		if token == "" {
			logger.Warn().Str("conn", s.ID()).Msg("socket rejected: no token")
			return fmt.Errorf("authentication required")
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			logger.Warn().Str("conn", s.ID()).Msg("socket rejected: invalid token")
			return fmt.Errorf("invalid token")
		}

		userID := claims.UserID
		// Keep the userID on the connection for O(1) lookup on disconnect.
		s.SetContext(userID)

		hub.Register(userID, s)

		// Initial state sync for the connecting client.
		s.Emit("online_users", hub.OnlineUserIDs())

		logger.Info().Str("conn", s.ID()).Str("user_id", userID).Msg("socket connected")
		return nil
	})

	server.OnEvent("/", "get_online_users", func(s socketio.Conn, msg string) {
		s.Emit("online_users", hub.OnlineUserIDs())
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		userID, _ := s.Context().(string)
		if userID != "" {
			hub.Unregister(userID, s.ID())
		} else {
			hub.DropConn(s.ID())
		}
		logger.Info().Str("conn", s.ID()).Str("reason", reason).Msg("socket closed")
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logger.Warn().Err(e).Msg("socket error")
	})

	go func() {
		if err := server.Serve(); err != nil {
			logger.Error().Err(err).Msg("socket.io serve stopped")
		}
	}()
	return server
}

// SocketHandler mounts the socket.io server on a gin route.
func SocketHandler(server *socketio.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		server.ServeHTTP(c.Writer, c.Request)
	}
}
