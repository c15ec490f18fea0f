package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dresslink/dresslink/models"
	"github.com/dresslink/dresslink/server/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsSession wraps a websocket connection with a write mutex so the relay
// and the read loop's error replies never interleave frames.
type wsSession struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *wsSession) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// wsInbound is a send event arriving over the socket. Exactly one of
// conversation_id and receiver_id must be set, same as the REST endpoint.
type wsInbound struct {
	ConversationID *uuid.UUID `json:"conversation_id"`
	ReceiverID     *uint      `json:"receiver_id"`
	Content        string     `json:"content"`
}

type wsError struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// handleWebSocket upgrades the connection, authenticates via the token
// query parameter, and routes inbound send events through the chat service
// so socket traffic persists before it relays.
func (s *Server) handleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			response.JSON(c, "", http.StatusUnauthorized, nil, nil)
			return
		}
		if s.AuthRepository.IsTokenInBlacklist(token) {
			response.JSON(c, "", http.StatusUnauthorized, nil, nil)
			return
		}
		user, err := s.userFromToken(token)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, nil)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}

		session := &wsSession{conn: conn}
		s.Relay.Register(user.ID, session)
		defer func() {
			s.Relay.Unregister(user.ID, session)
			conn.Close()
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("websocket read error for user %d: %v", user.ID, err)
				}
				return
			}

			var inbound wsInbound
			if err := json.Unmarshal(raw, &inbound); err != nil {
				session.WriteJSON(wsError{Error: "invalid message payload", Status: http.StatusBadRequest})
				continue
			}

			request := &models.SendMessageRequest{
				ConversationID: inbound.ConversationID,
				ReceiverID:     inbound.ReceiverID,
				Content:        inbound.Content,
			}
			if _, apiErr := s.ChatService.SendMessage(user.ID, request); apiErr != nil {
				session.WriteJSON(wsError{Error: apiErr.Message, Status: apiErr.Status})
			}
		}
	}
}
