package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"maison/pkg/auth"
	"maison/pkg/model"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Client is one WebSocket connection. The hub never touches the
// connection directly; frames flow through the send channel.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	senderID   string
	senderName string
}

// inboundFrame is what connected clients send; sender identity comes
// from the connection, not the frame.
type inboundFrame struct {
	Text string `json:"text"`
}

// ServeWS upgrades the request and registers the connection with the hub.
// A session token takes precedence for sender identity; without one,
// explicit user_id and user_name query parameters are accepted.
func ServeWS(hub *Hub, signer *auth.Signer, w http.ResponseWriter, r *http.Request) {
	senderID := r.URL.Query().Get("user_id")
	senderName := r.URL.Query().Get("user_name")

	if token := r.URL.Query().Get("token"); token != "" && signer != nil {
		claims, err := signer.ParseSessionToken(token)
		if err != nil {
			http.Error(w, "invalid session token", http.StatusUnauthorized)
			return
		}
		senderID = claims.Subject
		senderName = claims.Name
	}

	if senderID == "" || senderName == "" {
		http.Error(w, "user_id and user_name are required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.cfg.Log.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, 16),
		senderID:   senderID,
		senderName: senderName,
	}
	hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.cfg.Log.Warn("WebSocket read failed", "sender_id", c.senderID, "error", err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			c.hub.cfg.Log.Warn("Dropping malformed chat frame", "sender_id", c.senderID, "error", err)
			continue
		}

		message := &model.ChatMessage{
			SenderID:   c.senderID,
			SenderName: c.senderName,
			Text:       frame.Text,
		}
		if err := c.hub.Submit(context.Background(), message); err != nil {
			c.hub.cfg.Log.Warn("Rejected chat message", "sender_id", c.senderID, "error", err)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					c.hub.cfg.Log.Warn("WebSocket write failed", "sender_id", c.senderID, "error", err)
				}
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
